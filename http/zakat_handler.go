package http

import (
	"net/http"

	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/service"
)

type ZakatHandler struct {
	service *service.ZakatService
	logger  *zap.Logger
}

func NewZakatHandler(service *service.ZakatService, logger *zap.Logger) *ZakatHandler {
	return &ZakatHandler{service: service, logger: logger}
}

func (h *ZakatHandler) CalculateMal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req zakatMalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CalculateZakatMal(r.Context(), userID(r), domain.ZakatMalInput{
		TotalAssets:    req.TotalAssets.Decimal,
		TotalDebts:     req.TotalDebts.Decimal,
		NisabThreshold: req.NisabThreshold.Decimal,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toZakatMalResponse(result))
}

func (h *ZakatHandler) CalculateFitrah(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req zakatFitrahRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CalculateZakatFitrah(r.Context(), userID(r), domain.ZakatFitrahInput{
		FamilyMembers:  req.FamilyMembers,
		RicePricePerKg: req.RicePricePerKg.Decimal,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toZakatFitrahResponse(result))
}

func (h *ZakatHandler) Nisab(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	ref, err := h.service.Nisab(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toNisabResponse(ref))
}

func (h *ZakatHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	records, err := h.service.History(r.Context(), userID(r), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toHistory(records))
}
