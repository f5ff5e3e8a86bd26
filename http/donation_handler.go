package http

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/service"
)

type DonationHandler struct {
	service *service.DonationService
	logger  *zap.Logger
}

func NewDonationHandler(service *service.DonationService, logger *zap.Logger) *DonationHandler {
	return &DonationHandler{service: service, logger: logger}
}

// Transactions lists the ledger on GET and records a payment on POST.
func (h *DonationHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit, err := queryInt(r, "limit")
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		txs, err := h.service.Transactions(r.Context(), domain.TransactionFilter{
			Type:  r.URL.Query().Get("type"),
			Limit: limit,
		})
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, toTransactions(txs))

	case http.MethodPost:
		var req paymentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		tx, err := h.service.RecordPayment(r.Context(), userID(r), domain.PaymentInput{
			Type:   req.Type,
			Amount: req.Amount.Decimal,
		})
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusCreated, toTransactionResponse(tx))

	default:
		methodNotAllowed(w)
	}
}

func (h *DonationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	recent, err := queryInt(r, "recent")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), recent)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// Export streams the ledger report as an attachment.
func (h *DonationHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	report, err := h.service.Export(r.Context(), r.URL.Query().Get("format"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Body); err != nil {
		h.logger.Warn("failed to write export", zap.String("filename", report.Filename), zap.Error(err))
	}
}
