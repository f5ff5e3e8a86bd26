package http

import (
	"net/http"

	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/service"
)

type DoaHandler struct {
	service *service.DoaService
	logger  *zap.Logger
}

func NewDoaHandler(service *service.DoaService, logger *zap.Logger) *DoaHandler {
	return &DoaHandler{service: service, logger: logger}
}

// Doas serves the feed on GET and publishes a doa on POST.
func (h *DoaHandler) Doas(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		feed, err := h.service.Feed(r.Context(), userID(r), domain.DoaFilter{
			Query: q.Get("q"),
			Tab:   q.Get("tab"),
		})
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, toDoas(feed))

	case http.MethodPost:
		var req doaRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := h.service.Create(r.Context(), userID(r), req.toInput())
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusCreated, toDoaResponse(created))

	default:
		methodNotAllowed(w)
	}
}

// Doa edits or deletes a single doa owned by the caller.
func (h *DoaHandler) Doa(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		var req doaRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := h.service.Update(r.Context(), userID(r), id, req.toInput())
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, toDoaResponse(updated))

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), userID(r), id); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}

func (h *DoaHandler) Mine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	mine, err := h.service.MyDoas(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, myDoasResponse{
		Regular:   toDoas(mine.Regular),
		Templates: toDoas(mine.Templates),
	})
}

func (h *DoaHandler) Templates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	templates, err := h.service.Templates(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateResponse{ID: t.ID, Background: t.Background})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h *DoaHandler) Ameen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	updated, err := h.service.ToggleAmeen(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, toDoaResponse(updated))
}

func (h *DoaHandler) Share(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	share, err := h.service.Share(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, shareResponse{DoaID: share.DoaID, Text: share.Text})
}

// Report accepts an optional JSON body with a reason.
func (h *DoaHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req reportRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	report, err := h.service.Report(r.Context(), userID(r), r.PathValue("id"), req.Reason)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, reportResponse{
		ID:        report.ID,
		DoaID:     report.DoaID,
		CreatedAt: report.CreatedAt,
	})
}
