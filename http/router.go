package http

import (
	"net/http"

	"go.uber.org/zap"

	"zakat-tracker/metrics"
)

type Handlers struct {
	Zakat    *ZakatHandler
	Donation *DonationHandler
	Doa      *DoaHandler
}

// NewRouter wires every route. Only calculations and exports are rate limited.
func NewRouter(h Handlers, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	mux := http.NewServeMux()

	mux.Handle("/zakat/mal", limited(h.Zakat.CalculateMal))
	mux.Handle("/zakat/fitrah", limited(h.Zakat.CalculateFitrah))
	mux.HandleFunc("/zakat/nisab", h.Zakat.Nisab)
	mux.HandleFunc("/zakat/history", h.Zakat.History)

	mux.HandleFunc("/donations", h.Donation.Transactions)
	mux.HandleFunc("/donations/summary", h.Donation.Summary)
	mux.Handle("/donations/export", limited(h.Donation.Export))

	mux.HandleFunc("/doas", h.Doa.Doas)
	mux.HandleFunc("/doas/mine", h.Doa.Mine)
	mux.HandleFunc("/doas/templates", h.Doa.Templates)
	mux.HandleFunc("/doas/{id}", h.Doa.Doa)
	mux.HandleFunc("/doas/{id}/ameen", h.Doa.Ameen)
	mux.HandleFunc("/doas/{id}/share", h.Doa.Share)
	mux.HandleFunc("/doas/{id}/report", h.Doa.Report)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())

	return LoggingMiddleware(logger, mux)
}
