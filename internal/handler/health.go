package handler

import (
	"net/http"
	"time"

	"github.com/efreitasn/tradeops/internal/service"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// health handles GET /health. It reports liveness only.
func health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: timestamp(time.Now()),
	})
}

// ready handles GET /ready: 200 when the store answers, 503 otherwise.
func ready(reportSvc *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reportSvc.Ping(r.Context()); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "store_unavailable", "Store is not reachable")
			return
		}
		WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Timestamp: timestamp(time.Now()),
		})
	}
}
