package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/service"
	"github.com/go-chi/chi/v5"
)

// ClientHandler handles HTTP requests for client positions.
type ClientHandler struct {
	reportSvc *service.ReportService
	logger    *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(reportSvc *service.ReportService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{reportSvc: reportSvc, logger: logger}
}

type holdingResponse struct {
	StockSymbol string `json:"stock_symbol"`
	Quantity    int64  `json:"quantity"`
}

// clientResponse is the JSON response for GET /api/clients/{client_id}.
type clientResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	CashBalance string            `json:"cash_balance"`
	Holdings    []holdingResponse `json:"holdings"`
	CreatedAt   string            `json:"created_at"`
}

// Get handles GET /api/clients/{client_id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "client_id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "client_id must be an integer")
		return
	}

	pos, err := h.reportSvc.GetClient(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			WriteError(w, http.StatusNotFound, "client_not_found", "Client not found")
			return
		}
		h.logger.Error("get client", slog.Int64("client_id", id), slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal_error", "Error fetching client")
		return
	}

	holdings := make([]holdingResponse, len(pos.Holdings))
	for i, hd := range pos.Holdings {
		holdings[i] = holdingResponse{StockSymbol: hd.StockSymbol, Quantity: hd.Quantity}
	}

	WriteJSON(w, http.StatusOK, clientResponse{
		ID:          pos.Client.ID,
		Name:        pos.Client.Name,
		CashBalance: money(pos.Client.CashBalance),
		Holdings:    holdings,
		CreatedAt:   timestamp(pos.Client.CreatedAt),
	})
}
