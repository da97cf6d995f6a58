package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/service"
	"github.com/efreitasn/tradeops/internal/store"
	"github.com/google/uuid"
)

// TradeHandler handles HTTP requests for the trade ledger and dashboard.
type TradeHandler struct {
	reportSvc *service.ReportService
	logger    *slog.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(reportSvc *service.ReportService, logger *slog.Logger) *TradeHandler {
	return &TradeHandler{reportSvc: reportSvc, logger: logger}
}

// tradeResponse is one row of GET /api/trades.
type tradeResponse struct {
	ID             int64   `json:"id"`
	BatchID        string  `json:"batch_id"`
	ClientID       *int64  `json:"client_id"`
	ClientName     *string `json:"client_name"`
	StockSymbol    string  `json:"stock_symbol"`
	Type           string  `json:"type"`
	Quantity       int64   `json:"quantity"`
	Price          string  `json:"price"`
	TotalValue     string  `json:"total_value"`
	Commission     string  `json:"commission"`
	TradeDate      *string `json:"trade_date"`
	SettlementDate *string `json:"settlement_date"`
	Status         string  `json:"status"`
	FailureReason  *string `json:"failure_reason"`
	CreatedAt      string  `json:"created_at"`
}

// statsResponse is the JSON response for GET /api/dashboard-stats.
type statsResponse struct {
	TotalVolumeSettled     string `json:"total_volume_settled"`
	TotalCommissionsEarned string `json:"total_commissions_earned"`
	FailedTradeCount       int64  `json:"failed_trade_count"`
}

// List handles GET /api/trades.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTradeFilter(r.URL.Query())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	trades, err := h.reportSvc.ListTrades(r.Context(), filter)
	if err != nil {
		h.logger.Error("list trades", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal_error", "Error fetching trades")
		return
	}

	resp := make([]tradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = toTradeResponse(t)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/dashboard-stats.
func (h *TradeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal_error", "Error fetching stats")
		return
	}

	WriteJSON(w, http.StatusOK, statsResponse{
		TotalVolumeSettled:     money(stats.TotalVolumeSettled),
		TotalCommissionsEarned: money(stats.TotalCommissionsEarned),
		FailedTradeCount:       stats.FailedTradeCount,
	})
}

// parseTradeFilter reads the optional status, client_id and batch_id query
// parameters.
func parseTradeFilter(q url.Values) (store.TradeFilter, error) {
	var f store.TradeFilter

	if s := q.Get("status"); s != "" {
		status := domain.Status(strings.ToUpper(s))
		if status != domain.StatusSettled && status != domain.StatusFailed {
			return f, &domain.ValidationError{Message: "status must be SETTLED or FAILED"}
		}
		f.Status = status
	}

	if s := q.Get("client_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, &domain.ValidationError{Message: "client_id must be an integer"}
		}
		f.ClientID = &id
	}

	if s := q.Get("batch_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return f, &domain.ValidationError{Message: "batch_id must be a UUID"}
		}
		f.BatchID = id.String()
	}

	return f, nil
}

func toTradeResponse(t *domain.Trade) tradeResponse {
	resp := tradeResponse{
		ID:            t.ID,
		BatchID:       t.BatchID,
		ClientID:      t.ClientID,
		ClientName:    t.ClientName,
		StockSymbol:   t.StockSymbol,
		Type:          string(t.Type),
		Quantity:      t.Quantity,
		Price:         money(t.Price),
		TotalValue:    money(t.TotalValue),
		Commission:    money(t.Commission),
		Status:        string(t.Status),
		FailureReason: t.FailureReason,
		CreatedAt:     timestamp(t.CreatedAt),
	}
	if t.TradeDate != nil {
		s := t.TradeDate.Format(domain.DateLayout)
		resp.TradeDate = &s
	}
	if t.SettlementDate != nil {
		s := t.SettlementDate.Format(domain.DateLayout)
		resp.SettlementDate = &s
	}
	return resp
}
