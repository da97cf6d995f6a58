package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/efreitasn/tradeops/internal/domain"
	"github.com/efreitasn/tradeops/internal/service"
	"github.com/go-chi/chi/v5/middleware"
)

// uploadField is the multipart form field that carries the XML file.
const uploadField = "trades"

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

// UploadHandler handles trade file uploads.
type UploadHandler struct {
	settlementSvc *service.SettlementService
	maxSize       int64
	logger        *slog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(settlementSvc *service.SettlementService, maxSize int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{settlementSvc: settlementSvc, maxSize: maxSize, logger: logger}
}

// uploadResponse is the JSON response for POST /api/upload-trades.
type uploadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	BatchID   string `json:"batch_id"`
}

// Upload handles POST /api/upload-trades.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusBadRequest, "file_too_large", "Uploaded file exceeds the size limit")
			return
		}
		mapUploadError(w, domain.ErrNoFile)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		mapUploadError(w, domain.ErrNoFile)
		return
	}
	defer file.Close()

	result, err := h.settlementSvc.ProcessFile(r.Context(), file)
	if err != nil {
		if !errors.Is(err, domain.ErrNoOrders) {
			h.logger.Error("upload failed",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
		}
		mapUploadError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, uploadResponse{
		Success:   true,
		Message:   result.Message(),
		Processed: result.Processed,
		Failed:    result.Failed,
		Total:     result.Total,
		BatchID:   result.BatchID,
	})
}

// mapUploadError maps upload errors to HTTP responses. Anything that is not
// a request error is reported as a 500 without detail.
func mapUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		WriteError(w, http.StatusBadRequest, "no_file", "No file uploaded")
	case errors.Is(err, domain.ErrNoOrders):
		WriteError(w, http.StatusBadRequest, "no_orders", "No valid orders found in the file")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "Error processing trades")
	}
}
