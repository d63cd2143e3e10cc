package handlers

import (
	"net/http"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// IngestHandler handles raw review ingestion routes.
type IngestHandler struct {
	ingestService IngestServiceInterface
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService IngestServiceInterface) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
	}
}

// IngestBatchRequest is the body of POST /api/reviews/ingest.
type IngestBatchRequest struct {
	Reviews []*models.IngestRow `json:"reviews" validate:"required,min=1,dive"`
}

// IngestBatch loads a batch of raw reviews and returns the per-batch report.
// Per-row failures appear in the report; the endpoint itself fails only when
// the batch cannot be processed at all.
func (h *IngestHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req IngestBatchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if len(req.Reviews) == 0 {
		utils.BadRequest(w, "The batch must contain at least one review", nil)
		return
	}

	report, err := h.ingestService.IngestBatch(r.Context(), req.Reviews)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, report)
}
