package handlers

import (
	"net/http"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// EnrichmentHandler handles enrichment batch routes.
type EnrichmentHandler struct {
	enrichmentService EnrichmentServiceInterface
}

// NewEnrichmentHandler creates a new EnrichmentHandler.
func NewEnrichmentHandler(enrichmentService EnrichmentServiceInterface) *EnrichmentHandler {
	return &EnrichmentHandler{
		enrichmentService: enrichmentService,
	}
}

// ApplyBatchRequest is the body of POST /api/enrichment/apply.
type ApplyBatchRequest struct {
	Records []*models.EnrichmentRecord `json:"records" validate:"required,min=1,dive"`
}

// ApplyBatch merges an enrichment batch into the review table and returns
// the per-batch report, including how many records matched, how many were
// recorded as orphans, and per-record failures.
func (h *EnrichmentHandler) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	var req ApplyBatchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if len(req.Records) == 0 {
		utils.BadRequest(w, "The batch must contain at least one enrichment record", nil)
		return
	}

	report, err := h.enrichmentService.ApplyBatch(r.Context(), req.Records)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, report)
}
