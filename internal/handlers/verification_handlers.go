package handlers

import (
	"net/http"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// VerificationHandler handles the data quality routes.
type VerificationHandler struct {
	verificationService VerificationServiceInterface
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verificationService VerificationServiceInterface) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
	}
}

// GetSummary returns the verification report: per-bank review counts and
// average ratings to compare against the upstream source, plus enrichment
// coverage and the orphan backlog.
func (h *VerificationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.verificationService.Summary(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, summary)
}

// GetOrphans returns a page of enrichment orphans, optionally filtered by
// the batch_id query parameter.
func (h *VerificationHandler) GetOrphans(w http.ResponseWriter, r *http.Request) {
	batchID := r.URL.Query().Get(constants.QueryParamBatchID)
	params := utils.GetPaginationParams(r)

	orphans, total, err := h.verificationService.Orphans(r.Context(), batchID, params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, orphans, params.Page, params.PageSize, total)
}
