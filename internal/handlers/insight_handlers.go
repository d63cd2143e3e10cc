package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// InsightHandler handles the read-only analytics routes. Every endpoint
// recomputes from the stored reviews; responses reflect the table state at
// the time of the call.
type InsightHandler struct {
	insightService InsightServiceInterface
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService InsightServiceInterface) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GetKPIs returns the headline statistics for every bank.
func (h *InsightHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.insightService.BankKPIs(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, kpis)
}

// GetThemeStats returns the per-(bank, theme) aggregates.
func (h *InsightHandler) GetThemeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.insightService.ThemeStats(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, stats)
}

// GetDrivers returns the ranked driver themes per bank.
func (h *InsightHandler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.insightService.Drivers(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, drivers)
}

// GetPainPoints returns the ranked pain-point themes per bank.
func (h *InsightHandler) GetPainPoints(w http.ResponseWriter, r *http.Request) {
	painPoints, err := h.insightService.PainPoints(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, painPoints)
}

// GetRatingSentiment returns sentiment aggregates per (bank, rating) cell.
func (h *InsightHandler) GetRatingSentiment(w http.ResponseWriter, r *http.Request) {
	stats, err := h.insightService.RatingSentiment(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, stats)
}

// GetEvidence returns sampled review snippets for a (bank, theme) insight.
// Query parameters: bank_id (required), theme (required), kind (DRIVER or
// PAIN_POINT, defaults to PAIN_POINT).
func (h *InsightHandler) GetEvidence(w http.ResponseWriter, r *http.Request) {
	bankIDRaw := r.URL.Query().Get(constants.QueryParamBankID)
	bankID, err := strconv.ParseInt(bankIDRaw, 10, 64)
	if err != nil || bankID <= 0 {
		utils.BadRequest(w, "A valid bank_id query parameter is required", nil)
		return
	}

	theme := r.URL.Query().Get(constants.QueryParamTheme)
	if theme == "" {
		utils.BadRequest(w, "The theme query parameter is required", nil)
		return
	}

	kind := models.KindPainPoint
	if raw := r.URL.Query().Get(constants.QueryParamKind); raw != "" {
		switch strings.ToUpper(raw) {
		case string(models.KindDriver):
			kind = models.KindDriver
		case string(models.KindPainPoint):
			kind = models.KindPainPoint
		default:
			utils.BadRequest(w, "kind must be DRIVER or PAIN_POINT", nil)
			return
		}
	}

	snippets, err := h.insightService.Evidence(r.Context(), bankID, theme, kind)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, snippets)
}

// GetRecommendations returns the actionable suggestions per bank.
func (h *InsightHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	recommendations, err := h.insightService.Recommendations(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, recommendations)
}
