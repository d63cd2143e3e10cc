package handlers

import (
	"net/http"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// ThemeHandler handles theme taxonomy routes.
type ThemeHandler struct {
	themeRepo ThemeRepositoryInterface
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(themeRepo ThemeRepositoryInterface) *ThemeHandler {
	return &ThemeHandler{
		themeRepo: themeRepo,
	}
}

// ThemeRequest is the body for creating a theme.
type ThemeRequest struct {
	ThemeName string `json:"theme_name" validate:"required"`
}

// ListThemes returns the full theme taxonomy.
func (h *ThemeHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeRepo.List(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, themes)
}

// CreateTheme creates a new theme.
func (h *ThemeHandler) CreateTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	theme := &models.Theme{Name: req.ThemeName}
	if err := h.themeRepo.Create(r.Context(), theme); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, theme)
}

// GetTheme returns a theme by ID.
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid theme ID", nil)
		return
	}

	theme, err := h.themeRepo.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, theme)
}

// DeleteTheme removes a theme and its review associations.
func (h *ThemeHandler) DeleteTheme(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid theme ID", nil)
		return
	}

	if err := h.themeRepo.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}
