package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// BankHandler handles bank reference-data routes.
type BankHandler struct {
	bankRepo   BankRepositoryInterface
	reviewRepo ReviewRepositoryInterface
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankRepo BankRepositoryInterface, reviewRepo ReviewRepositoryInterface) *BankHandler {
	return &BankHandler{
		bankRepo:   bankRepo,
		reviewRepo: reviewRepo,
	}
}

// BankRequest is the body for creating a bank.
type BankRequest struct {
	BankName string  `json:"bank_name" validate:"required"`
	AppName  *string `json:"app_name,omitempty"`
}

// BankAppRequest is the body for updating a bank's app name. The bank name
// itself is immutable: it participates in every stored review's content
// hash, so the request deliberately has no bank_name field.
type BankAppRequest struct {
	AppName *string `json:"app_name"`
}

// urlParamID parses the {id} chi route parameter.
func urlParamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListBanks returns every bank.
func (h *BankHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.bankRepo.List(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, banks)
}

// CreateBank creates a new bank.
func (h *BankHandler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req BankRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bank := models.NewBank(req.BankName, req.AppName)
	if err := h.bankRepo.Create(r.Context(), bank); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, bank)
}

// GetBank returns a bank by ID.
func (h *BankHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid bank ID", nil)
		return
	}

	bank, err := h.bankRepo.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, bank)
}

// UpdateBankApp updates a bank's app name. Attempts to rename the bank are
// rejected at decode time, since the body accepts no bank_name field.
func (h *BankHandler) UpdateBankApp(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid bank ID", nil)
		return
	}

	var req BankAppRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.bankRepo.UpdateAppName(r.Context(), id, req.AppName); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	bank, err := h.bankRepo.GetByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, bank)
}

// DeleteBank removes a bank and, through cascading, its reviews.
func (h *BankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid bank ID", nil)
		return
	}

	if err := h.bankRepo.Delete(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// ListBankReviews returns a page of a bank's reviews.
func (h *BankHandler) ListBankReviews(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid bank ID", nil)
		return
	}

	// Resolve the bank first so a missing bank is a 404, not an empty page.
	if _, err := h.bankRepo.GetByID(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	params := utils.GetPaginationParams(r)
	reviews, total, err := h.reviewRepo.ListByBank(r.Context(), id, params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Paginated(w, constants.StatusOK, reviews, params.Page, params.PageSize, total)
}
