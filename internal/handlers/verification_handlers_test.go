package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/etbank-analytics/bankreviews-backend/internal/handlers"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/service"
)

// MockVerificationService is a mock implementation of the verification service
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Summary(ctx context.Context) (*service.VerificationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerificationSummary), args.Error(1)
}

func (m *MockVerificationService) Orphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error) {
	args := m.Called(ctx, batchID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.EnrichmentOrphan), args.Int(1), args.Error(2)
}

func TestGetSummary(t *testing.T) {
	mockService := new(MockVerificationService)
	handler := handlers.NewVerificationHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		avg := 4.1
		expected := &service.VerificationSummary{
			ReviewCounts: []*models.BankReviewCount{
				{BankName: "Commercial Bank of Ethiopia", NReviews: 410},
				{BankName: "Dashen Bank", NReviews: 150},
			},
			AvgRatings: []*models.BankAvgRating{
				{BankName: "Commercial Bank of Ethiopia", AvgRating: &avg},
			},
			Coverage: &models.CoverageReport{
				TotalReviews:        560,
				WithSentimentLabel:  540,
				WithSentimentScore:  540,
				WithThemePrimary:    500,
				OrphanedEnrichments: 3,
			},
		}

		mockService.On("Summary", mock.Anything).Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/verification/summary", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetSummary(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                        `json:"success"`
			Data    service.VerificationSummary `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		assert.Len(t, responseWrapper.Data.ReviewCounts, 2)
		assert.Equal(t, 560, responseWrapper.Data.Coverage.TotalReviews)
		assert.Equal(t, 3, responseWrapper.Data.Coverage.OrphanedEnrichments)

		mockService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		mockService.On("Summary", mock.Anything).Return(nil, errors.New("query failed")).Once()

		req, err := http.NewRequest("GET", "/api/verification/summary", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetSummary(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGetOrphans(t *testing.T) {
	mockService := new(MockVerificationService)
	handler := handlers.NewVerificationHandler(mockService)

	t.Run("All Batches", func(t *testing.T) {
		expected := []*models.EnrichmentOrphan{
			{ID: 1, ReviewHash: "deadbeef", BatchID: "e-1", ReportedAt: time.Now()},
		}

		mockService.On("Orphans", mock.Anything, "", 1, 20).Return(expected, 1, nil).Once()

		req, err := http.NewRequest("GET", "/api/verification/orphans", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetOrphans(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                       `json:"success"`
			Data    []*models.EnrichmentOrphan `json:"data"`
			Meta    struct {
				TotalItems int `json:"total_items"`
			} `json:"meta"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		require.Len(t, responseWrapper.Data, 1)
		assert.Equal(t, "deadbeef", responseWrapper.Data[0].ReviewHash)
		assert.Equal(t, 1, responseWrapper.Meta.TotalItems)

		mockService.AssertExpectations(t)
	})

	t.Run("Filtered By Batch", func(t *testing.T) {
		mockService.On("Orphans", mock.Anything, "e-7", 2, 10).
			Return([]*models.EnrichmentOrphan{}, 0, nil).Once()

		req, err := http.NewRequest("GET", "/api/verification/orphans?batch_id=e-7&page=2&page_size=10", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetOrphans(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}
