package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/etbank-analytics/bankreviews-backend/internal/handlers"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
)

// MockEnrichmentService is a mock implementation of the enrichment service
type MockEnrichmentService struct {
	mock.Mock
}

func (m *MockEnrichmentService) ApplyBatch(ctx context.Context, records []*models.EnrichmentRecord) (*models.EnrichmentReport, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichmentReport), args.Error(1)
}

func TestApplyBatch(t *testing.T) {
	mockService := new(MockEnrichmentService)
	handler := handlers.NewEnrichmentHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		expectedReport := &models.EnrichmentReport{
			BatchID:      "e-1",
			Total:        2,
			Matched:      1,
			Unmatched:    1,
			ThemesLinked: 2,
		}

		mockService.On("ApplyBatch", mock.Anything, mock.Anything).Return(expectedReport, nil).Once()

		body := map[string]interface{}{
			"records": []map[string]interface{}{
				{"review_hash": "abc123", "sentiment_label": "POSITIVE", "theme_primary": "UX_UI"},
				{"review_hash": "missing", "sentiment_label": "NEGATIVE"},
			},
		}
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		req, err := http.NewRequest("POST", "/api/enrichment/apply", bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		handler.ApplyBatch(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                    `json:"success"`
			Data    models.EnrichmentReport `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)

		assert.True(t, responseWrapper.Success)
		assert.Equal(t, expectedReport.Matched, responseWrapper.Data.Matched)
		assert.Equal(t, expectedReport.Unmatched, responseWrapper.Data.Unmatched)
		assert.Equal(t, expectedReport.ThemesLinked, responseWrapper.Data.ThemesLinked)

		mockService.AssertExpectations(t)
	})

	t.Run("Empty Batch", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/api/enrichment/apply", bytes.NewBufferString(`{"records": []}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		handler.ApplyBatch(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Service Error", func(t *testing.T) {
		mockService.On("ApplyBatch", mock.Anything, mock.Anything).Return(nil, errors.New("service error")).Once()

		payload := []byte(`{"records": [{"review_hash": "abc"}]}`)

		req, err := http.NewRequest("POST", "/api/enrichment/apply", bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		handler.ApplyBatch(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}
