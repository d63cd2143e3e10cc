package handlers_test

import (
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

// MockInsightService is a mock implementation of the insight service
type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) BankKPIs(ctx context.Context) ([]*models.BankKPI, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BankKPI), args.Error(1)
}

func (m *MockInsightService) ThemeStats(ctx context.Context) ([]*models.ThemeStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ThemeStat), args.Error(1)
}

func (m *MockInsightService) Drivers(ctx context.Context) ([]*models.ThemeInsight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ThemeInsight), args.Error(1)
}

func (m *MockInsightService) PainPoints(ctx context.Context) ([]*models.ThemeInsight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ThemeInsight), args.Error(1)
}

func (m *MockInsightService) RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RatingSentimentStat), args.Error(1)
}

func (m *MockInsightService) Evidence(ctx context.Context, bankID int64, theme string, kind models.InsightKind) ([]*models.EvidenceSnippet, error) {
	args := m.Called(ctx, bankID, theme, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EvidenceSnippet), args.Error(1)
}

func (m *MockInsightService) Recommendations(ctx context.Context) ([]*models.BankRecommendation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BankRecommendation), args.Error(1)
}

func setupInsightTest() (*handlers.InsightHandler, *MockInsightService) {
	mockService := new(MockInsightService)
	handler := handlers.NewInsightHandler(mockService)
	return handler, mockService
}

func TestGetKPIs(t *testing.T) {
	handler, mockService := setupInsightTest()

	t.Run("Success", func(t *testing.T) {
		avg := 4.2
		expected := []*models.BankKPI{
			{BankID: 1, BankName: "Commercial Bank of Ethiopia", NReviews: 120, AvgRating: &avg, PosShare: 0.6, NegShare: 0.25, NeutralShare: 0.1},
			{BankID: 2, BankName: "Bank of Abyssinia", NReviews: 0, AvgRating: nil},
		}

		mockService.On("BankKPIs", mock.Anything).Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/kpis", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetKPIs(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool              `json:"success"`
			Data    []*models.BankKPI `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		require.Len(t, responseWrapper.Data, 2)
		assert.Equal(t, 120, responseWrapper.Data[0].NReviews)
		assert.Nil(t, responseWrapper.Data[1].AvgRating)

		mockService.AssertExpectations(t)
	})

	t.Run("Service Error", func(t *testing.T) {
		mockService.On("BankKPIs", mock.Anything).Return(nil, errors.New("query failed")).Once()

		req, err := http.NewRequest("GET", "/api/insights/kpis", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetKPIs(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGetDrivers(t *testing.T) {
	handler, mockService := setupInsightTest()

	t.Run("Success", func(t *testing.T) {
		expected := []*models.ThemeInsight{
			{
				ThemeStat: models.ThemeStat{BankID: 1, BankName: "Commercial Bank of Ethiopia", Theme: "UX_UI", N: 30},
				Kind:      models.KindDriver,
				Score:     1.76,
			},
		}

		mockService.On("Drivers", mock.Anything).Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/drivers", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetDrivers(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                   `json:"success"`
			Data    []*models.ThemeInsight `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		require.Len(t, responseWrapper.Data, 1)
		assert.Equal(t, models.KindDriver, responseWrapper.Data[0].Kind)
		assert.InDelta(t, 1.76, responseWrapper.Data[0].Score, 0.0001)

		mockService.AssertExpectations(t)
	})
}

func TestGetEvidence(t *testing.T) {
	handler, mockService := setupInsightTest()

	t.Run("Success With Defaults", func(t *testing.T) {
		label := "NEGATIVE"
		expected := []*models.EvidenceSnippet{
			{ReviewID: 12, Text: "The app logs me out during every transfer", SentimentLabel: &label},
		}

		mockService.On("Evidence", mock.Anything, int64(1), "TXN_RELIABILITY", models.KindPainPoint).
			Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/evidence?bank_id=1&theme=TXN_RELIABILITY", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetEvidence(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                      `json:"success"`
			Data    []*models.EvidenceSnippet `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		require.Len(t, responseWrapper.Data, 1)
		assert.Equal(t, int64(12), responseWrapper.Data[0].ReviewID)

		mockService.AssertExpectations(t)
	})

	t.Run("Explicit Driver Kind", func(t *testing.T) {
		mockService.On("Evidence", mock.Anything, int64(2), "UX_UI", models.KindDriver).
			Return([]*models.EvidenceSnippet{}, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/evidence?bank_id=2&theme=UX_UI&kind=driver", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetEvidence(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Missing Bank ID", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/api/insights/evidence?theme=UX_UI", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetEvidence(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Missing Theme", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/api/insights/evidence?bank_id=1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetEvidence(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Kind", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/api/insights/evidence?bank_id=1&theme=UX_UI&kind=SOMETHING", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetEvidence(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetRecommendations(t *testing.T) {
	handler, mockService := setupInsightTest()

	t.Run("Success", func(t *testing.T) {
		expected := []*models.BankRecommendation{
			{
				BankID:          1,
				BankName:        "Commercial Bank of Ethiopia",
				BasedOnThemes:   []string{"ACCESS_AUTH", "STABILITY_BUGS"},
				Recommendations: []string{"Simplify the login and OTP flow", "Invest in crash triage for the most recent release"},
			},
		}

		mockService.On("Recommendations", mock.Anything).Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/recommendations", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var responseWrapper struct {
			Success bool                         `json:"success"`
			Data    []*models.BankRecommendation `json:"data"`
		}
		err = json.Unmarshal(rr.Body.Bytes(), &responseWrapper)
		require.NoError(t, err)
		require.Len(t, responseWrapper.Data, 1)
		assert.Len(t, responseWrapper.Data[0].Recommendations, 2)

		mockService.AssertExpectations(t)
	})
}

func TestGetRatingSentiment(t *testing.T) {
	handler, mockService := setupInsightTest()

	t.Run("Success", func(t *testing.T) {
		rating := 1
		score := -0.7
		expected := []*models.RatingSentimentStat{
			{BankName: "Bank of Abyssinia", Rating: &rating, NReviews: 18, MeanSentimentScore: &score, PosRate: 0.05, NegRate: 0.85},
		}

		mockService.On("RatingSentiment", mock.Anything).Return(expected, nil).Once()

		req, err := http.NewRequest("GET", "/api/insights/rating-sentiment", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		handler.GetRatingSentiment(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}
