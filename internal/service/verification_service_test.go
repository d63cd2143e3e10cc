package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
)

func TestVerificationSummary(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		statsRepo := NewMockStatsRepository()
		statsRepo.counts = []*models.BankReviewCount{
			{BankName: "BOA", NReviews: 120},
			{BankName: "CBE", NReviews: 80},
		}
		statsRepo.avgRatings = []*models.BankAvgRating{
			{BankName: "BOA", AvgRating: floatPtr(3.8)},
			{BankName: "CBE", AvgRating: nil},
		}
		verificationRepo := NewMockVerificationRepository()
		verificationRepo.coverage = &models.CoverageReport{
			TotalReviews:        200,
			WithSentimentLabel:  190,
			WithSentimentScore:  190,
			WithThemePrimary:    180,
			OrphanedEnrichments: 3,
		}
		svc := NewVerificationService(statsRepo, verificationRepo)

		// Act
		summary, err := svc.Summary(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Len(t, summary.ReviewCounts, 2)
		assert.Len(t, summary.AvgRatings, 2)
		assert.Equal(t, 200, summary.Coverage.TotalReviews)
		assert.Equal(t, 3, summary.Coverage.OrphanedEnrichments)
	})

	t.Run("Propagates Repository Errors", func(t *testing.T) {
		// Arrange
		statsRepo := NewMockStatsRepository()
		statsRepo.failOn["ReviewCountsPerBank"] = errors.New("database error")
		verificationRepo := NewMockVerificationRepository()
		svc := NewVerificationService(statsRepo, verificationRepo)

		// Act
		summary, err := svc.Summary(context.Background())

		// Assert
		assert.Error(t, err)
		assert.Nil(t, summary)
	})
}

func TestOrphans(t *testing.T) {
	t.Run("Filters By Batch", func(t *testing.T) {
		// Arrange
		statsRepo := NewMockStatsRepository()
		verificationRepo := NewMockVerificationRepository()
		require.NoError(t, verificationRepo.RecordOrphan(context.Background(), &models.EnrichmentOrphan{
			ReviewHash: "h1", BatchID: "batch-1",
		}))
		require.NoError(t, verificationRepo.RecordOrphan(context.Background(), &models.EnrichmentOrphan{
			ReviewHash: "h2", BatchID: "batch-2",
		}))
		svc := NewVerificationService(statsRepo, verificationRepo)

		// Act
		orphans, total, err := svc.Orphans(context.Background(), "batch-1", 1, 20)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orphans, 1)
		assert.Equal(t, "h1", orphans[0].ReviewHash)
	})
}
