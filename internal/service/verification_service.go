package service

import (
	"context"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/repository"
)

// VerificationService exposes the data quality checks run after loads and
// enrichment batches: cross-source row counts, rating consistency, and
// enrichment coverage including the orphan backlog.
type VerificationService struct {
	statsRepo        repository.StatsRepository
	verificationRepo repository.VerificationRepository
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	statsRepo repository.StatsRepository,
	verificationRepo repository.VerificationRepository,
) *VerificationService {
	return &VerificationService{
		statsRepo:        statsRepo,
		verificationRepo: verificationRepo,
	}
}

// VerificationSummary is the full verification report: the per-bank figures
// an operator compares against the upstream source of truth, plus the
// enrichment coverage over the whole table.
type VerificationSummary struct {
	// ReviewCounts lists stored review counts per bank
	ReviewCounts []*models.BankReviewCount `json:"review_counts"`

	// AvgRatings lists mean star ratings per bank
	AvgRatings []*models.BankAvgRating `json:"avg_ratings"`

	// Coverage reports enrichment completeness and the orphan backlog
	Coverage *models.CoverageReport `json:"coverage"`
}

// Summary assembles the verification report from the current table state.
func (s *VerificationService) Summary(ctx context.Context) (*VerificationSummary, error) {
	counts, err := s.statsRepo.ReviewCountsPerBank(ctx)
	if err != nil {
		return nil, err
	}

	ratings, err := s.statsRepo.AvgRatingPerBank(ctx)
	if err != nil {
		return nil, err
	}

	coverage, err := s.verificationRepo.Coverage(ctx)
	if err != nil {
		return nil, err
	}

	return &VerificationSummary{
		ReviewCounts: counts,
		AvgRatings:   ratings,
		Coverage:     coverage,
	}, nil
}

// Orphans returns a page of enrichment orphans, optionally filtered to one
// batch, along with the matching total.
func (s *VerificationService) Orphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error) {
	return s.verificationRepo.ListOrphans(ctx, batchID, page, pageSize)
}
