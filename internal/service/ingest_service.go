// Package service implements the business operations behind the HTTP
// handlers: batch ingest of raw reviews, application of enrichment batches,
// insight derivation, and data quality verification.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/repository"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// IngestService loads batches of raw reviews. Banks are created on first
// sight; duplicate reviews (same content hash) are skipped silently so
// re-running a load converges to the same table state.
type IngestService struct {
	bankRepo   repository.BankRepository
	reviewRepo repository.ReviewRepository
}

// NewIngestService creates a new IngestService.
func NewIngestService(bankRepo repository.BankRepository, reviewRepo repository.ReviewRepository) *IngestService {
	return &IngestService{
		bankRepo:   bankRepo,
		reviewRepo: reviewRepo,
	}
}

// IngestBatch loads a batch of raw review rows. Each row resolves its bank
// by name (creating it if new), computes the content hash when the loader
// did not supply one, and inserts the review. A row that fails validation or
// storage is recorded in the report without aborting the rest of the batch.
func (s *IngestService) IngestBatch(ctx context.Context, rows []*models.IngestRow) (*models.IngestReport, error) {
	report := &models.IngestReport{
		BatchID: uuid.NewString(),
		Total:   len(rows),
	}

	// Banks repeat heavily within a batch; resolve each name once.
	banks := make(map[string]*models.Bank)

	for i, row := range rows {
		if err := utils.ValidateStruct(row); err != nil {
			report.AddFailure(i, failureKey(row), err)
			continue
		}

		bank, ok := banks[row.BankName]
		if !ok {
			var created bool
			var err error
			bank, created, err = s.bankRepo.GetOrCreate(ctx, row.BankName, row.AppName)
			if err != nil {
				report.AddFailure(i, failureKey(row), err)
				continue
			}
			banks[row.BankName] = bank
			if created {
				report.BanksCreated++
			}
		}

		review := models.NewReview(bank.ID, bank.BankName, row.ReviewText, row.Rating, row.ReviewDate, row.Source)
		if row.ReviewHash != "" {
			review.ReviewHash = row.ReviewHash
		}

		inserted, err := s.reviewRepo.Create(ctx, review)
		if err != nil {
			report.AddFailure(i, review.ReviewHash, err)
			continue
		}

		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}

	log.Info().
		Str("batch_id", report.BatchID).
		Int("total", report.Total).
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Int("banks_created", report.BanksCreated).
		Int("failed", len(report.Failures)).
		Msg("Ingest batch completed")

	return report, nil
}

// failureKey labels a failed row in the report before a hash exists for it.
// Falls back to the bank name when the loader supplied no hash.
func failureKey(row *models.IngestRow) string {
	if row.ReviewHash != "" {
		return row.ReviewHash
	}
	return row.BankName
}
