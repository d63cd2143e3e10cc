package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/repository"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// EnrichmentService applies externally computed sentiment and theme batches
// to stored reviews. Records join on the review content hash; a record whose
// hash matches nothing is persisted as an orphan rather than dropped, so the
// divergence between the enrichment source and the review table stays
// visible to the verification layer.
type EnrichmentService struct {
	reviewRepo       repository.ReviewRepository
	themeRepo        repository.ThemeRepository
	verificationRepo repository.VerificationRepository
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(
	reviewRepo repository.ReviewRepository,
	themeRepo repository.ThemeRepository,
	verificationRepo repository.VerificationRepository,
) *EnrichmentService {
	return &EnrichmentService{
		reviewRepo:       reviewRepo,
		themeRepo:        themeRepo,
		verificationRepo: verificationRepo,
	}
}

// ApplyBatch merges a batch of enrichment records into the review table.
// For each record the review's enrichment columns are overwritten, the
// primary and secondary themes are resolved (creating theme rows on first
// sight) and linked through the association table. Re-applying the same
// batch converges to the same state. One bad record fails in the report,
// not the batch.
func (s *EnrichmentService) ApplyBatch(ctx context.Context, records []*models.EnrichmentRecord) (*models.EnrichmentReport, error) {
	report := &models.EnrichmentReport{
		BatchID: uuid.NewString(),
		Total:   len(records),
	}

	for i, record := range records {
		if err := utils.ValidateStruct(record); err != nil {
			report.AddFailure(i, record.ReviewHash, err)
			continue
		}

		matched, err := s.reviewRepo.UpdateEnrichmentByHash(
			ctx,
			record.ReviewHash,
			record.SentimentLabel,
			record.SentimentScore,
			record.ThemePrimary,
		)
		if err != nil {
			report.AddFailure(i, record.ReviewHash, err)
			continue
		}

		if !matched {
			orphan := &models.EnrichmentOrphan{
				ReviewHash: record.ReviewHash,
				BatchID:    report.BatchID,
			}
			if err := s.verificationRepo.RecordOrphan(ctx, orphan); err != nil {
				report.AddFailure(i, record.ReviewHash, err)
				continue
			}
			report.Unmatched++
			continue
		}

		report.Matched++

		linked, err := s.linkThemes(ctx, record)
		if err != nil {
			report.AddFailure(i, record.ReviewHash, err)
			continue
		}
		report.ThemesLinked += linked
	}

	log.Info().
		Str("batch_id", report.BatchID).
		Int("total", report.Total).
		Int("matched", report.Matched).
		Int("unmatched", report.Unmatched).
		Int("themes_linked", report.ThemesLinked).
		Int("failed", len(report.Failures)).
		Msg("Enrichment batch applied")

	return report, nil
}

// linkThemes resolves the record's primary and secondary themes and writes
// the review/theme associations, returning how many new links were created.
func (s *EnrichmentService) linkThemes(ctx context.Context, record *models.EnrichmentRecord) (int, error) {
	names := make([]string, 0, len(record.SecondaryThemes)+1)
	if record.ThemePrimary != nil && *record.ThemePrimary != "" {
		names = append(names, *record.ThemePrimary)
	}
	for _, name := range record.SecondaryThemes {
		if name != "" {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return 0, nil
	}

	reviewID, err := s.reviewRepo.GetIDByHash(ctx, record.ReviewHash)
	if err != nil {
		return 0, err
	}

	linked := 0
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		theme, _, err := s.themeRepo.GetOrCreate(ctx, name)
		if err != nil {
			return linked, err
		}

		wasNew, err := s.themeRepo.LinkReview(ctx, reviewID, theme.ID)
		if err != nil {
			return linked, err
		}
		if wasNew {
			linked++
		}
	}

	return linked, nil
}
