package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/etbank-analytics/bankreviews-backend/internal/database"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// VerificationRepository defines the queries behind the data quality checks:
// enrichment coverage over the review table and the durable record of
// enrichment inputs that never matched a stored review.
type VerificationRepository interface {
	Coverage(ctx context.Context) (*models.CoverageReport, error)
	RecordOrphan(ctx context.Context, orphan *models.EnrichmentOrphan) error
	ListOrphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error)
	CountOrphans(ctx context.Context) (int, error)
}

// PostgresVerificationRepository is a PostgreSQL implementation of VerificationRepository.
type PostgresVerificationRepository struct {
	db *database.Pool
}

// NewVerificationRepository creates a new VerificationRepository.
func NewVerificationRepository(db *database.Pool) VerificationRepository {
	return &PostgresVerificationRepository{
		db: db,
	}
}

// Coverage counts total reviews and how many carry each enrichment column,
// plus the orphan backlog, in a single pass.
func (r *PostgresVerificationRepository) Coverage(ctx context.Context) (*models.CoverageReport, error) {
	startTime := time.Now()

	query := `
        SELECT COUNT(*) AS total_reviews,
               COUNT(sentiment_label) AS with_sentiment_label,
               COUNT(sentiment_score) AS with_sentiment_score,
               COUNT(theme_primary) AS with_theme_primary,
               (SELECT COUNT(*) FROM enrichment_orphans) AS orphaned_enrichments
        FROM reviews
    `

	report := &models.CoverageReport{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&report.TotalReviews,
		&report.WithSentimentLabel,
		&report.WithSentimentScore,
		&report.WithThemePrimary,
		&report.OrphanedEnrichments,
	)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query enrichment coverage: %w", err)
	}

	return report, nil
}

// RecordOrphan persists an enrichment input whose hash matched no review.
func (r *PostgresVerificationRepository) RecordOrphan(ctx context.Context, orphan *models.EnrichmentOrphan) error {
	startTime := time.Now()

	orphan.ReportedAt = time.Now()

	query := `
        INSERT INTO enrichment_orphans (review_hash, batch_id, reported_at)
        VALUES ($1, $2, $3)
        RETURNING orphan_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		orphan.ReviewHash,
		orphan.BatchID,
		orphan.ReportedAt,
	).Scan(&orphan.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{orphan.ReviewHash, orphan.BatchID, orphan.ReportedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to record enrichment orphan: %w", err)
	}

	return nil
}

// ListOrphans retrieves a page of orphan records, newest first, optionally
// filtered to one enrichment batch, along with the matching total.
func (r *PostgresVerificationRepository) ListOrphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error) {
	startTime := time.Now()

	countQuery := `
        SELECT COUNT(*)
        FROM enrichment_orphans
        WHERE ($1 = '' OR batch_id = $1)
    `

	var total int
	err := r.db.QueryRowContext(ctx, countQuery, batchID).Scan(&total)

	utils.LogDBQuery(
		countQuery,
		[]interface{}{batchID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to count enrichment orphans: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `
        SELECT orphan_id, review_hash, batch_id, reported_at
        FROM enrichment_orphans
        WHERE ($1 = '' OR batch_id = $1)
        ORDER BY reported_at DESC, orphan_id DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.QueryContext(ctx, query, batchID, pageSize, offset)

	utils.LogDBQuery(
		query,
		[]interface{}{batchID, pageSize, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enrichment orphans: %w", err)
	}
	defer rows.Close()

	var orphans []*models.EnrichmentOrphan
	for rows.Next() {
		orphan := &models.EnrichmentOrphan{}
		if err := rows.Scan(
			&orphan.ID,
			&orphan.ReviewHash,
			&orphan.BatchID,
			&orphan.ReportedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan orphan row: %w", err)
		}
		orphans = append(orphans, orphan)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orphan rows: %w", err)
	}

	return orphans, total, nil
}

// CountOrphans counts every recorded orphan.
func (r *PostgresVerificationRepository) CountOrphans(ctx context.Context) (int, error) {
	startTime := time.Now()

	query := `SELECT COUNT(*) FROM enrichment_orphans`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return 0, fmt.Errorf("failed to count enrichment orphans: %w", err)
	}

	return count, nil
}
