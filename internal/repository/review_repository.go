package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/etbank-analytics/bankreviews-backend/internal/database"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// reviewColumns is the column list shared by every review SELECT.
const reviewColumns = `review_id, bank_id, review_text, rating, review_date, source, review_hash,
        sentiment_label, sentiment_score, theme_primary, created_at`

// ReviewRepository defines methods for interacting with review data.
type ReviewRepository interface {
	// Create inserts a review. Returns false when a review with the same
	// hash already exists, in which case the insert is a silent no-op.
	Create(ctx context.Context, review *models.Review) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByHash(ctx context.Context, hash string) (*models.Review, error)
	GetIDByHash(ctx context.Context, hash string) (int64, error)
	// UpdateEnrichmentByHash overwrites the enrichment columns of the review
	// with the given hash. Returns false when no review matches the hash.
	UpdateEnrichmentByHash(ctx context.Context, hash string, sentimentLabel *string, sentimentScore *float64, themePrimary *string) (bool, error)
	ListByBank(ctx context.Context, bankID int64, page, pageSize int) ([]*models.Review, int, error)
	Delete(ctx context.Context, id int64) error
}

// PostgresReviewRepository is a PostgreSQL implementation of ReviewRepository.
type PostgresReviewRepository struct {
	db *database.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *database.Pool) ReviewRepository {
	return &PostgresReviewRepository{
		db: db,
	}
}

// Create inserts a review, relying on the unique hash constraint for
// idempotency. A duplicate hash leaves the existing row untouched and
// returns (false, nil); the stored row's identity is never reassigned.
func (r *PostgresReviewRepository) Create(ctx context.Context, review *models.Review) (bool, error) {
	startTime := time.Now()

	review.CreatedAt = time.Now()

	query := `
        INSERT INTO reviews (bank_id, review_text, rating, review_date, source, review_hash, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (review_hash) DO NOTHING
        RETURNING review_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		review.BankID,
		review.ReviewText,
		review.Rating,
		review.ReviewDate,
		review.Source,
		review.ReviewHash,
		review.CreatedAt,
	).Scan(&review.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{review.BankID, review.ReviewHash},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// ON CONFLICT DO NOTHING yields no row when the hash already exists.
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503":
				return false, utils.NewIntegrityViolationError(
					fmt.Sprintf("bank %d does not exist", review.BankID), pqErr.Error())
			case "23514":
				return false, utils.NewIntegrityViolationError(
					fmt.Sprintf("a value violates the %s constraint", pqErr.Constraint), pqErr.Error())
			}
		}
		return false, fmt.Errorf("failed to create review: %w", err)
	}

	return true, nil
}

// GetByID retrieves a review by ID.
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE review_id = $1
    `

	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.BankID,
		&review.ReviewText,
		&review.Rating,
		&review.ReviewDate,
		&review.Source,
		&review.ReviewHash,
		&review.SentimentLabel,
		&review.SentimentScore,
		&review.ThemePrimary,
		&review.CreatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review", id)
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	return review, nil
}

// GetByHash retrieves a review by its content hash.
func (r *PostgresReviewRepository) GetByHash(ctx context.Context, hash string) (*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE review_hash = $1
    `

	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, hash).Scan(
		&review.ID,
		&review.BankID,
		&review.ReviewText,
		&review.Rating,
		&review.ReviewDate,
		&review.Source,
		&review.ReviewHash,
		&review.SentimentLabel,
		&review.SentimentScore,
		&review.ThemePrimary,
		&review.CreatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{hash},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review", fmt.Sprintf("review_hash=%s", hash))
		}
		return nil, fmt.Errorf("failed to get review by hash: %w", err)
	}

	return review, nil
}

// GetIDByHash resolves a review hash to its review ID.
func (r *PostgresReviewRepository) GetIDByHash(ctx context.Context, hash string) (int64, error) {
	startTime := time.Now()

	query := `SELECT review_id FROM reviews WHERE review_hash = $1`

	var id int64
	err := r.db.QueryRowContext(ctx, query, hash).Scan(&id)

	utils.LogDBQuery(
		query,
		[]interface{}{hash},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.NewNotFoundError("Review", fmt.Sprintf("review_hash=%s", hash))
		}
		return 0, fmt.Errorf("failed to get review ID by hash: %w", err)
	}

	return id, nil
}

// UpdateEnrichmentByHash overwrites the enrichment columns of the review with
// the given hash. Re-applying the same enrichment converges to the same row
// state. Returns (false, nil) when no review carries the hash; the caller
// records the record as an orphan.
func (r *PostgresReviewRepository) UpdateEnrichmentByHash(ctx context.Context, hash string, sentimentLabel *string, sentimentScore *float64, themePrimary *string) (bool, error) {
	startTime := time.Now()

	query := `
        UPDATE reviews
        SET sentiment_label = $1, sentiment_score = $2, theme_primary = $3
        WHERE review_hash = $4
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		sentimentLabel,
		sentimentScore,
		themePrimary,
		hash,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{sentimentLabel, sentimentScore, themePrimary, hash},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			return false, utils.NewIntegrityViolationError(
				fmt.Sprintf("a value violates the %s constraint", pqErr.Constraint), pqErr.Error())
		}
		return false, fmt.Errorf("failed to update review enrichment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// ListByBank retrieves a page of a bank's reviews, newest first, along with
// the bank's total review count.
func (r *PostgresReviewRepository) ListByBank(ctx context.Context, bankID int64, page, pageSize int) ([]*models.Review, int, error) {
	startTime := time.Now()

	countQuery := `SELECT COUNT(*) FROM reviews WHERE bank_id = $1`

	var total int
	err := r.db.QueryRowContext(ctx, countQuery, bankID).Scan(&total)

	utils.LogDBQuery(
		countQuery,
		[]interface{}{bankID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE bank_id = $1
        ORDER BY created_at DESC, review_id DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.QueryContext(ctx, query, bankID, pageSize, offset)

	utils.LogDBQuery(
		query,
		[]interface{}{bankID, pageSize, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(
			&review.ID,
			&review.BankID,
			&review.ReviewText,
			&review.Rating,
			&review.ReviewDate,
			&review.Source,
			&review.ReviewHash,
			&review.SentimentLabel,
			&review.SentimentScore,
			&review.ThemePrimary,
			&review.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, total, nil
}

// Delete removes a review by ID. Theme associations cascade.
func (r *PostgresReviewRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM reviews WHERE review_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Review", id)
	}

	return nil
}
