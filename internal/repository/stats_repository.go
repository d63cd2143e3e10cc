package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/etbank-analytics/bankreviews-backend/internal/database"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// StatsRepository defines the read-only aggregation queries the insight layer
// is built on. Every aggregate recomputes from the stored reviews; nothing is
// cached or materialized, so results always reflect the current table state.
//
// Sentiment shares follow one convention throughout: the denominator is every
// review in the group, labeled or not, and unlabeled rows count toward no
// numerator.
type StatsRepository interface {
	BankKPIs(ctx context.Context) ([]*models.BankKPI, error)
	// ThemeStats aggregates per (bank, theme). Reviews without a primary
	// theme group under UNKNOWN. Groups smaller than minSample are dropped.
	ThemeStats(ctx context.Context, minSample int) ([]*models.ThemeStat, error)
	// Evidence samples up to limit reviews for a (bank, theme) pair,
	// longest text first. When sentimentLabel is non-nil only reviews
	// carrying that label are considered.
	Evidence(ctx context.Context, bankID int64, theme string, sentimentLabel *string, limit int) ([]*models.EvidenceSnippet, error)
	RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error)
	ReviewCountsPerBank(ctx context.Context) ([]*models.BankReviewCount, error)
	AvgRatingPerBank(ctx context.Context) ([]*models.BankAvgRating, error)
}

// PostgresStatsRepository is a PostgreSQL implementation of StatsRepository.
type PostgresStatsRepository struct {
	db *database.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *database.Pool) StatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

// BankKPIs computes the headline statistics for every bank. Banks with no
// reviews appear with zero counts rather than being dropped.
func (r *PostgresStatsRepository) BankKPIs(ctx context.Context) ([]*models.BankKPI, error) {
	startTime := time.Now()

	query := `
        SELECT b.bank_id,
               b.bank_name,
               COUNT(r.review_id) AS n_reviews,
               AVG(r.rating) AS avg_rating,
               COALESCE(AVG(CASE WHEN r.sentiment_label = 'POSITIVE' THEN 1.0 ELSE 0.0 END), 0) AS pos_share,
               COALESCE(AVG(CASE WHEN r.sentiment_label = 'NEGATIVE' THEN 1.0 ELSE 0.0 END), 0) AS neg_share,
               COALESCE(AVG(CASE WHEN r.sentiment_label = 'NEUTRAL' THEN 1.0 ELSE 0.0 END), 0) AS neutral_share
        FROM banks b
        LEFT JOIN reviews r ON r.bank_id = b.bank_id
        GROUP BY b.bank_id, b.bank_name
        ORDER BY b.bank_name
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query bank KPIs: %w", err)
	}
	defer rows.Close()

	var kpis []*models.BankKPI
	for rows.Next() {
		kpi := &models.BankKPI{}
		if err := rows.Scan(
			&kpi.BankID,
			&kpi.BankName,
			&kpi.NReviews,
			&kpi.AvgRating,
			&kpi.PosShare,
			&kpi.NegShare,
			&kpi.NeutralShare,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank KPI row: %w", err)
		}
		kpis = append(kpis, kpi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank KPI rows: %w", err)
	}

	return kpis, nil
}

// ThemeStats aggregates reviews per (bank, theme). The share_within_bank
// denominator is the bank's full review count, so a bank's theme shares sum
// to one across all its themes including UNKNOWN.
func (r *PostgresStatsRepository) ThemeStats(ctx context.Context, minSample int) ([]*models.ThemeStat, error) {
	startTime := time.Now()

	query := `
        WITH bank_totals AS (
            SELECT bank_id, COUNT(*) AS total
            FROM reviews
            GROUP BY bank_id
        )
        SELECT r.bank_id,
               b.bank_name,
               COALESCE(r.theme_primary, 'UNKNOWN') AS theme,
               COUNT(*) AS n,
               COUNT(*)::float / bt.total AS share_within_bank,
               AVG(r.rating) AS avg_rating,
               AVG(CASE WHEN r.sentiment_label = 'POSITIVE' THEN 1.0 ELSE 0.0 END) AS pct_positive,
               AVG(CASE WHEN r.sentiment_label = 'NEGATIVE' THEN 1.0 ELSE 0.0 END) AS pct_negative
        FROM reviews r
        JOIN banks b ON b.bank_id = r.bank_id
        JOIN bank_totals bt ON bt.bank_id = r.bank_id
        GROUP BY r.bank_id, b.bank_name, COALESCE(r.theme_primary, 'UNKNOWN'), bt.total
        HAVING COUNT(*) >= $1
        ORDER BY b.bank_name, n DESC, theme
    `

	rows, err := r.db.QueryContext(ctx, query, minSample)

	utils.LogDBQuery(
		query,
		[]interface{}{minSample},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query theme stats: %w", err)
	}
	defer rows.Close()

	var stats []*models.ThemeStat
	for rows.Next() {
		stat := &models.ThemeStat{}
		if err := rows.Scan(
			&stat.BankID,
			&stat.BankName,
			&stat.Theme,
			&stat.N,
			&stat.ShareWithinBank,
			&stat.AvgRating,
			&stat.PctPositive,
			&stat.PctNegative,
		); err != nil {
			return nil, fmt.Errorf("failed to scan theme stat row: %w", err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme stat rows: %w", err)
	}

	return stats, nil
}

// Evidence samples reviews for a (bank, theme) pair, preferring longer texts
// and breaking ties on review ID so the same table state always yields the
// same snippets.
func (r *PostgresStatsRepository) Evidence(ctx context.Context, bankID int64, theme string, sentimentLabel *string, limit int) ([]*models.EvidenceSnippet, error) {
	startTime := time.Now()

	query := `
        SELECT review_id, review_text, sentiment_label
        FROM reviews
        WHERE bank_id = $1
          AND COALESCE(theme_primary, 'UNKNOWN') = $2
          AND ($3::text IS NULL OR sentiment_label = $3)
        ORDER BY LENGTH(review_text) DESC, review_id ASC
        LIMIT $4
    `

	rows, err := r.db.QueryContext(ctx, query, bankID, theme, sentimentLabel, limit)

	utils.LogDBQuery(
		query,
		[]interface{}{bankID, theme, sentimentLabel, limit},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query evidence: %w", err)
	}
	defer rows.Close()

	var snippets []*models.EvidenceSnippet
	for rows.Next() {
		snippet := &models.EvidenceSnippet{}
		if err := rows.Scan(
			&snippet.ReviewID,
			&snippet.Text,
			&snippet.SentimentLabel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evidence row: %w", err)
		}
		snippets = append(snippets, snippet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evidence rows: %w", err)
	}

	return snippets, nil
}

// RatingSentiment aggregates sentiment per (bank, rating) cell, including the
// unrated bucket.
func (r *PostgresStatsRepository) RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error) {
	startTime := time.Now()

	query := `
        SELECT b.bank_name,
               r.rating,
               COUNT(*) AS n_reviews,
               AVG(r.sentiment_score) AS mean_sentiment_score,
               AVG(CASE WHEN r.sentiment_label = 'POSITIVE' THEN 1.0 ELSE 0.0 END) AS pos_rate,
               AVG(CASE WHEN r.sentiment_label = 'NEGATIVE' THEN 1.0 ELSE 0.0 END) AS neg_rate
        FROM reviews r
        JOIN banks b ON b.bank_id = r.bank_id
        GROUP BY b.bank_name, r.rating
        ORDER BY b.bank_name, r.rating NULLS LAST
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query rating sentiment: %w", err)
	}
	defer rows.Close()

	var stats []*models.RatingSentimentStat
	for rows.Next() {
		stat := &models.RatingSentimentStat{}
		if err := rows.Scan(
			&stat.BankName,
			&stat.Rating,
			&stat.NReviews,
			&stat.MeanSentimentScore,
			&stat.PosRate,
			&stat.NegRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating sentiment row: %w", err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating sentiment rows: %w", err)
	}

	return stats, nil
}

// ReviewCountsPerBank counts stored reviews per bank.
func (r *PostgresStatsRepository) ReviewCountsPerBank(ctx context.Context) ([]*models.BankReviewCount, error) {
	startTime := time.Now()

	query := `
        SELECT b.bank_name, COUNT(r.review_id) AS n_reviews
        FROM banks b
        LEFT JOIN reviews r ON r.bank_id = b.bank_id
        GROUP BY b.bank_name
        ORDER BY b.bank_name
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query review counts: %w", err)
	}
	defer rows.Close()

	var counts []*models.BankReviewCount
	for rows.Next() {
		count := &models.BankReviewCount{}
		if err := rows.Scan(
			&count.BankName,
			&count.NReviews,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review count rows: %w", err)
	}

	return counts, nil
}

// AvgRatingPerBank computes the mean star rating per bank over rated reviews.
func (r *PostgresStatsRepository) AvgRatingPerBank(ctx context.Context) ([]*models.BankAvgRating, error) {
	startTime := time.Now()

	query := `
        SELECT b.bank_name, AVG(r.rating) AS avg_rating
        FROM banks b
        LEFT JOIN reviews r ON r.bank_id = b.bank_id
        GROUP BY b.bank_name
        ORDER BY b.bank_name
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query average ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.BankAvgRating
	for rows.Next() {
		rating := &models.BankAvgRating{}
		if err := rows.Scan(
			&rating.BankName,
			&rating.AvgRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan average rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating average rating rows: %w", err)
	}

	return ratings, nil
}
