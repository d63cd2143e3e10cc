package migrations

import (
	"context"
	"database/sql"
)

// createBanksTable creates the banks table
func createBanksTable() Migration {
	return Migration{
		Name:        "create_banks_table",
		Description: "Creates the banks table",
		TableName:   "banks",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS banks (
					bank_id BIGSERIAL PRIMARY KEY,
					bank_name VARCHAR(255) NOT NULL,
					app_name VARCHAR(255),
					CONSTRAINT idx_bank_name UNIQUE (bank_name)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createReviewsTable creates the reviews table.
// The enrichment columns (sentiment_label, sentiment_score, theme_primary)
// are nullable: enrichment may lag ingestion or never complete for some rows.
// All model invariants are enforced here, at the storage boundary, so
// concurrent or repeated ingest processes cannot corrupt the table.
func createReviewsTable() Migration {
	return Migration{
		Name:        "create_reviews_table",
		Description: "Creates the reviews table with enrichment columns",
		TableName:   "reviews",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS reviews (
					review_id BIGSERIAL PRIMARY KEY,
					bank_id BIGINT NOT NULL,
					review_text TEXT NOT NULL,
					rating INTEGER,
					review_date DATE,
					source VARCHAR(100),
					review_hash VARCHAR(64) NOT NULL,
					sentiment_label VARCHAR(20),
					sentiment_score DOUBLE PRECISION,
					theme_primary VARCHAR(100),
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_bank FOREIGN KEY (bank_id) REFERENCES banks(bank_id) ON DELETE CASCADE,
					CONSTRAINT idx_review_hash UNIQUE (review_hash),
					CONSTRAINT chk_review_text_nonempty CHECK (length(btrim(review_text)) > 0),
					CONSTRAINT chk_rating_range CHECK (rating IS NULL OR (rating >= 1 AND rating <= 5)),
					CONSTRAINT chk_sentiment_label CHECK (sentiment_label IS NULL OR sentiment_label IN ('POSITIVE', 'NEGATIVE', 'NEUTRAL'))
				);
				CREATE INDEX IF NOT EXISTS idx_reviews_bank_id ON reviews(bank_id);
				CREATE INDEX IF NOT EXISTS idx_reviews_review_date ON reviews(review_date);
				CREATE INDEX IF NOT EXISTS idx_reviews_source ON reviews(source);
				CREATE INDEX IF NOT EXISTS idx_reviews_theme_primary ON reviews(theme_primary);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createThemesTable creates the themes table
func createThemesTable() Migration {
	return Migration{
		Name:        "create_themes_table",
		Description: "Creates the themes table",
		TableName:   "themes",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS themes (
					theme_id BIGSERIAL PRIMARY KEY,
					theme_name VARCHAR(100) NOT NULL,
					CONSTRAINT idx_theme_name UNIQUE (theme_name)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createReviewThemesTable creates the review_themes association table
func createReviewThemesTable() Migration {
	return Migration{
		Name:        "create_review_themes_table",
		Description: "Creates the review_themes association table",
		TableName:   "review_themes",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS review_themes (
					review_id BIGINT NOT NULL,
					theme_id BIGINT NOT NULL,
					CONSTRAINT pk_review_theme PRIMARY KEY (review_id, theme_id),
					CONSTRAINT fk_review FOREIGN KEY (review_id) REFERENCES reviews(review_id) ON DELETE CASCADE,
					CONSTRAINT fk_theme FOREIGN KEY (theme_id) REFERENCES themes(theme_id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_review_themes_theme_id ON review_themes(theme_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createEnrichmentOrphansTable creates the enrichment_orphans table.
// Enrichment records whose hash matches no stored review are persisted here
// so the verification layer can report them at any time.
func createEnrichmentOrphansTable() Migration {
	return Migration{
		Name:        "create_enrichment_orphans_table",
		Description: "Creates the enrichment_orphans table",
		TableName:   "enrichment_orphans",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS enrichment_orphans (
					orphan_id BIGSERIAL PRIMARY KEY,
					review_hash VARCHAR(64) NOT NULL,
					batch_id VARCHAR(64) NOT NULL,
					reported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
				CREATE INDEX IF NOT EXISTS idx_orphans_batch_id ON enrichment_orphans(batch_id);
				CREATE INDEX IF NOT EXISTS idx_orphans_review_hash ON enrichment_orphans(review_hash);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
