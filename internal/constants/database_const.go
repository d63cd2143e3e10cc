// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines constants related to database structures,
// including table names and column names. These constants ensure consistent
// database access patterns throughout the application, reducing the risk of
// SQL errors and simplifying schema changes.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableBanks is the name of the table storing reviewed institutions.
	TableBanks = "banks"

	// TableReviews is the name of the table storing user-submitted reviews
	// together with their enrichment columns.
	TableReviews = "reviews"

	// TableThemes is the name of the table storing theme category labels.
	TableThemes = "themes"

	// TableReviewThemes is the name of the review/theme association table.
	TableReviewThemes = "review_themes"

	// TableEnrichmentOrphans is the name of the table recording enrichment
	// records whose review hash matched no stored review.
	TableEnrichmentOrphans = "enrichment_orphans"
)

// Common Column Names define frequently used database column names.
const (
	// ColumnBankID is the column name for bank identifiers.
	ColumnBankID = "bank_id"

	// ColumnBankName is the column name for unique bank display names.
	ColumnBankName = "bank_name"

	// ColumnAppName is the column name for the optional mobile app name.
	ColumnAppName = "app_name"

	// ColumnReviewID is the column name for review identifiers.
	ColumnReviewID = "review_id"

	// ColumnReviewHash is the column name for the review content fingerprint.
	// It is the sole join key between raw ingest and enrichment merges.
	ColumnReviewHash = "review_hash"

	// ColumnThemeID is the column name for theme identifiers.
	ColumnThemeID = "theme_id"

	// ColumnThemeName is the column name for unique theme names.
	ColumnThemeName = "theme_name"

	// ColumnThemePrimary is the column name for the denormalized dominant theme.
	ColumnThemePrimary = "theme_primary"

	// ColumnSentimentLabel is the column name for the sentiment classification.
	ColumnSentimentLabel = "sentiment_label"

	// ColumnSentimentScore is the column name for the continuous sentiment score.
	ColumnSentimentScore = "sentiment_score"

	// ColumnOrphanID is the column name for orphaned enrichment record identifiers.
	ColumnOrphanID = "orphan_id"

	// ColumnBatchID is the column name for ingest/enrichment batch identifiers.
	ColumnBatchID = "batch_id"
)

// Sentiment labels are the only values permitted in reviews.sentiment_label.
// The same strings are enforced by a CHECK constraint at the storage boundary.
const (
	// SentimentPositive marks a review classified as positive.
	SentimentPositive = "POSITIVE"

	// SentimentNegative marks a review classified as negative.
	SentimentNegative = "NEGATIVE"

	// SentimentNeutral marks a review classified as neutral.
	SentimentNeutral = "NEUTRAL"
)

// ThemeUnknown is the synthetic theme bucket used by aggregation queries for
// reviews whose theme_primary has not been enriched yet. It is never stored.
const ThemeUnknown = "UNKNOWN"

// Rating bounds for the star rating column, enforced by a CHECK constraint.
const (
	// MinRating is the lowest valid star rating.
	MinRating = 1

	// MaxRating is the highest valid star rating.
	MaxRating = 5
)
