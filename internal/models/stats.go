package models

// BankKPI holds the headline statistics for one bank. The share denominators
// include every review for the bank, whether or not it has been enriched;
// unlabeled rows simply never count toward the positive, negative or neutral
// numerators, so the three shares plus the unlabeled remainder sum to one.
type BankKPI struct {
	// BankID identifies the bank
	BankID int64 `json:"bank_id"`

	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// NReviews counts every stored review for the bank
	NReviews int `json:"n_reviews"`

	// AvgRating is the mean star rating over rated reviews, nil when none are rated
	AvgRating *float64 `json:"avg_rating"`

	// PosShare is the share of reviews labeled POSITIVE
	PosShare float64 `json:"pos_share"`

	// NegShare is the share of reviews labeled NEGATIVE
	NegShare float64 `json:"neg_share"`

	// NeutralShare is the share of reviews labeled NEUTRAL
	NeutralShare float64 `json:"neutral_share"`
}

// ThemeStat holds the per-(bank, theme) aggregates the driver/pain-point
// classification works from. Reviews without a theme_primary are grouped
// under the synthetic UNKNOWN theme.
type ThemeStat struct {
	// BankID identifies the bank
	BankID int64 `json:"bank_id"`

	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// Theme is the theme_primary value (or UNKNOWN)
	Theme string `json:"theme"`

	// N counts the bank's reviews carrying this theme
	N int `json:"n"`

	// ShareWithinBank is N over the bank's total review count
	ShareWithinBank float64 `json:"share_within_bank"`

	// AvgRating is the mean star rating within the theme, nil when unrated
	AvgRating *float64 `json:"avg_rating"`

	// PctPositive is the POSITIVE share within the theme
	PctPositive float64 `json:"pct_positive"`

	// PctNegative is the NEGATIVE share within the theme
	PctNegative float64 `json:"pct_negative"`
}

// InsightKind distinguishes driver themes from pain-point themes.
type InsightKind string

const (
	// KindDriver marks a theme associated with positive experience.
	KindDriver InsightKind = "DRIVER"

	// KindPainPoint marks a theme associated with negative sentiment.
	KindPainPoint InsightKind = "PAIN_POINT"
)

// ThemeInsight is one ranked driver or pain-point theme for a bank, with the
// transparent score that ranked it.
type ThemeInsight struct {
	ThemeStat

	// Kind classifies the theme as a driver or a pain point
	Kind InsightKind `json:"kind"`

	// Score is the ranking score under the configured policy
	Score float64 `json:"score"`
}

// EvidenceSnippet is one truncated review text sampled as qualitative
// evidence for a (bank, theme) pair.
type EvidenceSnippet struct {
	// ReviewID identifies the sampled review
	ReviewID int64 `json:"review_id"`

	// Text is the whitespace-collapsed, budget-truncated review text
	Text string `json:"text"`

	// SentimentLabel is the review's sentiment, if enriched
	SentimentLabel *string `json:"sentiment_label,omitempty"`
}

// RatingSentimentStat aggregates sentiment within one (bank, rating) cell.
type RatingSentimentStat struct {
	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// Rating is the star rating bucket, nil for unrated reviews
	Rating *int `json:"rating"`

	// NReviews counts reviews in the cell
	NReviews int `json:"n_reviews"`

	// MeanSentimentScore averages the enriched sentiment scores, nil when none
	MeanSentimentScore *float64 `json:"mean_sentiment_score"`

	// PosRate is the POSITIVE share within the cell
	PosRate float64 `json:"pos_rate"`

	// NegRate is the NEGATIVE share within the cell
	NegRate float64 `json:"neg_rate"`
}

// CoverageReport summarizes enrichment completeness over the review table.
type CoverageReport struct {
	// TotalReviews counts every stored review
	TotalReviews int `json:"total_reviews"`

	// WithSentimentLabel counts reviews with a non-null sentiment_label
	WithSentimentLabel int `json:"with_sentiment_label"`

	// WithSentimentScore counts reviews with a non-null sentiment_score
	WithSentimentScore int `json:"with_sentiment_score"`

	// WithThemePrimary counts reviews with a non-null theme_primary
	WithThemePrimary int `json:"with_theme_primary"`

	// OrphanedEnrichments counts enrichment records that never matched a review
	OrphanedEnrichments int `json:"orphaned_enrichments"`
}

// BankRecommendation carries the actionable suggestions derived from a
// bank's ranked pain-point themes.
type BankRecommendation struct {
	// BankID identifies the bank
	BankID int64 `json:"bank_id"`

	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// BasedOnThemes lists the pain-point themes the suggestions derive from
	BasedOnThemes []string `json:"based_on_themes"`

	// Recommendations holds between two and three deduplicated suggestions
	Recommendations []string `json:"recommendations"`
}

// BankReviewCount pairs a bank with its stored review count.
type BankReviewCount struct {
	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// NReviews counts the bank's stored reviews
	NReviews int `json:"n_reviews"`
}

// BankAvgRating pairs a bank with its mean star rating.
type BankAvgRating struct {
	// BankName is the bank's display name
	BankName string `json:"bank_name"`

	// AvgRating is the mean star rating, nil when no review is rated
	AvgRating *float64 `json:"avg_rating"`
}
