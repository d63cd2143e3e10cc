package models

import (
	"time"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// Review represents one user-submitted review of a bank's mobile app.
//
// The review identity is assigned at ingest and never reused. ReviewHash is
// the deterministic fingerprint of the review's natural key (bank + text +
// date + rating + source); it is unique across all reviews, making repeated
// ingest a no-op and giving enrichment merges their sole join key.
//
// The three enrichment fields (SentimentLabel, SentimentScore, ThemePrimary)
// are nullable because enrichment may lag ingestion or never complete for
// some rows. They are populated by an external classifier and merged in by
// hash lookup.
type Review struct {
	// ID is the unique identifier for this review
	ID int64 `json:"review_id" db:"review_id"`

	// BankID references the reviewed bank
	BankID int64 `json:"bank_id" db:"bank_id"`

	// ReviewText is the review body; it is required and non-empty
	ReviewText string `json:"review_text" db:"review_text"`

	// Rating is the star rating in 1..5, or nil when unknown
	Rating *int `json:"rating,omitempty" db:"rating"`

	// ReviewDate is when the review was submitted, or nil when unknown
	ReviewDate *time.Time `json:"review_date,omitempty" db:"review_date"`

	// Source tags the store or platform the review came from
	Source *string `json:"source,omitempty" db:"source"`

	// ReviewHash is the unique content fingerprint
	ReviewHash string `json:"review_hash" db:"review_hash"`

	// SentimentLabel is POSITIVE, NEGATIVE or NEUTRAL when enriched
	SentimentLabel *string `json:"sentiment_label,omitempty" db:"sentiment_label"`

	// SentimentScore is the classifier's continuous score when enriched
	SentimentScore *float64 `json:"sentiment_score,omitempty" db:"sentiment_score"`

	// ThemePrimary caches the dominant theme tag when enriched
	ThemePrimary *string `json:"theme_primary,omitempty" db:"theme_primary"`

	// CreatedAt records when the row was ingested
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the Review model.
func (r *Review) TableName() string {
	return constants.TableReviews
}

// NewReview builds an unenriched review for a bank, computing the review
// hash from the natural key when the loader did not supply one.
func NewReview(bankID int64, bankName, reviewText string, rating *int, reviewDate *time.Time, source *string) *Review {
	src := ""
	if source != nil {
		src = *source
	}

	return &Review{
		BankID:     bankID,
		ReviewText: reviewText,
		Rating:     rating,
		ReviewDate: reviewDate,
		Source:     source,
		ReviewHash: utils.ReviewHash(bankName, reviewText, reviewDate, rating, src),
		CreatedAt:  time.Now(),
	}
}

// IsEnriched reports whether any enrichment field has been populated.
func (r *Review) IsEnriched() bool {
	return r.SentimentLabel != nil || r.SentimentScore != nil || r.ThemePrimary != nil
}
