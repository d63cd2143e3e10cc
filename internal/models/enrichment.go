package models

import (
	"time"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
)

// EnrichmentRecord is one externally computed enrichment row, keyed by
// review hash. The classifier produces these in batches; each record either
// matches an existing review (the scalar fields are overwritten, secondary
// themes upserted) or is recorded as an orphan for the verification layer.
type EnrichmentRecord struct {
	// ReviewHash identifies the target review
	ReviewHash string `json:"review_hash" validate:"required"`

	// SentimentLabel is the classified sentiment, if any
	SentimentLabel *string `json:"sentiment_label,omitempty" validate:"omitempty,sentiment_label"`

	// SentimentScore is the classifier's continuous score, if any
	SentimentScore *float64 `json:"sentiment_score,omitempty"`

	// ThemePrimary is the dominant theme tag, if any
	ThemePrimary *string `json:"theme_primary,omitempty"`

	// SecondaryThemes lists any further theme names beyond the primary one
	SecondaryThemes []string `json:"secondary_themes,omitempty"`
}

// EnrichmentOrphan records an enrichment input whose hash matched no stored
// review. Orphans indicate that the enrichment source and the raw-ingest
// source have diverged; they are reported, never silently dropped.
type EnrichmentOrphan struct {
	// ID is the unique identifier for this orphan record
	ID int64 `json:"orphan_id" db:"orphan_id"`

	// ReviewHash is the hash that failed to match
	ReviewHash string `json:"review_hash" db:"review_hash"`

	// BatchID identifies the enrichment batch that produced the record
	BatchID string `json:"batch_id" db:"batch_id"`

	// ReportedAt records when the mismatch was observed
	ReportedAt time.Time `json:"reported_at" db:"reported_at"`
}

// TableName returns the database table name for the EnrichmentOrphan model.
func (o *EnrichmentOrphan) TableName() string {
	return constants.TableEnrichmentOrphans
}

// BatchFailure records one rejected batch entry. Index is the entry's
// zero-based position in the submitted batch, so entries sharing a review
// hash (or bank name) stay distinct in the report.
type BatchFailure struct {
	// Index is the entry's position in the submitted batch
	Index int `json:"index"`

	// Key carries the review hash or bank name, when one is known
	Key string `json:"key,omitempty"`

	// Error is the message that rejected the entry
	Error string `json:"error"`
}

// EnrichmentReport summarizes one enrichment batch application.
type EnrichmentReport struct {
	// BatchID identifies this application of the batch
	BatchID string `json:"batch_id"`

	// Total is the number of records in the batch
	Total int `json:"total"`

	// Matched counts records that resolved to an existing review
	Matched int `json:"matched"`

	// Unmatched counts records recorded as orphans
	Unmatched int `json:"unmatched"`

	// ThemesLinked counts review/theme associations written (or confirmed)
	ThemesLinked int `json:"themes_linked"`

	// Failures lists rejected records in batch order
	Failures []BatchFailure `json:"failures,omitempty"`
}

// AddFailure appends a failure entry for the record at index.
func (r *EnrichmentReport) AddFailure(index int, key string, err error) {
	r.Failures = append(r.Failures, BatchFailure{Index: index, Key: key, Error: err.Error()})
}

// IngestRow is one raw review tuple produced by the external loader. The
// loader may supply the review hash; when absent it is computed here so both
// sides of the contract agree on the fingerprint.
type IngestRow struct {
	// BankName names the reviewed institution
	BankName string `json:"bank_name" validate:"required"`

	// AppName optionally names the bank's mobile app
	AppName *string `json:"app_name,omitempty"`

	// ReviewText is the review body
	ReviewText string `json:"review_text" validate:"required"`

	// Rating is the star rating in 1..5, if known
	Rating *int `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`

	// ReviewDate is when the review was submitted, if known
	ReviewDate *time.Time `json:"review_date,omitempty"`

	// Source tags the store or platform the review came from
	Source *string `json:"source,omitempty"`

	// ReviewHash is the precomputed fingerprint, if the loader supplied one
	ReviewHash string `json:"review_hash,omitempty"`
}

// IngestReport summarizes one raw-review ingest batch.
type IngestReport struct {
	// BatchID identifies this ingest run
	BatchID string `json:"batch_id"`

	// Total is the number of rows in the batch
	Total int `json:"total"`

	// Inserted counts newly created review rows
	Inserted int `json:"inserted"`

	// Skipped counts rows whose hash already existed (idempotent re-ingest)
	Skipped int `json:"skipped"`

	// BanksCreated counts banks created on first sight
	BanksCreated int `json:"banks_created"`

	// Failures lists rejected rows in batch order
	Failures []BatchFailure `json:"failures,omitempty"`
}

// AddFailure appends a failure entry for the row at index.
func (r *IngestReport) AddFailure(index int, key string, err error) {
	r.Failures = append(r.Failures, BatchFailure{Index: index, Key: key, Error: err.Error()})
}
