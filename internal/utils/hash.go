package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ReviewHashDateFormat is the date layout folded into the review hash.
// Changing it would silently break the join between raw ingest and
// enrichment merges, so it is fixed here and nowhere else.
const ReviewHashDateFormat = "2006-01-02"

// ReviewHash computes the deterministic fingerprint of a review's natural key.
// It is the idempotency key preventing duplicate ingestion and the sole join
// key used by enrichment merges, so both the raw-review loader and the
// classifier must derive it identically: the bank name and source are
// lowercased and trimmed, the text is trimmed, nil rating and date fold in as
// empty strings, and the parts are joined with "||" before hashing.
func ReviewHash(bankName, reviewText string, reviewDate *time.Time, rating *int, source string) string {
	dateStr := ""
	if reviewDate != nil {
		dateStr = reviewDate.Format(ReviewHashDateFormat)
	}

	ratingStr := ""
	if rating != nil {
		ratingStr = strconv.Itoa(*rating)
	}

	parts := []string{
		strings.ToLower(strings.TrimSpace(bankName)),
		strings.TrimSpace(reviewText),
		dateStr,
		ratingStr,
		strings.ToLower(strings.TrimSpace(source)),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "||")))
	return hex.EncodeToString(sum[:])
}
