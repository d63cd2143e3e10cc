// Package models provides the data structures persisted and aggregated by
// the bank review analytics backend.
//
// Banks and themes are reference data created once and rarely mutated.
// Reviews are created at ingest with their enrichment columns null, then
// enriched exactly once (or idempotently re-enriched) by hash lookup.
package models

import "github.com/etbank-analytics/bankreviews-backend/internal/constants"

// Bank represents a reviewed institution. Rows are immutable after creation;
// deleting a bank cascades to its reviews and their theme associations.
type Bank struct {
	// ID is the unique identifier for this bank
	ID int64 `json:"bank_id" db:"bank_id"`

	// BankName is the unique display name of the institution
	BankName string `json:"bank_name" db:"bank_name"`

	// AppName is the optional name of the bank's mobile app
	AppName *string `json:"app_name,omitempty" db:"app_name"`
}

// TableName returns the database table name for the Bank model.
func (b *Bank) TableName() string {
	return constants.TableBanks
}

// NewBank builds a bank with the given display name and optional app name.
func NewBank(name string, appName *string) *Bank {
	return &Bank{
		BankName: name,
		AppName:  appName,
	}
}
