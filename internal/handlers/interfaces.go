// Package handlers wires the HTTP surface to the service layer.
package handlers

import (
	"context"

	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/service"
)

// IngestServiceInterface defines the ingest operations handlers depend on.
type IngestServiceInterface interface {
	IngestBatch(ctx context.Context, rows []*models.IngestRow) (*models.IngestReport, error)
}

// EnrichmentServiceInterface defines the enrichment operations handlers depend on.
type EnrichmentServiceInterface interface {
	ApplyBatch(ctx context.Context, records []*models.EnrichmentRecord) (*models.EnrichmentReport, error)
}

// InsightServiceInterface defines the insight operations handlers depend on.
type InsightServiceInterface interface {
	BankKPIs(ctx context.Context) ([]*models.BankKPI, error)
	ThemeStats(ctx context.Context) ([]*models.ThemeStat, error)
	Drivers(ctx context.Context) ([]*models.ThemeInsight, error)
	PainPoints(ctx context.Context) ([]*models.ThemeInsight, error)
	RatingSentiment(ctx context.Context) ([]*models.RatingSentimentStat, error)
	Evidence(ctx context.Context, bankID int64, theme string, kind models.InsightKind) ([]*models.EvidenceSnippet, error)
	Recommendations(ctx context.Context) ([]*models.BankRecommendation, error)
}

// VerificationServiceInterface defines the verification operations handlers depend on.
type VerificationServiceInterface interface {
	Summary(ctx context.Context) (*service.VerificationSummary, error)
	Orphans(ctx context.Context, batchID string, page, pageSize int) ([]*models.EnrichmentOrphan, int, error)
}

// BankRepositoryInterface defines the bank operations handlers depend on.
type BankRepositoryInterface interface {
	Create(ctx context.Context, bank *models.Bank) error
	GetByID(ctx context.Context, id int64) (*models.Bank, error)
	List(ctx context.Context) ([]*models.Bank, error)
	UpdateAppName(ctx context.Context, id int64, appName *string) error
	Delete(ctx context.Context, id int64) error
}

// ThemeRepositoryInterface defines the theme operations handlers depend on.
type ThemeRepositoryInterface interface {
	Create(ctx context.Context, theme *models.Theme) error
	GetByID(ctx context.Context, id int64) (*models.Theme, error)
	List(ctx context.Context) ([]*models.Theme, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewRepositoryInterface defines the review read operations handlers depend on.
type ReviewRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByBank(ctx context.Context, bankID int64, page, pageSize int) ([]*models.Review, int, error)
}
