package models

import "github.com/etbank-analytics/bankreviews-backend/internal/constants"

// Theme is a named category label. A theme is referenced both through a
// review's denormalized theme_primary column and through the review_themes
// association table; review_themes is the authoritative record of every
// theme touched, theme_primary only caches the dominant one.
type Theme struct {
	// ID is the unique identifier for this theme
	ID int64 `json:"theme_id" db:"theme_id"`

	// Name is the unique theme name, e.g. STABILITY_BUGS or UX_UI
	Name string `json:"theme_name" db:"theme_name"`
}

// TableName returns the database table name for the Theme model.
func (t *Theme) TableName() string {
	return constants.TableThemes
}

// DefaultThemes returns the baseline theme taxonomy. The enrichment
// pipeline may still introduce themes outside this list; these are only
// the categories seeded on a fresh database.
func DefaultThemes() []*Theme {
	return []*Theme{
		{Name: "ACCESS_AUTH"},
		{Name: "TXN_RELIABILITY"},
		{Name: "STABILITY_BUGS"},
		{Name: "PERFORMANCE_SPEED"},
		{Name: "UX_UI"},
		{Name: "SUPPORT_SERVICE"},
		{Name: "OTHER"},
	}
}

// ReviewTheme is one row of the review/theme many-to-many association.
// The composite (ReviewID, ThemeID) is the primary key; both sides cascade
// on deletion.
type ReviewTheme struct {
	// ReviewID references the associated review
	ReviewID int64 `json:"review_id" db:"review_id"`

	// ThemeID references the associated theme
	ThemeID int64 `json:"theme_id" db:"theme_id"`
}

// TableName returns the database table name for the ReviewTheme model.
func (rt *ReviewTheme) TableName() string {
	return constants.TableReviewThemes
}
