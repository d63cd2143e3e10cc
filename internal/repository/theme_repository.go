package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/database"
	"github.com/etbank-analytics/bankreviews-backend/internal/models"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// ThemeRepository defines methods for interacting with theme records and
// review/theme associations.
type ThemeRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	GetByID(ctx context.Context, id int64) (*models.Theme, error)
	GetByName(ctx context.Context, name string) (*models.Theme, error)
	GetOrCreate(ctx context.Context, name string) (*models.Theme, bool, error)
	List(ctx context.Context) ([]*models.Theme, error)
	Delete(ctx context.Context, id int64) error
	LinkReview(ctx context.Context, reviewID, themeID int64) (bool, error)
	GetThemesForReview(ctx context.Context, reviewID int64) ([]*models.Theme, error)
}

// PostgresThemeRepository is a PostgreSQL implementation of ThemeRepository.
type PostgresThemeRepository struct {
	db *database.Pool
}

// NewThemeRepository creates a new ThemeRepository.
func NewThemeRepository(db *database.Pool) ThemeRepository {
	return &PostgresThemeRepository{
		db: db,
	}
}

// Create adds a new theme to the database.
func (r *PostgresThemeRepository) Create(ctx context.Context, theme *models.Theme) error {
	startTime := time.Now()

	query := `
        INSERT INTO themes (theme_name)
        VALUES ($1)
        RETURNING theme_id
    `

	err := r.db.QueryRowContext(ctx, query, theme.Name).Scan(&theme.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{theme.Name},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Theme", "theme_name", theme.Name)
		}
		return fmt.Errorf("failed to create theme: %w", err)
	}

	log.Info().
		Int64("theme_id", theme.ID).
		Str("theme_name", theme.Name).
		Msg("Theme created")

	return nil
}

// GetByID retrieves a theme by ID.
func (r *PostgresThemeRepository) GetByID(ctx context.Context, id int64) (*models.Theme, error) {
	startTime := time.Now()

	query := `
        SELECT theme_id, theme_name
        FROM themes
        WHERE theme_id = $1
    `

	theme := &models.Theme{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&theme.ID,
		&theme.Name,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Theme", id)
		}
		return nil, fmt.Errorf("failed to get theme by ID: %w", err)
	}

	return theme, nil
}

// GetByName retrieves a theme by its unique name.
func (r *PostgresThemeRepository) GetByName(ctx context.Context, name string) (*models.Theme, error) {
	startTime := time.Now()

	query := `
        SELECT theme_id, theme_name
        FROM themes
        WHERE theme_name = $1
    `

	theme := &models.Theme{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&theme.ID,
		&theme.Name,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{name},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Theme", fmt.Sprintf("theme_name=%s", name))
		}
		return nil, fmt.Errorf("failed to get theme by name: %w", err)
	}

	return theme, nil
}

// GetOrCreate returns the theme with the given name, creating it first if it
// does not exist. The second return value reports whether a row was created.
func (r *PostgresThemeRepository) GetOrCreate(ctx context.Context, name string) (*models.Theme, bool, error) {
	theme, err := r.GetByName(ctx, name)
	if err == nil {
		return theme, false, nil
	}
	if !utils.IsNotFoundError(err) {
		return nil, false, err
	}

	theme = &models.Theme{Name: name}
	if err := r.Create(ctx, theme); err != nil {
		if utils.IsDuplicateError(err) {
			existing, lookupErr := r.GetByName(ctx, name)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return theme, true, nil
}

// List retrieves all themes ordered by name.
func (r *PostgresThemeRepository) List(ctx context.Context) ([]*models.Theme, error) {
	startTime := time.Now()

	query := `
        SELECT theme_id, theme_name
        FROM themes
        ORDER BY theme_name
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	defer rows.Close()

	var themes []*models.Theme
	for rows.Next() {
		theme := &models.Theme{}
		if err := rows.Scan(
			&theme.ID,
			&theme.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan theme row: %w", err)
		}
		themes = append(themes, theme)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme rows: %w", err)
	}

	return themes, nil
}

// Delete removes a theme by ID. Review associations cascade.
func (r *PostgresThemeRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM themes WHERE theme_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Theme", id)
	}

	return nil
}

// LinkReview associates a review with a theme. Re-linking an existing pair is
// a no-op; the return value reports whether a new association was written.
func (r *PostgresThemeRepository) LinkReview(ctx context.Context, reviewID, themeID int64) (bool, error) {
	startTime := time.Now()

	query := `
        INSERT INTO review_themes (review_id, theme_id)
        VALUES ($1, $2)
        ON CONFLICT (review_id, theme_id) DO NOTHING
    `

	result, err := r.db.ExecContext(ctx, query, reviewID, themeID)

	utils.LogDBQuery(
		query,
		[]interface{}{reviewID, themeID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return false, utils.NewIntegrityViolationError(
				fmt.Sprintf("review %d or theme %d does not exist", reviewID, themeID), pqErr.Error())
		}
		return false, fmt.Errorf("failed to link review to theme: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetThemesForReview retrieves every theme associated with a review.
func (r *PostgresThemeRepository) GetThemesForReview(ctx context.Context, reviewID int64) ([]*models.Theme, error) {
	startTime := time.Now()

	query := `
        SELECT t.theme_id, t.theme_name
        FROM themes t
        JOIN review_themes rt ON rt.theme_id = t.theme_id
        WHERE rt.review_id = $1
        ORDER BY t.theme_name
    `

	rows, err := r.db.QueryContext(ctx, query, reviewID)

	utils.LogDBQuery(
		query,
		[]interface{}{reviewID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to query themes for review: %w", err)
	}
	defer rows.Close()

	var themes []*models.Theme
	for rows.Next() {
		theme := &models.Theme{}
		if err := rows.Scan(
			&theme.ID,
			&theme.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan theme row: %w", err)
		}
		themes = append(themes, theme)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme rows: %w", err)
	}

	return themes, nil
}
