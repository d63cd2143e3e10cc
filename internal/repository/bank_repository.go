// Package repository provides data access interfaces and implementations.
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

// BankRepository defines methods for interacting with bank records.
// A bank's name is immutable after creation: it participates in every stored
// review's content hash, so only the app name can be updated.
type BankRepository interface {
	Create(ctx context.Context, bank *models.Bank) error
	GetByID(ctx context.Context, id int64) (*models.Bank, error)
	GetByName(ctx context.Context, name string) (*models.Bank, error)
	GetOrCreate(ctx context.Context, name string, appName *string) (*models.Bank, bool, error)
	List(ctx context.Context) ([]*models.Bank, error)
	UpdateAppName(ctx context.Context, id int64, appName *string) error
	Delete(ctx context.Context, id int64) error
}

// PostgresBankRepository is a PostgreSQL implementation of BankRepository.
type PostgresBankRepository struct {
	db *database.Pool
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(db *database.Pool) BankRepository {
	return &PostgresBankRepository{
		db: db,
	}
}

// Create adds a new bank to the database.
func (r *PostgresBankRepository) Create(ctx context.Context, bank *models.Bank) error {
	startTime := time.Now()

	query := `
        INSERT INTO banks (bank_name, app_name)
        VALUES ($1, $2)
        RETURNING bank_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		bank.BankName,
		bank.AppName,
	).Scan(&bank.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{bank.BankName, bank.AppName},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Bank", "bank_name", bank.BankName)
		}
		return fmt.Errorf("failed to create bank: %w", err)
	}

	log.Info().
		Int64("bank_id", bank.ID).
		Str("bank_name", bank.BankName).
		Msg("Bank created")

	return nil
}

// GetByID retrieves a bank by ID.
func (r *PostgresBankRepository) GetByID(ctx context.Context, id int64) (*models.Bank, error) {
	startTime := time.Now()

	query := `
        SELECT bank_id, bank_name, app_name
        FROM banks
        WHERE bank_id = $1
    `

	bank := &models.Bank{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bank.ID,
		&bank.BankName,
		&bank.AppName,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Bank", id)
		}
		return nil, fmt.Errorf("failed to get bank by ID: %w", err)
	}

	return bank, nil
}

// GetByName retrieves a bank by name using a case-insensitive comparison.
func (r *PostgresBankRepository) GetByName(ctx context.Context, name string) (*models.Bank, error) {
	startTime := time.Now()

	query := `
        SELECT bank_id, bank_name, app_name
        FROM banks
        WHERE LOWER(bank_name) = LOWER($1)
    `

	bank := &models.Bank{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&bank.ID,
		&bank.BankName,
		&bank.AppName,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{name},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Bank", fmt.Sprintf("bank_name=%s", name))
		}
		return nil, fmt.Errorf("failed to get bank by name: %w", err)
	}

	return bank, nil
}

// GetOrCreate returns the bank with the given name, creating it first if it
// does not exist. The second return value reports whether a row was created.
// Concurrent first-sight inserts resolve through the unique constraint: the
// losing insert falls back to a lookup instead of failing the batch.
func (r *PostgresBankRepository) GetOrCreate(ctx context.Context, name string, appName *string) (*models.Bank, bool, error) {
	bank, err := r.GetByName(ctx, name)
	if err == nil {
		return bank, false, nil
	}
	if !utils.IsNotFoundError(err) {
		return nil, false, err
	}

	bank = models.NewBank(name, appName)
	if err := r.Create(ctx, bank); err != nil {
		if utils.IsDuplicateError(err) {
			existing, lookupErr := r.GetByName(ctx, name)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return bank, true, nil
}

// List retrieves all banks ordered by name.
func (r *PostgresBankRepository) List(ctx context.Context) ([]*models.Bank, error) {
	startTime := time.Now()

	query := `
        SELECT bank_id, bank_name, app_name
        FROM banks
        ORDER BY bank_name
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	defer rows.Close()

	var banks []*models.Bank
	for rows.Next() {
		bank := &models.Bank{}
		if err := rows.Scan(
			&bank.ID,
			&bank.BankName,
			&bank.AppName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, bank)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}

	return banks, nil
}

// UpdateAppName sets a bank's app name. A nil appName clears it.
func (r *PostgresBankRepository) UpdateAppName(ctx context.Context, id int64, appName *string) error {
	startTime := time.Now()

	query := `
        UPDATE banks
        SET app_name = $1
        WHERE bank_id = $2
    `

	result, err := r.db.ExecContext(ctx, query, appName, id)

	utils.LogDBQuery(
		query,
		[]interface{}{appName, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update bank app name: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Bank", id)
	}

	return nil
}

// Delete removes a bank by ID. Reviews and their theme associations cascade.
func (r *PostgresBankRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM banks WHERE bank_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete bank: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Bank", id)
	}

	log.Info().
		Int64("bank_id", id).
		Msg("Bank deleted")

	return nil
}
