package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) (*Pool, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return &Pool{DB: db}, mock, func() { db.Close() }
}

func TestCloseIsNilSafe(t *testing.T) {
	t.Run("Nil DB pointer", func(t *testing.T) {
		pool := &Pool{DB: nil}
		pool.Close()
	})

	t.Run("Nil pool", func(t *testing.T) {
		var pool *Pool
		pool.Close()
	})
}

func TestTransaction(t *testing.T) {
	t.Run("Commit on success", func(t *testing.T) {
		pool, mock, cleanup := newMockPool(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO themes").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			_, execErr := tx.Exec("INSERT INTO themes (theme_name) VALUES ($1)", "UX_UI")
			return execErr
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		pool, mock, cleanup := newMockPool(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("seed failed")
		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure surfaces", func(t *testing.T) {
		pool, mock, cleanup := newMockPool(t)
		defer cleanup()

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		err := pool.Transaction(context.Background(), func(tx *sql.Tx) error {
			t.Fatal("callback must not run when begin fails")
			return nil
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		pool, mock, cleanup := newMockPool(t)
		defer cleanup()

		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		assert.NoError(t, pool.HealthCheck(context.Background()))
	})

	t.Run("Query failure", func(t *testing.T) {
		pool, mock, cleanup := newMockPool(t)
		defer cleanup()

		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("connection reset"))

		assert.Error(t, pool.HealthCheck(context.Background()))
	})
}
