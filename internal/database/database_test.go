package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vet-appointments/internal/config"
	"vet-appointments/internal/logger"
)

func mockOpener(t *testing.T) (Opener, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	return func() (*gorm.DB, error) {
		return gorm.Open(gormmysql.New(gormmysql.Config{
			Conn:                      sqlDB,
			SkipInitializeWithVersion: true,
		}), &gorm.Config{SkipDefaultTransaction: true})
	}, mock
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "vet",
		Password: "p@ss",
		Database: "veterinaria",
	})

	assert.Contains(t, dsn, "vet:p@ss@tcp(db.internal:3307)/veterinaria")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestPoolIsLazy(t *testing.T) {
	calls := 0
	pool := NewWithOpener(func() (*gorm.DB, error) {
		calls++
		return nil, errors.New("unreachable")
	}, logger.Discard())

	assert.Equal(t, 0, calls)
	assert.Zero(t, pool.Stats().OpenConnections)
}

func TestPoolRetriesAfterFailedOpen(t *testing.T) {
	open, mock := mockOpener(t)
	attempts := 0
	pool := NewWithOpener(func() (*gorm.DB, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return open()
	}, logger.Discard())

	require.Error(t, pool.Connect(context.Background()))

	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	err := pool.Execute(context.Background(), func(db *gorm.DB) error {
		return db.Exec("SELECT 1").Error
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	// Once open, the handle is reused
	require.NoError(t, pool.Connect(context.Background()))
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthcheck(t *testing.T) {
	open, mock := mockOpener(t)
	pool := NewWithOpener(open, logger.Discard())

	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, pool.Healthcheck(context.Background()))

	mock.ExpectExec("SELECT 1").WillReturnError(errors.New("server has gone away"))
	assert.False(t, pool.Healthcheck(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthcheckNeverConnected(t *testing.T) {
	pool := NewWithOpener(func() (*gorm.DB, error) {
		return nil, errors.New("unreachable")
	}, logger.Discard())

	assert.False(t, pool.Healthcheck(context.Background()))
}

func TestTransactRollsBackOnError(t *testing.T) {
	open, mock := mockOpener(t)
	pool := NewWithOpener(open, logger.Discard())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE citas").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := pool.Transact(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE citas SET estado = 'activa'").Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactCommits(t *testing.T) {
	open, mock := mockOpener(t)
	pool := NewWithOpener(open, logger.Discard())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM citas").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := pool.Transact(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM citas WHERE id = ?", 1).Error
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseIsIdempotent(t *testing.T) {
	open, mock := mockOpener(t)
	pool := NewWithOpener(open, logger.Discard())
	require.NoError(t, pool.Connect(context.Background()))

	mock.ExpectClose()
	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close())

	err := pool.Execute(context.Background(), func(db *gorm.DB) error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
	assert.ErrorIs(t, pool.Connect(context.Background()), ErrPoolClosed)
	assert.False(t, pool.Healthcheck(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseWithoutConnection(t *testing.T) {
	pool := NewWithOpener(func() (*gorm.DB, error) {
		t.Fatal("opener must not be called")
		return nil, nil
	}, logger.Discard())

	assert.NoError(t, pool.Close())
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_create_citas.up.sql")
	assert.Contains(t, names, "000002_create_cita_auditoria.up.sql")
}
