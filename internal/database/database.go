package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vet-appointments/internal/config"
	"vet-appointments/internal/logger"
)

// ErrPoolClosed is returned by every operation after Close.
var ErrPoolClosed = errors.New("database pool is closed")

// Opener creates the underlying gorm handle. It is called lazily and again
// after every failed attempt.
type Opener func() (*gorm.DB, error)

// Pool owns the shared connection pool. The connection is created on first
// use; a failed creation leaves the pool uninitialized so the next caller
// retries.
type Pool struct {
	open Opener
	log  *logrus.Logger

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

// New returns a pool for the configured MySQL database. No connection is
// made until Connect or the first query.
func New(cfg config.DatabaseConfig, log *logrus.Logger) *Pool {
	return NewWithOpener(func() (*gorm.DB, error) {
		return openMySQL(cfg, log)
	}, log)
}

// NewWithOpener returns a pool backed by a custom opener (tests use sqlmock).
func NewWithOpener(open Opener, log *logrus.Logger) *Pool {
	return &Pool{open: open, log: log}
}

// DSN builds the go-sql-driver DSN. ClientFoundRows makes UPDATE report
// matched rows, so re-cancelling a cancelled appointment still affects one row.
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

func openMySQL(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(DSN(cfg)), &gorm.Config{
		Logger:                 logger.Gorm(log),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Callers block for a free connection once the limit is reached
	sqlDB.SetMaxOpenConns(cfg.ConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.ConnectionLimit)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Connect creates the pool if needed and verifies it with a ping.
func (p *Pool) Connect(ctx context.Context) error {
	_, err := p.handle(ctx)
	return err
}

func (p *Pool) handle(ctx context.Context) (*gorm.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open()
	if err != nil {
		p.log.WithError(err).Error("Failed to create connection pool")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = sqlDB.PingContext(pingCtx)
		cancel()
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		p.log.WithError(err).Error("Failed to connect to database")
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	p.db = db
	p.log.Info("Connection pool created successfully")
	return db, nil
}

// Execute runs a single statement through fn. The connection is borrowed
// for the statement and returned to the pool whatever the outcome.
func (p *Pool) Execute(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := p.handle(ctx)
	if err != nil {
		return err
	}
	return fn(db.WithContext(ctx))
}

// Transact runs fn inside one transaction on a single connection. It commits
// when fn returns nil and rolls back on error or panic.
func (p *Pool) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, err := p.handle(ctx)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(fn)
	if err != nil {
		p.log.WithError(err).Debug("Transaction rolled back")
		return err
	}
	return nil
}

// Healthcheck issues a trivial query. It never returns an error.
func (p *Pool) Healthcheck(ctx context.Context) bool {
	err := p.Execute(ctx, func(db *gorm.DB) error {
		return db.Exec("SELECT 1").Error
	})
	if err != nil {
		p.log.WithError(err).Warn("Database healthcheck failed")
		return false
	}
	return true
}

// Stats reports pool usage; zero value when not connected.
func (p *Pool) Stats() sql.DBStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return sql.DBStats{}
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// Close releases every connection and waits for running statements to
// finish. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	p.db = nil
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close connection pool: %w", err)
	}
	p.log.Info("Connection pool closed")
	return nil
}
