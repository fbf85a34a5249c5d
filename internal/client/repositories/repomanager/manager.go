// Package repomanager opens the local SQLite database, applies the embedded
// goose migrations and vends repositories bound to either the database or
// a transaction.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/daylog/internal/client/migrations"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/intents"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/daylog/internal/client/repositories/records"
	"github.com/dmitrijs2005/daylog/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Manager owns the local database handle.
//
// The pool is limited to one connection: SQLite serializes writers anyway,
// and an in-memory DSN would otherwise hand every connection its own
// database. Code running inside WithTx must only use repositories bound to
// the tx it receives.
type Manager struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded client migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to migrate local database: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Manager{db: db}, nil
}

// DB returns the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) Metadata(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (m *Manager) Records(db dbx.DBTX) records.Repository {
	return records.NewKVRepository(metadata.NewSQLiteRepository(db))
}

func (m *Manager) Intents(db dbx.DBTX) intents.Repository {
	return intents.NewKVRepository(metadata.NewSQLiteRepository(db))
}

// WithTx runs fn in a single local transaction.
func (m *Manager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	return dbx.WithTx(ctx, m.db, nil, fn)
}

func (m *Manager) Close() error {
	return m.db.Close()
}
