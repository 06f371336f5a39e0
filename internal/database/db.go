// Package database is the record store of the control plane: a SQLite
// database holding users, domains, dns_records, additional_domains,
// app_config and admin_logs.
//
// The schema evolves through the embedded, versioned migrations under
// migrations/. Every multi-statement mutation runs inside Update, which
// serializes writers in-process and commits or rolls back as a unit.
//
// Read helpers are defined on Queries, which both DB and Tx embed, so the
// same lookup can run standalone or inside a transaction.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jroosing/dyndns/internal/clock"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a SQLite connection pool.
type DB struct {
	Queries

	conn   *sql.DB
	mu     sync.Mutex // serializes write transactions
	logger *slog.Logger
}

// Option configures Open.
type Option func(*DB)

// WithClock sets the clock used for created_at/updated_at columns.
func WithClock(c clock.Clock) Option {
	return func(db *DB) { db.clock = c }
}

// WithIDGen sets the generator used for migration identifiers.
func WithIDGen(g clock.IDGen) Option {
	return func(db *DB) { db.ids = g }
}

// WithLogger sets the logger for migration output.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) { db.logger = l }
}

// Open opens or creates the database at path and applies pending migrations.
func Open(path string, opts ...Option) (*DB, error) {
	// WAL for concurrent readers; immediate transactions so writers take the
	// write lock up front instead of failing on upgrade.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_txlock=immediate",
		path,
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn}
	db.Queries = Queries{q: conn, clock: clock.System, ids: clock.UUID}
	for _, opt := range opts {
		opt(db)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if err := db.InitDefaults(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize defaults: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	driver, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create iofs source: %w", err)
	}

	// m is not closed: closing it would close the shared connection pool.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	current, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", current)
	}

	return db.recordMigrationIDs(src, current)
}

// recordMigrationIDs gives every applied version a unique id the first time
// it is seen.
func (db *DB) recordMigrationIDs(src interface {
	First() (uint, error)
	Next(uint) (uint, error)
}, current uint) error {
	v, err := src.First()
	for err == nil && v <= current {
		res, execErr := db.conn.Exec(
			`INSERT OR IGNORE INTO schema_migration_ids (version, uuid, applied_at) VALUES (?, ?, ?)`,
			v, db.ids.NewID(), db.now(),
		)
		if execErr != nil {
			return fmt.Errorf("failed to record migration %d: %w", v, execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 && db.logger != nil {
			db.logger.Info("applied migration", "version", v)
		}
		v, err = src.Next(v)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to enumerate migrations: %w", err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migration_ids`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return v, nil
}

// Tx is a write transaction. It exposes the same queries as DB.
type Tx struct {
	Queries
}

// Update runs fn inside a write transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (db *DB) Update(ctx context.Context, fn func(tx *Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	tx := &Tx{Queries: Queries{q: sqlTx, clock: db.clock, ids: db.ids}}
	if err := fn(tx); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}
