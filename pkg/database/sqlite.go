// Package database owns the embedded per-user SQLite stores: opening and
// closing database files, the lifecycle manager that guarantees one active
// store per user identity, and the scope object that carries the active
// store through context to the repositories.
package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB wraps one open per-user SQLite database file.
type DB struct {
	*sql.DB
	Path string
}

// Open opens (or creates) the SQLite database at path and brings its schema
// up to date. WAL mode keeps multi-tab readers from blocking the writer;
// foreign keys stay on so the DDL's REFERENCES clauses are honored.
func Open(path string, logger *zap.Logger) (*DB, error) {
	dsn := path + "?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// SQLite allows a single writer; serializing all access through one
	// connection avoids SQLITE_BUSY under concurrent service calls.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	if err := RunMigrations(sqlDB, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &DB{DB: sqlDB, Path: path}, nil
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.DB.Close()
}
