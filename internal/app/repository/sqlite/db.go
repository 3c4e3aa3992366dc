package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"general-transcriber/internal/app/repository"
	"general-transcriber/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is the JobDAO backed by a local SQLite file
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens (creating if needed) the database at dbPath. A path of
// ":memory:" opens a private in-memory database.
func NewSQLiteDB(dbPath string, cfg config.DatabaseConfig) (*SQLiteDB, error) {
	dsn, err := dataSource(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repository.ApplyPool(db, cfg)
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, "sqlite3")}, nil
}

func dataSource(dbPath string) (string, error) {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return dbPath, nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbPath), nil
}
