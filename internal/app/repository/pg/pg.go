package pg

import (
	"database/sql"
	"fmt"

	"general-transcriber/internal/app/repository"
	"general-transcriber/internal/config"

	_ "github.com/lib/pq"
)

// PostgresDB is the JobDAO backed by PostgreSQL
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB opens a pooled connection. sql.Open does not dial, so a bad
// server only surfaces on first use.
func NewPostgresDB(connectionString string, cfg config.DatabaseConfig) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	repository.ApplyPool(db, cfg)
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres")}, nil
}

// NewWithDB wraps an existing connection, used with sqlmock in tests
func NewWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres")}
}
