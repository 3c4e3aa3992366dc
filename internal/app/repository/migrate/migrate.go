// Package migrate creates the job schema and copies jobs between stores.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS general_transcripts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		original_filename TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_size_mb REAL NOT NULL DEFAULT 0,
		user_email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'processing', 'completed', 'failed')),
		progress_text TEXT,
		error_message TEXT,
		full_transcript TEXT,
		transcript_json TEXT,
		detected_language TEXT,
		speaker_count INTEGER,
		duration_seconds REAL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		started_at DATETIME,
		completed_at DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS idx_general_transcripts_user_created
		ON general_transcripts (user_email, created_at DESC)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS general_transcripts (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT NOT NULL,
		original_filename TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_size_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
		user_email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'processing', 'completed', 'failed')),
		progress_text TEXT,
		error_message TEXT,
		full_transcript TEXT,
		transcript_json TEXT,
		detected_language TEXT,
		speaker_count INTEGER,
		duration_seconds DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_general_transcripts_user_created
		ON general_transcripts (user_email, created_at DESC)`,
}

// Statements returns the schema statements for a database/sql driver name
func Statements(driverName string) ([]string, error) {
	switch driverName {
	case "sqlite3":
		return sqliteSchema, nil
	case "postgres":
		return postgresSchema, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driverName)
	}
}

// Up creates the general_transcripts table and its index if missing
func Up(ctx context.Context, db *sql.DB, driverName string) error {
	stmts, err := Statements(driverName)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

const copyBatchSize = 1000

// CopyToPostgres copies jobs with id > afterID from a SQLite store into a
// Postgres store in batches, keeping their ids. It returns the number of rows
// copied and the last id seen so a later run can resume.
func CopyToPostgres(ctx context.Context, src, dst *sql.DB, afterID int64, logger *slog.Logger) (int, int64, error) {
	if logger == nil {
		logger = slog.Default()
	}

	columns := `id, filename, original_filename, file_type, file_size_mb, user_email, status,
		progress_text, error_message, full_transcript, transcript_json, detected_language,
		speaker_count, duration_seconds, created_at, started_at, completed_at`

	placeholders := make([]string, 17)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO general_transcripts (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
		columns, strings.Join(placeholders, ", "),
	)

	copied := 0
	lastID := afterID
	for {
		n, last, err := copyBatch(ctx, src, dst, columns, insertSQL, lastID, logger)
		if err != nil {
			return copied, lastID, err
		}
		copied += n
		if last == lastID {
			break
		}
		lastID = last
	}

	if copied > 0 {
		_, err := dst.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('general_transcripts', 'id'), (SELECT MAX(id) FROM general_transcripts))`)
		if err != nil {
			return copied, lastID, fmt.Errorf("failed to reset id sequence: %w", err)
		}
	}

	logger.Info("Data migration completed", "copied", copied, "last_id", lastID)
	return copied, lastID, nil
}

func copyBatch(ctx context.Context, src, dst *sql.DB, columns, insertSQL string, afterID int64, logger *slog.Logger) (int, int64, error) {
	rows, err := src.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM general_transcripts WHERE id > ? ORDER BY id LIMIT %d", columns, copyBatchSize),
		afterID,
	)
	if err != nil {
		return 0, afterID, fmt.Errorf("failed to read source rows: %w", err)
	}
	defer rows.Close()

	tx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return 0, afterID, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, afterID, err
	}
	defer stmt.Close()

	copied := 0
	lastID := afterID
	for rows.Next() {
		var (
			id                                    int64
			filename, original, fileType, email   string
			status                                string
			sizeMB                                float64
			progress, errMsg, full, raw, language sql.NullString
			speakers                              sql.NullInt64
			duration                              sql.NullFloat64
			created                               sql.NullTime
			started, completed                    sql.NullTime
		)
		if err := rows.Scan(&id, &filename, &original, &fileType, &sizeMB, &email, &status,
			&progress, &errMsg, &full, &raw, &language, &speakers, &duration, &created, &started, &completed); err != nil {
			return copied, lastID, fmt.Errorf("failed to read row after id %d: %w", lastID, err)
		}
		lastID = id

		if strings.TrimSpace(filename) == "" || strings.TrimSpace(email) == "" {
			logger.Warn("Skipping invalid row", "id", id, "reason", "filename or user_email is empty")
			continue
		}

		if _, err := stmt.ExecContext(ctx, id, filename, original, fileType, sizeMB, email, status,
			progress, errMsg, full, raw, language, speakers, duration, created, started, completed); err != nil {
			return 0, afterID, fmt.Errorf("failed to insert row with id %d: %w", id, err)
		}
		copied++
	}
	if err := rows.Err(); err != nil {
		return copied, lastID, err
	}

	if err := tx.Commit(); err != nil {
		return 0, afterID, err
	}
	return copied, lastID, nil
}
