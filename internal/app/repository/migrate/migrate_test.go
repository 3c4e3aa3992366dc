package migrate

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Up(context.Background(), db, "sqlite3"))
	return db
}

func TestStatements(t *testing.T) {
	for _, driver := range []string{"sqlite3", "postgres"} {
		stmts, err := Statements(driver)
		require.NoError(t, err, driver)
		assert.Len(t, stmts, 2)
	}

	_, err := Statements("mysql")
	assert.Error(t, err)
}

func TestUpIsIdempotent(t *testing.T) {
	db := newSource(t)
	assert.NoError(t, Up(context.Background(), db, "sqlite3"))
}

func TestCopyToPostgres(t *testing.T) {
	src := newSource(t)
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	insert := `INSERT INTO general_transcripts (filename, original_filename, file_type, file_size_mb, user_email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := src.Exec(insert, "a.mp3", "a.mp3", "mp3", 1.5, "alice@example.com", "completed", created)
	require.NoError(t, err)
	_, err = src.Exec(insert, "b.mp3", "b.mp3", "mp3", 0.5, "", "pending", created)
	require.NoError(t, err)

	dst, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dst.Close()

	insertPattern := regexp.QuoteMeta("INSERT INTO general_transcripts")

	// first batch: one valid row, one skipped for its empty owner
	mock.ExpectBegin()
	mock.ExpectPrepare(insertPattern)
	mock.ExpectExec(insertPattern).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	// second batch is empty and ends the loop
	mock.ExpectBegin()
	mock.ExpectPrepare(insertPattern)
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta("SELECT setval")).WillReturnResult(sqlmock.NewResult(0, 0))

	copied, lastID, err := CopyToPostgres(context.Background(), src, dst, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Equal(t, int64(2), lastID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyToPostgres_ResumesAfterID(t *testing.T) {
	src := newSource(t)
	_, err := src.Exec(`INSERT INTO general_transcripts (filename, original_filename, file_type, user_email)
		VALUES ('a.mp3', 'a.mp3', 'mp3', 'alice@example.com')`)
	require.NoError(t, err)

	dst, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer dst.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO general_transcripts"))
	mock.ExpectCommit()

	copied, lastID, err := CopyToPostgres(context.Background(), src, dst, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, copied)
	assert.Equal(t, int64(1), lastID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
