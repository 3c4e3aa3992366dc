package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/config"
)

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
	now          func() time.Time
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "sqlite3":
		placeholders = func(n int) string { return "?" }
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
		now:          time.Now,
	}
}

// ApplyPool copies the pool limits from cfg onto db
func ApplyPool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

const jobColumns = `id, filename, original_filename, file_type, file_size_mb, user_email, status,
	progress_text, error_message, full_transcript, transcript_json, detected_language,
	speaker_count, duration_seconds, created_at, started_at, completed_at`

// params renders placeholders from..from+n-1 joined by commas
func (c *CommonDB) params(from, n int) string {
	ps := make([]string, n)
	for i := 0; i < n; i++ {
		ps[i] = c.placeholders(from + i)
	}
	return strings.Join(ps, ", ")
}

// Create inserts a new job and returns its id
func (c *CommonDB) Create(ctx context.Context, job *model.TranscriptionJob) (int64, error) {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = c.now()
	}
	query := fmt.Sprintf(
		`INSERT INTO general_transcripts (
			filename, original_filename, file_type, file_size_mb, user_email,
			status, progress_text, created_at
		) VALUES (%s)`,
		c.params(1, 8),
	)
	args := []interface{}{
		job.Filename, job.OriginalFilename, job.FileType, job.FileSizeMB, job.UserEmail,
		string(job.Status), job.ProgressText, job.CreatedAt,
	}

	var id int64
	if c.driverName == "postgres" {
		if err := c.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, apperrors.ErrInsertFailed.WithCause(err)
		}
	} else {
		res, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, apperrors.ErrInsertFailed.WithCause(err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, apperrors.ErrInsertFailed.WithCause(err)
		}
	}

	job.ID = id
	return id, nil
}

// Get loads a single job
func (c *CommonDB) Get(ctx context.Context, id int64) (*model.TranscriptionJob, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM general_transcripts WHERE id = %s",
		jobColumns, c.placeholders(1),
	)

	job, err := scanJob(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrJobNotFound
	}
	if err != nil {
		return nil, apperrors.ErrQueryFailed.WithCause(err)
	}
	return job, nil
}

// List retrieves jobs ordered by creation time, newest first
func (c *CommonDB) List(ctx context.Context, owner string, all bool, limit int) ([]model.TranscriptionJob, error) {
	var (
		query string
		args  []interface{}
	)
	if all {
		query = fmt.Sprintf(
			"SELECT %s FROM general_transcripts ORDER BY created_at DESC, id DESC LIMIT %s",
			jobColumns, c.placeholders(1),
		)
		args = []interface{}{limit}
	} else {
		query = fmt.Sprintf(
			"SELECT %s FROM general_transcripts WHERE user_email = %s ORDER BY created_at DESC, id DESC LIMIT %s",
			jobColumns, c.placeholders(1), c.placeholders(2),
		)
		args = []interface{}{owner, limit}
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.ErrQueryFailed.WithCause(err)
	}
	defer rows.Close()

	jobs := make([]model.TranscriptionJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		jobs = append(jobs, *job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return jobs, nil
}

// Claim moves a job from pending to processing in one conditional update
func (c *CommonDB) Claim(ctx context.Context, id int64, progress string) (bool, error) {
	query := fmt.Sprintf(
		`UPDATE general_transcripts
		 SET status = 'processing', started_at = COALESCE(started_at, %s), progress_text = %s
		 WHERE id = %s AND status = 'pending'`,
		c.placeholders(1), c.placeholders(2), c.placeholders(3),
	)

	res, err := c.db.ExecContext(ctx, query, c.now(), progress, id)
	if err != nil {
		return false, apperrors.ErrUpdateFailed.WithCause(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.ErrUpdateFailed.WithCause(err)
	}
	return n == 1, nil
}

// UpdateProgress sets progress_text
func (c *CommonDB) UpdateProgress(ctx context.Context, id int64, progress string) error {
	query := fmt.Sprintf(
		"UPDATE general_transcripts SET progress_text = %s WHERE id = %s",
		c.placeholders(1), c.placeholders(2),
	)
	if _, err := c.db.ExecContext(ctx, query, progress, id); err != nil {
		return apperrors.ErrUpdateFailed.WithCause(err)
	}
	return nil
}

// Complete stores the transcript artifact and marks the job completed. Only a
// processing job can finish, so the artifact is written once.
func (c *CommonDB) Complete(ctx context.Context, id int64, artifact *model.TranscriptArtifact) error {
	query := fmt.Sprintf(
		`UPDATE general_transcripts
		 SET status = 'completed', progress_text = %s, error_message = NULL,
		     full_transcript = %s, transcript_json = %s, detected_language = %s,
		     speaker_count = %s, duration_seconds = %s, completed_at = %s
		 WHERE id = %s AND status = 'processing'`,
		c.placeholders(1), c.placeholders(2), c.placeholders(3), c.placeholders(4),
		c.placeholders(5), c.placeholders(6), c.placeholders(7), c.placeholders(8),
	)

	var speakers interface{}
	if artifact.SpeakerCount != nil {
		speakers = *artifact.SpeakerCount
	}

	res, err := c.db.ExecContext(ctx, query,
		model.ProgressCompleted, artifact.FullTranscript, artifact.SegmentsJSON, artifact.DetectedLanguage,
		speakers, artifact.Duration, c.now(), id,
	)
	return finishResult(res, err)
}

// Fail marks a processing job failed with the given error and progress text
func (c *CommonDB) Fail(ctx context.Context, id int64, errorMessage, progress string) error {
	query := fmt.Sprintf(
		`UPDATE general_transcripts
		 SET status = 'failed', error_message = %s, progress_text = %s, completed_at = %s
		 WHERE id = %s AND status = 'processing'`,
		c.placeholders(1), c.placeholders(2), c.placeholders(3), c.placeholders(4),
	)
	res, err := c.db.ExecContext(ctx, query, errorMessage, progress, c.now(), id)
	return finishResult(res, err)
}

// finishResult maps a terminal update that matched no processing row to
// ErrJobAlreadyFinished
func finishResult(res sql.Result, err error) error {
	if err != nil {
		return apperrors.ErrUpdateFailed.WithCause(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.ErrUpdateFailed.WithCause(err)
	}
	if n == 0 {
		return apperrors.Classify(apperrors.ErrJobAlreadyFinished, "Transcript is not processing")
	}
	return nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// DriverName returns the database/sql driver in use
func (c *CommonDB) DriverName() string {
	return c.driverName
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*model.TranscriptionJob, error) {
	var (
		job                                   model.TranscriptionJob
		status                                string
		progress, errMsg, full, raw, language sql.NullString
		speakers                              sql.NullInt64
		duration                              sql.NullFloat64
		started, completed                    sql.NullTime
	)

	err := row.Scan(
		&job.ID, &job.Filename, &job.OriginalFilename, &job.FileType, &job.FileSizeMB, &job.UserEmail, &status,
		&progress, &errMsg, &full, &raw, &language,
		&speakers, &duration, &job.CreatedAt, &started, &completed,
	)
	if err != nil {
		return nil, err
	}

	job.Status = model.JobStatus(status)
	job.ProgressText = nullString(progress)
	job.ErrorMessage = nullString(errMsg)
	job.FullTranscript = nullString(full)
	job.TranscriptJSON = nullString(raw)
	job.DetectedLanguage = nullString(language)
	if speakers.Valid {
		n := int(speakers.Int64)
		job.SpeakerCount = &n
	}
	if duration.Valid {
		job.DurationSeconds = &duration.Float64
	}
	if started.Valid {
		job.StartedAt = &started.Time
	}
	if completed.Valid {
		job.CompletedAt = &completed.Time
	}
	return &job, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
