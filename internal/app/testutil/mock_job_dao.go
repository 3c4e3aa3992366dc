package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
)

// MockJobDAO is an in-memory implementation of repository.JobDAO.
// Set ErrorMap[method] to make that method fail.
type MockJobDAO struct {
	mu       sync.RWMutex
	jobs     map[int64]*model.TranscriptionJob
	nextID   int64
	progress map[int64][]string

	ErrorMap map[string]error
	Closed   bool
}

// NewMockJobDAO creates an empty MockJobDAO
func NewMockJobDAO() *MockJobDAO {
	return &MockJobDAO{
		jobs:     make(map[int64]*model.TranscriptionJob),
		nextID:   1,
		progress: make(map[int64][]string),
		ErrorMap: make(map[string]error),
	}
}

func (m *MockJobDAO) injected(method string) error {
	if err, ok := m.ErrorMap[method]; ok {
		return err
	}
	return nil
}

// Seed stores job as is and returns its id
func (m *MockJobDAO) Seed(job *model.TranscriptionJob) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.ID == 0 {
		job.ID = m.nextID
	}
	if job.ID >= m.nextID {
		m.nextID = job.ID + 1
	}
	clone := *job
	m.jobs[job.ID] = &clone
	return job.ID
}

// ProgressHistory returns every progress text written for id, in order
func (m *MockJobDAO) ProgressHistory(id int64) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.progress[id]...)
}

// Snapshot returns a copy of the stored job or nil
func (m *MockJobDAO) Snapshot(id int64) *model.TranscriptionJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	clone := *job
	return &clone
}

func (m *MockJobDAO) Create(_ context.Context, job *model.TranscriptionJob) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("Create"); err != nil {
		return 0, err
	}
	job.ID = m.nextID
	m.nextID++
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	clone := *job
	m.jobs[job.ID] = &clone
	return job.ID, nil
}

func (m *MockJobDAO) Get(_ context.Context, id int64) (*model.TranscriptionJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.injected("Get"); err != nil {
		return nil, err
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	clone := *job
	return &clone, nil
}

func (m *MockJobDAO) List(_ context.Context, owner string, all bool, limit int) ([]model.TranscriptionJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.injected("List"); err != nil {
		return nil, err
	}
	jobs := make([]model.TranscriptionJob, 0)
	for _, job := range m.jobs {
		if all || job.UserEmail == owner {
			jobs = append(jobs, *job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID > jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *MockJobDAO) Claim(_ context.Context, id int64, progress string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("Claim"); err != nil {
		return false, err
	}
	job, ok := m.jobs[id]
	if !ok || job.Status != model.StatusPending {
		return false, nil
	}
	job.Status = model.StatusProcessing
	if job.StartedAt == nil {
		now := time.Now()
		job.StartedAt = &now
	}
	job.ProgressText = &progress
	m.progress[id] = append(m.progress[id], progress)
	return true, nil
}

func (m *MockJobDAO) UpdateProgress(_ context.Context, id int64, progress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("UpdateProgress"); err != nil {
		return err
	}
	if job, ok := m.jobs[id]; ok {
		job.ProgressText = &progress
		m.progress[id] = append(m.progress[id], progress)
	}
	return nil
}

func (m *MockJobDAO) Complete(_ context.Context, id int64, artifact *model.TranscriptArtifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("Complete"); err != nil {
		return err
	}
	job, ok := m.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.Status != model.StatusProcessing {
		return apperrors.Classify(apperrors.ErrJobAlreadyFinished, "Transcript is not processing")
	}
	now := time.Now()
	progress := model.ProgressCompleted
	full, raw, lang, duration := artifact.FullTranscript, artifact.SegmentsJSON, artifact.DetectedLanguage, artifact.Duration
	job.Status = model.StatusCompleted
	job.ProgressText = &progress
	job.ErrorMessage = nil
	job.FullTranscript = &full
	job.TranscriptJSON = &raw
	job.DetectedLanguage = &lang
	job.SpeakerCount = artifact.SpeakerCount
	job.DurationSeconds = &duration
	job.CompletedAt = &now
	m.progress[id] = append(m.progress[id], progress)
	return nil
}

func (m *MockJobDAO) Fail(_ context.Context, id int64, errorMessage, progress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.injected("Fail"); err != nil {
		return err
	}
	job, ok := m.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.Status != model.StatusProcessing {
		return apperrors.Classify(apperrors.ErrJobAlreadyFinished, "Transcript is not processing")
	}
	now := time.Now()
	job.Status = model.StatusFailed
	job.ErrorMessage = &errorMessage
	job.ProgressText = &progress
	job.CompletedAt = &now
	m.progress[id] = append(m.progress[id], progress)
	return nil
}

func (m *MockJobDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.injected("Close")
}
