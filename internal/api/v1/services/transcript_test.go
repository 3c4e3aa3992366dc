package services_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"general-transcriber/internal/api/apitest"
	"general-transcriber/internal/api/v1/services"
	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/storage"
	"general-transcriber/internal/app/testutil"
)

var (
	alice = model.Viewer{Email: "alice@example.com"}
	bob   = model.Viewer{Email: "bob@example.com"}
	admin = model.Viewer{Email: "ops@example.com", Admin: true}
)

type fixture struct {
	dao        *testutil.MockJobDAO
	store      *storage.LocalStore
	dispatcher *testutil.RecordingDispatcher
	runner     *apitest.MockJobRunner
	service    *services.TranscriptServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		dao:        testutil.NewMockJobDAO(),
		store:      store,
		dispatcher: &testutil.RecordingDispatcher{},
		runner:     &apitest.MockJobRunner{},
	}
	f.service = services.NewTranscriptService(f.dao, f.store, f.dispatcher, f.runner, 1, nil)
	return f
}

func upload(name string, content []byte) *services.UploadedFile {
	return &services.UploadedFile{Name: name, Size: int64(len(content)), Content: bytes.NewReader(content)}
}

func storedFiles(t *testing.T, store *storage.LocalStore) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUpload_StoresQueuesAndRecordsPendingJob(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.Upload(context.Background(), alice, upload("my talk.mp3", []byte("fake mp3 bytes")))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "my talk.mp3", resp.Filename)
	assert.Equal(t, "File uploaded successfully. Transcription started!", resp.Message)
	assert.Equal(t, []int64{resp.TranscriptID}, f.dispatcher.Enqueued())

	job := f.dao.Snapshot(resp.TranscriptID)
	require.NotNil(t, job)
	assert.Equal(t, model.StatusPending, job.Status)
	assert.Equal(t, "File uploaded, queued for transcription...", job.Progress())
	assert.Equal(t, "alice@example.com", job.UserEmail)
	assert.Equal(t, "mp3", job.FileType)
	assert.Regexp(t, regexp.MustCompile(`^\d{14}_[0-9a-f]{8}_my_talk\.mp3$`), job.Filename)

	files := storedFiles(t, f.store)
	require.Len(t, files, 1)
	assert.Equal(t, job.Filename, files[0])
	data, err := os.ReadFile(f.store.Root() + "/" + files[0])
	require.NoError(t, err)
	assert.Equal(t, "fake mp3 bytes", string(data))
}

func TestUpload_Validation(t *testing.T) {
	wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)

	tests := []struct {
		name     string
		file     *services.UploadedFile
		wantErr  error
		wantMsg  string
		accepted bool
	}{
		{
			name:    "missing file",
			file:    nil,
			wantErr: apperrors.ErrInvalidUpload,
			wantMsg: "No file uploaded or upload error",
		},
		{
			name:    "too large",
			file:    &services.UploadedFile{Name: "big.mp3", Size: 2 * 1024 * 1024, Content: bytes.NewReader([]byte("x"))},
			wantErr: apperrors.ErrUploadTooLarge,
			wantMsg: "File too large (max 1MB)",
		},
		{
			name:    "neither type nor extension allowed",
			file:    upload("notes.txt", []byte("just some notes")),
			wantErr: apperrors.ErrInvalidUpload,
			wantMsg: "Invalid file type. Supported: MP3, WAV, M4A, MP4, WebM",
		},
		{
			name:     "extension allowed",
			file:     upload("voice.m4a", []byte("not really audio")),
			accepted: true,
		},
		{
			name:     "detected type allowed",
			file:     upload("recording.bin", wav),
			accepted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			resp, err := f.service.Upload(context.Background(), alice, tt.file)
			if tt.accepted {
				require.NoError(t, err)
				assert.True(t, resp.Success)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err))
			assert.Empty(t, storedFiles(t, f.store))
			assert.Empty(t, f.dispatcher.Enqueued())
		})
	}
}

func TestUpload_DispatchFailureKeepsJobPending(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Err = errors.New("queue is full")

	resp, err := f.service.Upload(context.Background(), alice, upload("talk.wav", []byte("audio")))
	require.NoError(t, err)
	assert.True(t, resp.Success)

	job := f.dao.Snapshot(resp.TranscriptID)
	require.NotNil(t, job)
	assert.Equal(t, model.StatusPending, job.Status)
}

func TestUpload_InsertFailureRemovesFile(t *testing.T) {
	f := newFixture(t)
	f.dao.ErrorMap["Create"] = apperrors.ErrInsertFailed.WithCause(errors.New("disk full"))

	_, err := f.service.Upload(context.Background(), alice, upload("talk.wav", []byte("audio")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsertFailed))
	assert.Empty(t, storedFiles(t, f.store))
	assert.Empty(t, f.dispatcher.Enqueued())
}

func TestList_ScopesToViewer(t *testing.T) {
	f := newFixture(t)
	older := testutil.PendingJob(alice.Email, "a.mp3")
	newer := testutil.CompletedJob(alice.Email, "b.mp3")
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	f.dao.Seed(older)
	f.dao.Seed(newer)
	f.dao.Seed(testutil.PendingJob(bob.Email, "c.mp3"))

	tests := []struct {
		name   string
		viewer model.Viewer
		limit  int
		want   []string
	}{
		{"owner sees own newest first", alice, 0, []string{"b.mp3", "a.mp3"}},
		{"other user", bob, 50, []string{"c.mp3"}},
		{"admin sees all", admin, 50, []string{"b.mp3", "c.mp3", "a.mp3"}},
		{"limit applied", admin, 1, []string{"b.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.List(context.Background(), tt.viewer, tt.limit)
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Transcripts))
			for _, item := range resp.Transcripts {
				got = append(got, item.Filename)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), resp.Count)
		})
	}
}

func TestStatus_Permissions(t *testing.T) {
	f := newFixture(t)
	id := f.dao.Seed(testutil.PendingJob(alice.Email, "talk.mp3"))

	resp, err := f.service.Status(context.Background(), alice, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "File uploaded, queued for transcription...", resp.ProgressText)

	_, err = f.service.Status(context.Background(), admin, id)
	assert.NoError(t, err)

	_, err = f.service.Status(context.Background(), bob, id)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = f.service.Status(context.Background(), alice, 999)
	assert.True(t, errors.Is(err, apperrors.ErrJobNotFound))
	assert.Equal(t, "Transcript not found", apperrors.UserMessage(err))
}

func TestDownload_NamesFileAfterUpload(t *testing.T) {
	f := newFixture(t)
	f.runner.On("Get", mock.Anything, int64(7), alice).Return(&pipeline.TranscriptView{
		ID:         7,
		Filename:   "weekly sync.mp4",
		Transcript: "[00:00:00] [A] Hello\n",
	}, nil)

	file, err := f.service.Download(context.Background(), alice, 7)
	require.NoError(t, err)
	assert.Equal(t, "weekly sync_transcript.txt", file.Filename)
	assert.Equal(t, "[00:00:00] [A] Hello\n", file.Content)
	f.runner.AssertExpectations(t)
}

func TestGet_PassesRunnerErrors(t *testing.T) {
	f := newFixture(t)
	notReady := apperrors.Classifyf(apperrors.ErrTranscriptNotReady, "Transcript is not yet completed (status: %s)", "processing")
	f.runner.On("Get", mock.Anything, int64(3), bob).Return(nil, notReady)

	_, err := f.service.Get(context.Background(), bob, 3)
	assert.True(t, errors.Is(err, apperrors.ErrTranscriptNotReady))
}

func TestStart(t *testing.T) {
	t.Run("owner runs the pipeline", func(t *testing.T) {
		f := newFixture(t)
		id := f.dao.Seed(testutil.PendingJob(alice.Email, "talk.mp3"))
		speakers := 2
		f.runner.On("Start", mock.Anything, id).Return(&pipeline.StartResult{
			Success:      true,
			JobID:        id,
			Filename:     "talk.mp3",
			Segments:     2,
			Duration:     6,
			SpeakerCount: &speakers,
			HasSpeakers:  true,
		}, nil)

		resp, err := f.service.Start(context.Background(), alice, id)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, id, resp.TranscriptID)
		assert.True(t, resp.HasSpeakers)
		f.runner.AssertExpectations(t)
	})

	t.Run("other user is rejected before running", func(t *testing.T) {
		f := newFixture(t)
		id := f.dao.Seed(testutil.PendingJob(alice.Email, "talk.mp3"))

		_, err := f.service.Start(context.Background(), bob, id)
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		f.runner.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
	})

	t.Run("guard errors pass through", func(t *testing.T) {
		f := newFixture(t)
		id := f.dao.Seed(testutil.CompletedJob(alice.Email, "talk.mp3"))
		f.runner.On("Start", mock.Anything, id).Return(nil, apperrors.ErrJobAlreadyFinished)

		_, err := f.service.Start(context.Background(), admin, id)
		assert.True(t, errors.Is(err, apperrors.ErrJobAlreadyFinished))
	})
}
