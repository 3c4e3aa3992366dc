package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/model"
	"general-transcriber/internal/app/storage"
)

type extractionServer struct {
	*httptest.Server
	calls       atomic.Int32
	status      int
	reply       map[string]interface{}
	audio       []byte
	gotFilename string
	gotVideo    []byte
}

func newExtractionServer(t *testing.T) *extractionServer {
	es := &extractionServer{status: http.StatusOK, audio: []byte("ID3 fake mp3 data")}
	mux := http.NewServeMux()
	mux.HandleFunc("/extract-audio-base64", func(w http.ResponseWriter, r *http.Request) {
		es.calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			VideoBase64 string `json:"video_base64"`
			Filename    string `json:"filename"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		es.gotFilename = body.Filename
		es.gotVideo, _ = base64.StdEncoding.DecodeString(body.VideoBase64)

		w.WriteHeader(es.status)
		reply := es.reply
		if reply == nil {
			reply = map[string]interface{}{
				"success":       true,
				"audio_url":     es.URL + "/files/audio.mp3",
				"audio_size_mb": 0.01,
			}
		}
		json.NewEncoder(w).Encode(reply)
	})
	mux.HandleFunc("/files/audio.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Write(es.audio)
	})
	es.Server = httptest.NewServer(mux)
	t.Cleanup(es.Close)
	return es
}

func setupPreprocessor(t *testing.T, baseURL string, maxMB float64) (*Preprocessor, *storage.LocalStore, string) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	tempDir := t.TempDir()
	client := NewExtractionClient(baseURL, 5*time.Second, 5*time.Second, nil)
	return NewPreprocessor(store, client, maxMB, tempDir, nil), store, tempDir
}

func saveFile(t *testing.T, store *storage.LocalStore, name string, data []byte) {
	require.NoError(t, store.Save(context.Background(), name, bytes.NewReader(data), int64(len(data)), ""))
}

func tempFiles(t *testing.T, dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "temp_audio_*"))
	require.NoError(t, err)
	return matches
}

func TestPreprocessor_AudioPassthrough(t *testing.T) {
	pre, store, tempDir := setupPreprocessor(t, "", 24)
	saveFile(t, store, "talk.mp3", []byte("mp3 bytes"))

	audio, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 1, Filename: "talk.mp3", FileType: "mp3"})
	require.NoError(t, err)
	defer audio.Release()

	assert.False(t, audio.Extracted)
	assert.Equal(t, filepath.Join(store.Root(), "talk.mp3"), audio.Path)
	assert.Empty(t, tempFiles(t, tempDir))

	audio.Release()
	assert.FileExists(t, audio.Path, "stored upload must survive release")
}

func TestPreprocessor_VideoExtraction(t *testing.T) {
	es := newExtractionServer(t)
	pre, store, tempDir := setupPreprocessor(t, es.URL, 24)
	saveFile(t, store, "clip.mp4", []byte("video bytes"))

	audio, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 7, Filename: "clip.mp4", FileType: "mp4"})
	require.NoError(t, err)

	assert.True(t, audio.Extracted)
	assert.Equal(t, "clip.mp4", es.gotFilename)
	assert.Equal(t, []byte("video bytes"), es.gotVideo)

	data, err := os.ReadFile(audio.Path)
	require.NoError(t, err)
	assert.Equal(t, es.audio, data)
	assert.Contains(t, filepath.Base(audio.Path), "temp_audio_7_")

	audio.Release()
	audio.Release()
	assert.NoFileExists(t, audio.Path)
	assert.Empty(t, tempFiles(t, tempDir))
}

func TestPreprocessor_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		reply       map[string]interface{}
		wantMessage string
	}{
		{
			name:        "non 200",
			status:      http.StatusBadGateway,
			wantMessage: "Audio extraction failed (HTTP 502)",
		},
		{
			name:        "service reports failure",
			status:      http.StatusOK,
			reply:       map[string]interface{}{"success": false, "error": "ffmpeg crashed"},
			wantMessage: "Audio extraction failed: ffmpeg crashed",
		},
		{
			name:        "failure without reason",
			status:      http.StatusOK,
			reply:       map[string]interface{}{"success": false},
			wantMessage: "Audio extraction failed: Unknown error",
		},
		{
			name:        "missing audio url",
			status:      http.StatusOK,
			reply:       map[string]interface{}{"success": true},
			wantMessage: "No audio URL returned from extraction service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := newExtractionServer(t)
			es.status = tt.status
			es.reply = tt.reply

			pre, store, tempDir := setupPreprocessor(t, es.URL, 24)
			saveFile(t, store, "clip.webm", []byte("video"))

			_, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 2, Filename: "clip.webm", FileType: "webm"})
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrExtractionFailed)
			assert.Equal(t, tt.wantMessage, apperrors.UserMessage(err))
			assert.Empty(t, tempFiles(t, tempDir))
		})
	}
}

func TestPreprocessor_DownloadFailureCleansUp(t *testing.T) {
	es := newExtractionServer(t)
	es.reply = map[string]interface{}{"success": true, "audio_url": es.URL + "/missing.mp3"}

	pre, store, tempDir := setupPreprocessor(t, es.URL, 24)
	saveFile(t, store, "clip.mov", []byte("video"))

	_, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 3, Filename: "clip.mov", FileType: "mov"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExtractionFailed)
	assert.Equal(t, "Failed to download extracted audio", apperrors.UserMessage(err))
	assert.Empty(t, tempFiles(t, tempDir))
}

func TestPreprocessor_AudioTooLarge(t *testing.T) {
	t.Run("extracted audio", func(t *testing.T) {
		es := newExtractionServer(t)
		es.audio = bytes.Repeat([]byte("a"), 2*1024*1024)

		pre, store, tempDir := setupPreprocessor(t, es.URL, 1)
		saveFile(t, store, "clip.mp4", []byte("video"))

		_, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 4, Filename: "clip.mp4", FileType: "mp4"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrAudioTooLarge)
		assert.Equal(t, "Audio file too large (2.0MB > 25MB Whisper API limit).", apperrors.UserMessage(err))
		assert.Empty(t, tempFiles(t, tempDir))
	})

	t.Run("native audio", func(t *testing.T) {
		pre, store, _ := setupPreprocessor(t, "", 1)
		saveFile(t, store, "long.wav", bytes.Repeat([]byte("a"), 3*1024*1024))

		_, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 5, Filename: "long.wav", FileType: "wav"})
		assert.ErrorIs(t, err, apperrors.ErrAudioTooLarge)
	})
}

func TestPreprocessor_MissingConfigAndFile(t *testing.T) {
	pre, store, _ := setupPreprocessor(t, "", 24)
	saveFile(t, store, "clip.mp4", []byte("video"))

	_, err := pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 6, Filename: "clip.mp4", FileType: "mp4"})
	assert.ErrorIs(t, err, apperrors.ErrConfigMissing)

	_, err = pre.Prepare(context.Background(), &model.TranscriptionJob{ID: 6, Filename: "gone.mp3", FileType: "mp3"})
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.Equal(t, "Uploaded file not found: gone.mp3", apperrors.UserMessage(err))

	_, err = pre.Locate(context.Background(), &model.TranscriptionJob{Filename: "gone.mp3"})
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}
