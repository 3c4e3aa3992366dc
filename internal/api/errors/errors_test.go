package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "general-transcriber/internal/app/errors"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "job not found sentinel",
			err:        apperrors.ErrJobNotFound,
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "transcript not found",
		},
		{
			name:       "classified forbidden",
			err:        apperrors.Classify(apperrors.ErrForbidden, "You do not have permission to view this transcript"),
			wantKind:   KindForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "You do not have permission to view this transcript",
		},
		{
			name:       "in progress",
			err:        apperrors.ErrJobInProgress,
			wantKind:   KindConflict,
			wantStatus: http.StatusConflict,
			wantMsg:    "transcription already in progress",
		},
		{
			name:       "wrapped already finished",
			err:        fmt.Errorf("start job 4: %w", apperrors.ErrJobAlreadyFinished),
			wantKind:   KindConflict,
			wantStatus: http.StatusConflict,
			wantMsg:    "start job 4: transcription already finished",
		},
		{
			name:       "not ready",
			err:        apperrors.Classifyf(apperrors.ErrTranscriptNotReady, "Transcript is not yet completed (status: %s)", "pending"),
			wantKind:   KindBadRequest,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Transcript is not yet completed (status: pending)",
		},
		{
			name:       "upload too large",
			err:        apperrors.Classify(apperrors.ErrUploadTooLarge, "File too large (max 100MB)"),
			wantKind:   KindPayloadTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsg:    "File too large (max 100MB)",
		},
		{
			name:       "missing configuration",
			err:        apperrors.RequiredField("OPENAI_API_KEY"),
			wantKind:   KindServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "OPENAI_API_KEY not configured",
		},
		{
			name:       "storage failure is hidden",
			err:        apperrors.ErrUpdateFailed.WithCause(stderrors.New("pq: connection refused")),
			wantKind:   KindInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "api error passes through",
			err:        NewUnauthorizedError("Not logged in"),
			wantKind:   KindUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Not logged in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromDomain(tt.err)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantStatus, apiErr.HTTPStatus())
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.False(t, apiErr.Success)
		})
	}

	assert.Nil(t, FromDomain(nil))
}

func TestWrapErrorKeepsDetails(t *testing.T) {
	orig := NewValidationError("Invalid path parameters", map[string]string{"id": "is required"})

	wrapped := WrapError(orig, KindBadRequest, "Invalid request")

	assert.Equal(t, KindBadRequest, wrapped.Kind)
	assert.Equal(t, map[string]string{"id": "is required"}, wrapped.Details)
	assert.Nil(t, WrapError(nil, KindInternal, "unused"))
}
