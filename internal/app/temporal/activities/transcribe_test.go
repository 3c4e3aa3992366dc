package activities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	apperrors "general-transcriber/internal/app/errors"
	"general-transcriber/internal/app/pipeline"
	"general-transcriber/internal/app/temporal/workflows"
)

type stubRunner struct {
	result *pipeline.StartResult
	err    error
}

func (s stubRunner) Start(context.Context, int64) (*pipeline.StartResult, error) {
	return s.result, s.err
}

func TestRunTranscriptionJob(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()

	speakers := 3
	acts := NewJobActivities(stubRunner{result: &pipeline.StartResult{
		Success: true, JobID: 4, Segments: 7, Duration: 42.5, SpeakerCount: &speakers, HasSpeakers: true,
	}})
	env.RegisterActivity(acts)

	val, err := env.ExecuteActivity(acts.RunTranscriptionJob, workflows.JobRequest{JobID: 4})
	require.NoError(t, err)

	var result workflows.JobResult
	require.NoError(t, val.Get(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 7, result.Segments)
	assert.Equal(t, 42.5, result.Duration)
	require.NotNil(t, result.SpeakerCount)
	assert.Equal(t, 3, *result.SpeakerCount)
}

func TestRunTranscriptionJob_FailedJobIsNotAnActivityError(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	acts := NewJobActivities(stubRunner{result: &pipeline.StartResult{JobID: 4, Error: "Whisper API failed (HTTP 500)"}})
	env.RegisterActivity(acts)

	val, err := env.ExecuteActivity(acts.RunTranscriptionJob, workflows.JobRequest{JobID: 4})
	require.NoError(t, err)

	var result workflows.JobResult
	require.NoError(t, val.Get(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "Whisper API failed (HTTP 500)", result.Error)
}

func TestGuardError(t *testing.T) {
	err := guardError(apperrors.ErrJobAlreadyFinished)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
	assert.Equal(t, "JobRejected", appErr.Type())

	other := assert.AnError
	assert.Equal(t, other, guardError(other))
}
