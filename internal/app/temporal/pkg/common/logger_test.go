package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := NewZapAdapter(zap.New(core))

	adapter.Info("Job started", "job_id", 7, "workflow", "wf-1")
	adapter.Warn("odd", "dangling")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "Job started", entries[0].Message)
		assert.Equal(t, int64(7), entries[0].ContextMap()["job_id"])
		assert.Equal(t, "wf-1", entries[0].ContextMap()["workflow"])
		assert.Contains(t, entries[1].ContextMap(), "keyvals")
	}
}
