package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	content := "fake audio bytes"
	require.NoError(t, store.Save(ctx, "a.mp3", strings.NewReader(content), int64(len(content)), "audio/mpeg"))

	size, err := store.Stat(ctx, "a.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	rc, err := store.Open(ctx, "a.mp3")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	path, release, err := store.Localize(ctx, "a.mp3")
	require.NoError(t, err)
	assert.FileExists(t, path)
	release()
	assert.FileExists(t, path, "localize must not remove the stored file")

	require.NoError(t, store.Remove(ctx, "a.mp3"))
	_, err = store.Stat(ctx, "a.mp3")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.NoError(t, store.Remove(ctx, "a.mp3"))
}

func TestLocalStore_MissingFile(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(ctx, "missing.mp4")
	assert.ErrorIs(t, err, ErrNotExist)

	_, _, err = store.Localize(ctx, "missing.mp4")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape.mp3", "/etc/passwd", ""} {
		_, err := store.Stat(context.Background(), key)
		assert.Error(t, err, key)
		assert.NotErrorIs(t, err, ErrNotExist, key)
	}
}
