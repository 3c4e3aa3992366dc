package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsExtraction(t *testing.T) {
	for _, ft := range []string{"mp4", "webm", "mov", "avi", "MP4"} {
		assert.True(t, NeedsExtraction(ft), ft)
	}
	for _, ft := range []string{"mp3", "wav", "m4a", "ogg", "aac", ""} {
		assert.False(t, NeedsExtraction(ft), ft)
	}
}

func TestUploadWhitelists(t *testing.T) {
	assert.True(t, IsAllowedExtension("MOV"))
	assert.False(t, IsAllowedExtension("avi"))
	assert.False(t, IsAllowedExtension("exe"))

	assert.True(t, IsAllowedMIMEType("audio/webm; codecs=opus"))
	assert.True(t, IsAllowedMIMEType("video/quicktime"))
	assert.False(t, IsAllowedMIMEType("application/pdf"))
	assert.False(t, IsAllowedMIMEType(""))
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "mp3", FileType("Interview.MP3"))
	assert.Equal(t, "webm", FileType("a.b.webm"))
	assert.Equal(t, "", FileType("noext"))
}

func TestStoredName(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		original string
		expected string
	}{
		{"meeting notes.mp3", "20250304050607_abcdef12_meeting_notes.mp3"},
		{"Ünïcode (final).MOV", "20250304050607_abcdef12__n_code__final_.mov"},
		{"a-b_c.d.wav", "20250304050607_abcdef12_a-b_c.d.wav"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, storedName(tt.original, now, "abcdef12"), tt.original)
	}

	name, err := StoredName("clip.mp4", now)
	require.NoError(t, err)
	assert.Regexp(t, `^20250304050607_[0-9a-f]{8}_clip\.mp4$`, name)
}
