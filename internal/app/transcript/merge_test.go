package transcript

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"general-transcriber/internal/app/model"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		segments  []model.AudioSegment
		intervals []model.SpeakerInterval
		expected  []string
	}{
		{
			name: "two speakers",
			segments: []model.AudioSegment{
				{Start: 0, End: 5, Text: "hello"},
				{Start: 5, End: 9, Text: "world"},
			},
			intervals: []model.SpeakerInterval{
				{Speaker: "A", Start: 0, End: 6},
				{Speaker: "B", Start: 6, End: 10},
			},
			// 5 lies inside A=[0,6), so the first covering interval wins
			expected: []string{"A", "A"},
		},
		{
			name: "second interval covers later start",
			segments: []model.AudioSegment{
				{Start: 0, End: 5, Text: "hello"},
				{Start: 6.5, End: 9, Text: "world"},
			},
			intervals: []model.SpeakerInterval{
				{Speaker: "A", Start: 0, End: 6},
				{Speaker: "B", Start: 6, End: 10},
			},
			expected: []string{"A", "B"},
		},
		{
			name: "no intervals",
			segments: []model.AudioSegment{
				{Start: 0, End: 5, Text: "hello"},
				{Start: 5, End: 9, Text: "world"},
			},
			expected: []string{model.UnknownSpeaker, model.UnknownSpeaker},
		},
		{
			name: "start outside every interval",
			segments: []model.AudioSegment{
				{Start: 1, End: 2, Text: "covered"},
				{Start: 12, End: 14, Text: "gap"},
			},
			intervals: []model.SpeakerInterval{
				{Speaker: "A", Start: 0, End: 10},
				{Speaker: "B", Start: 15, End: 20},
			},
			expected: []string{"A", model.UnknownSpeaker},
		},
		{
			name:      "end bound is exclusive",
			segments:  []model.AudioSegment{{Start: 6, End: 7, Text: "x"}},
			intervals: []model.SpeakerInterval{{Speaker: "A", Start: 0, End: 6}},
			expected:  []string{model.UnknownSpeaker},
		},
		{
			name:     "overlapping intervals take the first in list order",
			segments: []model.AudioSegment{{Start: 3, End: 4, Text: "x"}},
			intervals: []model.SpeakerInterval{
				{Speaker: "B", Start: 2, End: 8},
				{Speaker: "A", Start: 0, End: 5},
			},
			expected: []string{"B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(tt.segments, tt.intervals)
			require.Len(t, merged, len(tt.segments))
			for i, seg := range merged {
				assert.Equal(t, tt.segments[i].Start, seg.Start)
				assert.Equal(t, tt.segments[i].End, seg.End)
				assert.Equal(t, tt.expected[i], seg.Speaker)
			}
		})
	}
}

func TestMerge_TrimsText(t *testing.T) {
	merged := Merge([]model.AudioSegment{{Start: 0, End: 1, Text: "  hi there \n"}}, nil)
	assert.Equal(t, "hi there", merged[0].Text)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 0.0, Duration(nil))
	assert.Equal(t, 0.0, Duration([]model.MergedSegment{}))
	assert.Equal(t, 9.5, Duration([]model.MergedSegment{{Start: 0, End: 4}, {Start: 4, End: 9.5}}))
}

func TestSpeakerCount(t *testing.T) {
	assert.Nil(t, SpeakerCount(nil))
	assert.Nil(t, SpeakerCount([]model.MergedSegment{{Speaker: model.UnknownSpeaker}}))

	count := SpeakerCount([]model.MergedSegment{
		{Speaker: "A"}, {Speaker: model.UnknownSpeaker}, {Speaker: "B"}, {Speaker: "A"},
	})
	require.NotNil(t, count)
	assert.Equal(t, 2, *count)
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:       "00:00:00",
		59.99:   "00:00:59",
		61.2:    "00:01:01",
		3725.9:  "01:02:05",
		90061.0: "25:01:01",
		-3:      "00:00:00",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, FormatTimestamp(input), "input %v", input)
	}
}

func TestRender(t *testing.T) {
	out := Render([]model.MergedSegment{
		{Start: 0.4, End: 5, Text: "hello", Speaker: "A"},
		{Start: 65.7, End: 70, Text: "world", Speaker: model.UnknownSpeaker},
	})
	assert.Equal(t, "[00:00:00] [A] hello\n[00:01:05] [Speaker] world\n", out)
	assert.Equal(t, "", Render(nil))
}

func TestBuild(t *testing.T) {
	result := &model.TranscriptionResult{
		Segments: []model.AudioSegment{
			{Start: 0, End: 5, Text: "hello"},
			{Start: 5, End: 9, Text: "world"},
		},
		Language: "en",
	}

	t.Run("with speakers", func(t *testing.T) {
		artifact, err := Build(result, model.AvailableTimeline([]model.SpeakerInterval{
			{Speaker: "A", Start: 0, End: 6},
			{Speaker: "B", Start: 6, End: 10},
		}))
		require.NoError(t, err)

		assert.Equal(t, 9.0, artifact.Duration)
		require.NotNil(t, artifact.SpeakerCount)
		assert.Equal(t, 1, *artifact.SpeakerCount)
		assert.Equal(t, "en", artifact.DetectedLanguage)
		assert.Equal(t, "[00:00:00] [A] hello\n[00:00:05] [A] world\n", artifact.FullTranscript)
		assert.JSONEq(t,
			`[{"start":0,"end":5,"text":"hello","speaker":"A"},{"start":5,"end":9,"text":"world","speaker":"A"}]`,
			artifact.SegmentsJSON)
	})

	t.Run("unavailable timeline", func(t *testing.T) {
		artifact, err := Build(result, model.UnavailableTimeline(errors.New("poll timeout")))
		require.NoError(t, err)

		assert.Nil(t, artifact.SpeakerCount)
		for _, seg := range artifact.Segments {
			assert.Equal(t, model.UnknownSpeaker, seg.Speaker)
		}
	})

	t.Run("no segments", func(t *testing.T) {
		artifact, err := Build(&model.TranscriptionResult{Language: "de"}, model.AvailableTimeline(nil))
		require.NoError(t, err)

		assert.Equal(t, 0.0, artifact.Duration)
		assert.Equal(t, "[]", artifact.SegmentsJSON)
		assert.Empty(t, artifact.FullTranscript)
	})
}

func TestDecode(t *testing.T) {
	segments, err := Decode(`[{"start":1.5,"end":2,"text":"x","speaker":"A"}]`)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "A", segments[0].Speaker)

	segments, err = Decode("")
	assert.NoError(t, err)
	assert.Nil(t, segments)

	_, err = Decode("{not json")
	assert.Error(t, err)
}
