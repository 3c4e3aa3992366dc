// Package transcript merges transcription segments with a speaker timeline
// and renders the result.
package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"general-transcriber/internal/app/model"
)

// Merge assigns a speaker to every segment. The first interval whose
// [start, end) range contains the segment start wins; segments outside every
// interval get model.UnknownSpeaker. Output order and length match segments.
func Merge(segments []model.AudioSegment, intervals []model.SpeakerInterval) []model.MergedSegment {
	merged := make([]model.MergedSegment, 0, len(segments))
	for _, seg := range segments {
		speaker := model.UnknownSpeaker
		if interval, ok := lo.Find(intervals, func(si model.SpeakerInterval) bool {
			return si.Covers(seg.Start)
		}); ok {
			speaker = interval.Speaker
		}

		merged = append(merged, model.MergedSegment{
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
			Speaker: speaker,
		})
	}
	return merged
}

// Duration returns the end of the last segment, 0 for an empty transcript
func Duration(merged []model.MergedSegment) float64 {
	if len(merged) == 0 {
		return 0
	}
	return merged[len(merged)-1].End
}

// SpeakerCount counts distinct assigned speakers. It returns nil when no
// segment has a speaker so callers store "no speaker data" instead of 0.
func SpeakerCount(merged []model.MergedSegment) *int {
	labels := lo.Uniq(lo.FilterMap(merged, func(ms model.MergedSegment, _ int) (string, bool) {
		return ms.Speaker, ms.HasSpeaker()
	}))
	if len(labels) == 0 {
		return nil
	}
	count := len(labels)
	return &count
}

// FormatTimestamp renders whole seconds as HH:MM:SS. Hours are not wrapped.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Render formats one "[HH:MM:SS] [speaker] text" line per segment
func Render(merged []model.MergedSegment) string {
	var b strings.Builder
	for _, seg := range merged {
		fmt.Fprintf(&b, "[%s] [%s] %s\n", FormatTimestamp(seg.Start), seg.Speaker, seg.Text)
	}
	return b.String()
}

// Build merges and renders a complete artifact
func Build(result *model.TranscriptionResult, timeline model.SpeakerTimeline) (*model.TranscriptArtifact, error) {
	var segments []model.AudioSegment
	language := ""
	if result != nil {
		segments = result.Segments
		language = result.Language
	}

	merged := Merge(segments, timeline.Intervals())
	encoded, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("JSON encoding failed: %w", err)
	}

	return &model.TranscriptArtifact{
		FullTranscript:   Render(merged),
		Segments:         merged,
		SegmentsJSON:     string(encoded),
		DetectedLanguage: language,
		SpeakerCount:     SpeakerCount(merged),
		Duration:         Duration(merged),
	}, nil
}

// Decode parses segments persisted by Build
func Decode(data string) ([]model.MergedSegment, error) {
	if data == "" {
		return nil, nil
	}
	var segments []model.MergedSegment
	if err := json.Unmarshal([]byte(data), &segments); err != nil {
		return nil, fmt.Errorf("failed to decode transcript segments: %w", err)
	}
	return segments, nil
}
