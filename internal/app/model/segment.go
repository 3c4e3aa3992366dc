package model

// UnknownSpeaker labels a segment no speaker interval covers
const UnknownSpeaker = "Speaker"

// AudioSegment is one time-stamped unit of transcribed text
type AudioSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SpeakerInterval is one diarized speaker turn
type SpeakerInterval struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Covers reports whether t falls in [Start, End)
func (si SpeakerInterval) Covers(t float64) bool {
	return si.Start <= t && t < si.End
}

// MergedSegment is the persisted, display ready transcript unit
type MergedSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
}

// HasSpeaker reports whether a real speaker label was assigned
func (ms MergedSegment) HasSpeaker() bool {
	return ms.Speaker != "" && ms.Speaker != UnknownSpeaker
}

// TranscriptionResult is what the speech-to-text service returns
type TranscriptionResult struct {
	Segments []AudioSegment
	Language string
	Text     string
}

// TranscriptArtifact is the final output of a completed job
type TranscriptArtifact struct {
	FullTranscript   string
	Segments         []MergedSegment
	SegmentsJSON     string
	DetectedLanguage string
	SpeakerCount     *int
	Duration         float64
}
