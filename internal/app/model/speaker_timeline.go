package model

// SpeakerTimeline is the result of diarization. It is either available with
// a list of intervals, or unavailable with the reason diarization failed.
type SpeakerTimeline struct {
	intervals []SpeakerInterval
	reason    error
}

// AvailableTimeline wraps intervals returned by the diarization service
func AvailableTimeline(intervals []SpeakerInterval) SpeakerTimeline {
	if intervals == nil {
		intervals = []SpeakerInterval{}
	}
	return SpeakerTimeline{intervals: intervals}
}

// UnavailableTimeline records why no speaker data could be obtained
func UnavailableTimeline(reason error) SpeakerTimeline {
	return SpeakerTimeline{reason: reason}
}

// Available reports whether diarization succeeded
func (st SpeakerTimeline) Available() bool {
	return st.reason == nil
}

// Intervals returns the speaker intervals, empty when unavailable
func (st SpeakerTimeline) Intervals() []SpeakerInterval {
	if st.reason != nil {
		return nil
	}
	return st.intervals
}

// Reason returns why the timeline is unavailable, nil when available
func (st SpeakerTimeline) Reason() error {
	return st.reason
}

// HasSpeakers reports whether at least one interval is present
func (st SpeakerTimeline) HasSpeakers() bool {
	return len(st.Intervals()) > 0
}
