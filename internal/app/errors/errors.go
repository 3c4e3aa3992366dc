package errors

import (
	"errors"
	"fmt"
)

// Pipeline error classes. Fatal classes end a job in the failed state,
// ErrDiarizationUnavailable only degrades the result.
var (
	ErrConfigMissing          = New("required configuration missing")
	ErrFileNotFound           = New("file not found")
	ErrAudioTooLarge          = New("audio too large")
	ErrExtractionFailed       = New("audio extraction failed")
	ErrTranscriptionFailed    = New("transcription failed")
	ErrDiarizationUnavailable = New("diarization unavailable")
)

// Job level errors
var (
	ErrJobNotFound        = New("transcript not found")
	ErrJobInProgress      = New("transcription already in progress")
	ErrJobAlreadyFinished = New("transcription already finished")
	ErrTranscriptNotReady = New("transcript not ready")
	ErrForbidden          = New("permission denied")
	ErrInvalidUpload      = New("invalid upload")
	ErrUploadTooLarge     = New("upload too large")
)

// Storage errors
var (
	ErrQueryFailed  = New("query failed")
	ErrInsertFailed = New("insert failed")
	ErrUpdateFailed = New("update failed")
)

// Error represents a standardized error. An Error created through Classify
// carries a class sentinel so errors.Is matches the class while Error()
// reports the specific message.
type Error struct {
	message string
	cause   error
	class   *Error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Classify creates an error with a user facing message that belongs to class.
func Classify(class *Error, message string) *Error {
	return &Error{message: message, class: class}
}

// Classifyf is Classify with formatting.
func Classifyf(class *Error, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), class: class}
}

// WithCause attaches an underlying error without changing the message class.
func (e *Error) WithCause(err error) *Error {
	return &Error{message: e.message, cause: err, class: e.class}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.class != nil && (e.class == t || e.class.message == t.message) {
		return true
	}
	return e.message == t.message
}

// UserMessage returns the most specific message suitable for persisting on a
// job record.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.class != nil {
		return e.message
	}
	return err.Error()
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Classifyf(ErrConfigMissing, "%s not configured", field)
}
