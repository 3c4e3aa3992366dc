package media

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
)

var videoExtensions = []string{"mp4", "webm", "mov", "avi"}

// AllowedExtensions lists the upload extensions accepted by the service
var AllowedExtensions = []string{"mp3", "wav", "m4a", "mp4", "webm", "ogg", "aac", "mov"}

// AllowedMIMETypes lists the upload content types accepted by the service
var AllowedMIMETypes = []string{
	"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav",
	"audio/m4a", "audio/x-m4a", "audio/mp4",
	"video/mp4", "video/webm", "audio/webm", "audio/ogg",
	"video/quicktime", "audio/aac",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// FileType returns the lower case extension of name without the dot
func FileType(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// NeedsExtraction reports whether files of this type are video containers
// whose audio track must be extracted before transcription.
func NeedsExtraction(fileType string) bool {
	return lo.Contains(videoExtensions, strings.ToLower(fileType))
}

// IsAllowedExtension reports whether the extension may be uploaded
func IsAllowedExtension(fileType string) bool {
	return lo.Contains(AllowedExtensions, strings.ToLower(fileType))
}

// IsAllowedMIMEType reports whether the content type may be uploaded.
// Parameters such as "; codecs=opus" are ignored.
func IsAllowedMIMEType(contentType string) bool {
	base := strings.TrimSpace(strings.ToLower(strings.SplitN(contentType, ";", 2)[0]))
	return lo.Contains(AllowedMIMETypes, base)
}

// StoredName builds a collision resistant storage key of the form
// {YYYYmmddHHMMSS}_{8 hex}_{sanitized base}.{ext}
func StoredName(original string, now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return storedName(original, now, hex.EncodeToString(buf)), nil
}

func storedName(original string, now time.Time, random string) string {
	ext := FileType(original)
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	safe := unsafeNameChars.ReplaceAllString(base, "_")
	return fmt.Sprintf("%s_%s_%s.%s", now.Format("20060102150405"), random, safe, ext)
}
