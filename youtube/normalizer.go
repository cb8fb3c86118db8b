// Package youtube parses the URL forms YouTube videos are shared under and
// re-derives the canonical watch URL used as the storage key for a lesson.
package youtube

import (
	"errors"
	"regexp"
	"strings"

	"lessonbot/types"
)

// ErrInvalidURL is returned when no known URL form matches the input.
var ErrInvalidURL = errors.New("not a recognizable YouTube video URL")

// idPattern matches the canonical 11-character video id. The trailing
// group insists the token ends there, so a 12+-character token is not
// silently truncated to a plausible id.
const idPattern = `([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`

// matchers are tried in priority order; the first match wins. A URL that
// could satisfy several forms takes the earliest listed one.
var matchers = []*regexp.Regexp{
	// standard watch URL: https://www.youtube.com/watch?v=ID
	regexp.MustCompile(`^(?:https?://)?www\.youtube\.com/watch\?(?:[^#]*&)?v=` + idPattern),
	// short link: https://youtu.be/ID
	regexp.MustCompile(`^(?:https?://)?youtu\.be/` + idPattern),
	// mobile subdomain: https://m.youtube.com/watch?v=ID
	regexp.MustCompile(`^(?:https?://)?m\.youtube\.com/watch\?(?:[^#]*&)?v=` + idPattern),
	// bare domain: https://youtube.com/watch?v=ID
	regexp.MustCompile(`^(?:https?://)?youtube\.com/watch\?(?:[^#]*&)?v=` + idPattern),
	// embed form: https://www.youtube.com/embed/ID
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/` + idPattern),
}

// Parse extracts a VideoReference from a raw URL string. The returned
// reference has an empty VideoID when no form matches; callers must treat
// that as invalid input and stop.
func Parse(rawURL string) types.VideoReference {
	trimmed := strings.TrimSpace(rawURL)
	ref := types.VideoReference{RawURL: rawURL}

	for _, re := range matchers {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			ref.VideoID = m[1]
			ref.NormalizedURL = WatchURL(ref.VideoID)
			return ref
		}
	}
	return ref
}

// Normalize re-derives the canonical watch URL for any accepted URL form,
// guaranteeing one storage key per video however the link was pasted.
func Normalize(rawURL string) (string, error) {
	ref := Parse(rawURL)
	if !ref.Valid() {
		return "", ErrInvalidURL
	}
	return ref.NormalizedURL, nil
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
