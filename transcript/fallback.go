package transcript

import (
	"fmt"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const fallbackTimeout = 30 * time.Second

// FallbackFunc is an alternate transcript source tried once when the
// primary extraction API errors out.
type FallbackFunc func(videoURL string) (string, error)

// PageTextFallback pulls the readable text off the video's watch page
// (essentially the description) as a degraded transcript source. The
// result still has to pass Validate, so thin pages are rejected like any
// other unusable transcript.
func PageTextFallback(videoURL string) (string, error) {
	article, err := readability.FromURL(videoURL, fallbackTimeout)
	if err != nil {
		return "", fmt.Errorf("fallback page extraction failed: %w", err)
	}
	if article.TextContent == "" {
		return "", fmt.Errorf("fallback page extraction returned no text")
	}
	return article.TextContent, nil
}
