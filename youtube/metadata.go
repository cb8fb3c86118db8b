package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// DataAPI looks up video metadata through the YouTube Data API v3 with
// API-key auth. Lookup failures are never terminal for the lesson
// workflow; callers fall back to a default title.
type DataAPI struct {
	svc *youtubeapi.Service
}

// NewDataAPI builds a Data API client from an API key.
func NewDataAPI(ctx context.Context, apiKey string) (*DataAPI, error) {
	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &DataAPI{svc: svc}, nil
}

// VideoTitle fetches the snippet title for a video id.
func (d *DataAPI) VideoTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := d.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no metadata returned for video %s", videoID)
	}
	return resp.Items[0].Snippet.Title, nil
}
