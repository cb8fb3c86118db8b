package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lessonbot/logger"
)

// TranscriptCache keeps extracted transcripts in redis keyed by video id,
// so repeated lesson attempts for the same video skip the extraction
// service. Reads and writes are best-effort: a cache outage degrades to a
// fresh extraction, never to a failed request.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewTranscriptCache connects to redis and verifies the connection with a
// ping before first use.
func NewTranscriptCache(ctx context.Context, addr, password string, db int, ttl time.Duration, log *logger.Logger) (*TranscriptCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &TranscriptCache{
		client: client,
		ttl:    ttl,
		log:    log.With("component", "transcript_cache"),
	}, nil
}

func transcriptKey(videoID string) string {
	return "transcripts:" + videoID
}

// Get returns the cached transcript for a video, or "" on miss or error.
func (c *TranscriptCache) Get(ctx context.Context, videoID string) string {
	text, err := c.client.Get(ctx, transcriptKey(videoID)).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		c.log.Warn("transcript cache read failed", "video_id", videoID, "error", err)
		return ""
	}
	return text
}

// Put stores a transcript with the configured TTL. Errors are logged and
// swallowed.
func (c *TranscriptCache) Put(ctx context.Context, videoID, text string) {
	if text == "" {
		return
	}
	if err := c.client.Set(ctx, transcriptKey(videoID), text, c.ttl).Err(); err != nil {
		c.log.Warn("transcript cache write failed", "video_id", videoID, "error", err)
	}
}

// Close releases the underlying redis connection.
func (c *TranscriptCache) Close() error {
	return c.client.Close()
}
