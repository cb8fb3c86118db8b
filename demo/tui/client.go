package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProgressEntry mirrors one progress event from the jobs API.
type ProgressEntry struct {
	Step      string    `json:"step"`
	Message   string    `json:"message"`
	Percent   int       `json:"progress"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LessonSummary mirrors the lesson part of a finished job.
type LessonSummary struct {
	ID           string `json:"id"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	SectionCount int    `json:"section_count"`
	Degraded     bool   `json:"degraded"`
}

// JobResult mirrors the workflow result attached to a finished job.
type JobResult struct {
	Success  bool           `json:"success"`
	Lesson   *LessonSummary `json:"lesson,omitempty"`
	Error    string         `json:"error,omitempty"`
	Degraded bool           `json:"degraded,omitempty"`
}

// JobStatusResponse is the JSON response from GET /api/lessons/jobs/:id
type JobStatusResponse struct {
	ID       string          `json:"id"`
	VideoURL string          `json:"video_url"`
	Status   string          `json:"status"`
	Progress []ProgressEntry `json:"progress"`
	Result   *JobResult      `json:"result,omitempty"`
}

// LessonClient is a thin HTTP client for the lesson API
type LessonClient struct {
	baseURL string
	client  *http.Client
}

// NewLessonClient creates a new lesson API client
func NewLessonClient(baseURL string) *LessonClient {
	return &LessonClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// CreateLesson submits a video URL and returns the creation job id
func (c *LessonClient) CreateLesson(videoURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": videoURL, "user_id": "demo"})
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.baseURL+"/api/lessons", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create lesson: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.JobID, nil
}

// GetJob fetches the current state of a creation job
func (c *LessonClient) GetJob(jobID string) (*JobStatusResponse, error) {
	resp, err := c.client.Get(c.baseURL + "/api/lessons/jobs/" + jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var job JobStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &job, nil
}
