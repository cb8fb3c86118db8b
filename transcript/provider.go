// Package transcript extracts and cleans video transcripts through an
// external extraction API, with bounded retries and job polling.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResponseKind tags the two shapes an extraction submit can come back in.
type ResponseKind int

const (
	// KindImmediate means the transcript text arrived inline.
	KindImmediate ResponseKind = iota
	// KindPending means the API queued a job to poll for the result.
	KindPending
)

// SubmitResponse is the tagged result of submitting an extraction request:
// either Text (KindImmediate) or JobID (KindPending) is populated, never
// both.
type SubmitResponse struct {
	Kind  ResponseKind
	Text  string
	JobID string
}

// JobState is the lifecycle of an asynchronous extraction job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobActive    JobState = "active"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// JobStatus is one poll observation of an asynchronous job.
type JobStatus struct {
	State JobState
	Text  string
	Error string
}

// SubmitOptions are passed through to the extraction API.
type SubmitOptions struct {
	Language  string
	PlainText bool
	Mode      string
}

// Provider is the boundary to the external transcript-extraction
// capability.
type Provider interface {
	Submit(ctx context.Context, videoURL string, opts SubmitOptions) (SubmitResponse, error)
	Status(ctx context.Context, jobID string) (JobStatus, error)
}

// API is the HTTP implementation of Provider.
type API struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPI creates a transcript API client.
func NewAPI(baseURL, apiKey string) *API {
	return &API{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type submitRequest struct {
	URL       string `json:"url"`
	Language  string `json:"lang,omitempty"`
	PlainText bool   `json:"text"`
	Mode      string `json:"mode,omitempty"`
}

type transcriptResponse struct {
	Content string `json:"content,omitempty"`
	JobID   string `json:"jobId,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Submit asks the API for a transcript. Small videos come back inline;
// larger ones return a job id to poll.
func (a *API) Submit(ctx context.Context, videoURL string, opts SubmitOptions) (SubmitResponse, error) {
	payload := submitRequest{
		URL:       videoURL,
		Language:  opts.Language,
		PlainText: opts.PlainText,
		Mode:      opts.Mode,
	}

	var resp transcriptResponse
	if err := a.doJSONRequest(ctx, http.MethodPost, "/v1/transcripts", payload, &resp); err != nil {
		return SubmitResponse{}, err
	}

	switch {
	case resp.Content != "":
		return SubmitResponse{Kind: KindImmediate, Text: resp.Content}, nil
	case resp.JobID != "":
		return SubmitResponse{Kind: KindPending, JobID: resp.JobID}, nil
	default:
		return SubmitResponse{}, errors.New("transcript API returned neither content nor a job id")
	}
}

// Status polls an asynchronous extraction job.
func (a *API) Status(ctx context.Context, jobID string) (JobStatus, error) {
	var resp transcriptResponse
	if err := a.doJSONRequest(ctx, http.MethodGet, "/v1/transcripts/"+jobID, nil, &resp); err != nil {
		return JobStatus{}, err
	}

	status := JobStatus{State: JobState(resp.Status), Error: resp.Error}
	if status.State == JobCompleted {
		status.Text = resp.Content
	}
	return status, nil
}

// doJSONRequest performs a JSON request with the given method, path,
// payload, and result. If result is nil, the response body is not decoded.
func (a *API) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	url := fmt.Sprintf("%s%s", a.baseURL, path)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("transcript API returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
