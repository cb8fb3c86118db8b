// Package generation turns a cleaned transcript into a structured,
// quiz-based lesson through a generative text model, with strict output
// validation and a deterministic fallback when the model cannot produce
// valid structure.
package generation

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// TextGenerator abstracts the generative-text capability so tests can
// substitute a fake without touching module state.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// CohereGenerator implements TextGenerator using the Cohere Chat API.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator builds a Cohere-backed generator. The HTTP client
// forces HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere
// edge.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}
}

// GenerateText sends one prompt and returns the raw model text.
func (g *CohereGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Message:     prompt,
		Model:       cohere.String(g.model),
		Temperature: cohere.Float64(0.3),
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned an empty response")
	}
	return resp.Text, nil
}
