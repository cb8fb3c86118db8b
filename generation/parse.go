package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"lessonbot/types"
)

// stripMarkdownFences removes a ```json ... ``` (or plain ```) wrapper
// models habitually add despite being asked for bare JSON. Text without
// fences is returned unchanged.
func stripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}

	end := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			end = i
			break
		}
	}
	return strings.Join(lines[1:end], "\n")
}

// parseLesson defensively parses the raw model response into a lesson
// structure. Any parse failure is an error for the caller to count as a
// failed attempt, never a panic.
func parseLesson(raw string) (*types.GeneratedLesson, error) {
	text := stripMarkdownFences(raw)

	// Tolerate prose around the JSON object.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model response (length %d)", len(raw))
	}

	var lesson types.GeneratedLesson
	if err := json.Unmarshal([]byte(text[start:end+1]), &lesson); err != nil {
		return nil, fmt.Errorf("invalid lesson JSON: %w", err)
	}
	return &lesson, nil
}
