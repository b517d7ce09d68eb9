package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Post is one piece of text to narrate: a title and its body
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	URL         string    `json:"url,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// NarrationText is what gets read aloud: the title followed by the body
func (p Post) NarrationText() string {
	return strings.TrimSpace(p.Title + " " + p.Body)
}

// VideoRequest asks for one video to be produced from a post. It is the
// payload of the Kafka topic and of POST /api/videos.
type VideoRequest struct {
	RequestID string `json:"request_id"`
	Post      Post   `json:"post"`
	// Upload overrides whether the finished video is published
	Upload *bool `json:"upload,omitempty"`
}

// Status of a processed post
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// VideoResult is the outcome of processing one post
type VideoResult struct {
	Post       Post          `json:"post"`
	Status     Status        `json:"status"`
	OutputPath string        `json:"output_path,omitempty"`
	PlanPath   string        `json:"plan_path,omitempty"`
	VideoID    string        `json:"video_id,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// BatchSummary counts results by status
type BatchSummary struct {
	Total    int `json:"total"`
	Rendered int `json:"rendered"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Summarize counts results by status
func Summarize(results []VideoResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusRendered:
			s.Rendered++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// GenerateID creates a short, stable ID from a URL or any other key
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
