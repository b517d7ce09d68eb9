// Package transcription turns narration audio into word-level timings.
package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"storyreel/composition"
)

// Transcriber produces one timing per spoken word, in spoken order
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]composition.WordTiming, error)
}

// FileTranscriber reads timings that were produced ahead of time.
// The file holds a JSON array of {"text","start","end"} objects.
type FileTranscriber struct {
	Path string
}

func (f FileTranscriber) Transcribe(_ context.Context, _ string) ([]composition.WordTiming, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timings: %w", err)
	}
	var words []composition.WordTiming
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse timings: %w", err)
	}
	return words, nil
}
