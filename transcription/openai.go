package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"storyreel/composition"
)

const defaultEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// OpenAITranscriber implements Transcriber using the OpenAI audio API
// Endpoint: POST https://api.openai.com/v1/audio/transcriptions
// Request: multipart form with file, model, response_format=verbose_json, timestamp_granularities[]=word
// Response: {"text": "...", "words": [{"word": "Hi", "start": 0.0, "end": 0.3}, ...]}
type OpenAITranscriber struct {
	apiKey   string
	orgID    string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAITranscriber creates a transcriber; orgID is optional
func NewOpenAITranscriber(apiKey, orgID, model string) *OpenAITranscriber {
	if model == "" {
		model = "whisper-1"
	}
	return &OpenAITranscriber{apiKey: apiKey, orgID: orgID, model: model, client: http.DefaultClient}
}

// WithEndpoint points the transcriber at another server
func (o *OpenAITranscriber) WithEndpoint(endpoint string) *OpenAITranscriber {
	o.endpoint = endpoint
	return o
}

func (o *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) ([]composition.WordTiming, error) {
	endpoint := o.endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	body, contentType, err := o.buildForm(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", o.apiKey))
	if o.orgID != "" {
		req.Header.Set("OpenAI-Organization", o.orgID)
	}

	log.Printf("📝 Transcribing %s", filepath.Base(audioPath))
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call transcription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openai transcription error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return parseVerboseJSON(resp.Body)
}

func (o *OpenAITranscriber) buildForm(audioPath string) (io.Reader, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read audio: %w", err)
	}

	fields := [][2]string{
		{"model", o.model},
		{"response_format", "verbose_json"},
		{"timestamp_granularities[]", "word"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func parseVerboseJSON(r io.Reader) ([]composition.WordTiming, error) {
	var parsed struct {
		Words []struct {
			Word  string  `json:"word"`
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"words"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode transcription: %w", err)
	}

	words := make([]composition.WordTiming, 0, len(parsed.Words))
	for _, w := range parsed.Words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, composition.WordTiming{Text: text, Start: w.Start, End: w.End})
	}
	return words, nil
}
