package speech

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// Result is a synthesized narration track
type Result struct {
	AudioPath string  `json:"audio_path"`
	Duration  float64 `json:"duration"`
}

// Synthesizer turns text into an audio file
type Synthesizer interface {
	Synthesize(ctx context.Context, text, outPath string) (Result, error)
}

// DurationProber measures the length of a media file in seconds
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// PollyAPI is the part of the Polly client the synthesizer uses
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, in *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyConfig selects the AWS account, region and voice
type PollyConfig struct {
	Region  string
	Profile string
	VoiceID string
	// MaxChars truncates the input; Polly rejects requests over 3000 characters
	MaxChars int
}

// PollySynthesizer produces mp3 narration with AWS Polly
type PollySynthesizer struct {
	client   PollyAPI
	prober   DurationProber
	voice    pollytypes.VoiceId
	maxChars int
}

// NewPollySynthesizer creates a synthesizer using the default AWS credential chain
func NewPollySynthesizer(ctx context.Context, cfg PollyConfig, prober DurationProber) (*PollySynthesizer, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return NewPollySynthesizerWithClient(polly.NewFromConfig(awsCfg), cfg, prober), nil
}

// NewPollySynthesizerWithClient builds a synthesizer around an existing client
func NewPollySynthesizerWithClient(client PollyAPI, cfg PollyConfig, prober DurationProber) *PollySynthesizer {
	voice := cfg.VoiceID
	if voice == "" {
		voice = string(pollytypes.VoiceIdMatthew)
	}
	return &PollySynthesizer{
		client:   client,
		prober:   prober,
		voice:    pollytypes.VoiceId(voice),
		maxChars: cfg.MaxChars,
	}
}

// Synthesize writes the narration for text to outPath and measures its length
func (p *PollySynthesizer) Synthesize(ctx context.Context, text, outPath string) (Result, error) {
	log.Printf("🗣️  Generating TTS (%s)", p.voice)

	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         aws.String(Truncate(text, p.maxChars)),
		OutputFormat: pollytypes.OutputFormatMp3,
		VoiceId:      p.voice,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer out.AudioStream.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create audio directory: %w", err)
	}
	file, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := io.Copy(file, out.AudioStream); err != nil {
		file.Close()
		return Result{}, fmt.Errorf("failed to write audio: %w", err)
	}
	if err := file.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to write audio: %w", err)
	}

	duration, err := p.prober.ProbeDuration(ctx, outPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to measure audio: %w", err)
	}

	return Result{AudioPath: outPath, Duration: duration}, nil
}

// Truncate cuts text to at most max characters. max <= 0 leaves text unchanged.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
