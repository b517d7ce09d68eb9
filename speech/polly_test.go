package speech

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
)

type fakePolly struct {
	got *polly.SynthesizeSpeechInput
	err error
}

func (f *fakePolly) SynthesizeSpeech(_ context.Context, in *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &polly.SynthesizeSpeechOutput{AudioStream: io.NopCloser(strings.NewReader("ID3fake-mp3"))}, nil
}

type fixedProber float64

func (p fixedProber) ProbeDuration(context.Context, string) (float64, error) {
	return float64(p), nil
}

func TestPollySynthesize(t *testing.T) {
	api := &fakePolly{}
	s := NewPollySynthesizerWithClient(api, PollyConfig{MaxChars: 10}, fixedProber(12.75))

	out := filepath.Join(t.TempDir(), "audio", "output.mp3")
	res, err := s.Synthesize(context.Background(), "Hello there, listener", out)
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if res.AudioPath != out || res.Duration != 12.75 {
		t.Fatalf("result = %+v", res)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "ID3fake-mp3" {
		t.Fatalf("audio file = %q, %v", data, err)
	}

	if got := aws.ToString(api.got.Text); got != "Hello ther" {
		t.Fatalf("sent text = %q; want truncated", got)
	}
	if api.got.VoiceId != pollytypes.VoiceIdMatthew || api.got.OutputFormat != pollytypes.OutputFormatMp3 {
		t.Fatalf("request = %+v", api.got)
	}
}

func TestPollySynthesizeError(t *testing.T) {
	boom := errors.New("throttled")
	s := NewPollySynthesizerWithClient(&fakePolly{err: boom}, PollyConfig{VoiceID: "Joanna"}, fixedProber(1))
	_, err := s.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "a.mp3"))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v; want wrapped %v", err, boom)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"abc", 0, "abc"},
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc"},
		{"héllo", 2, "hé"},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.max); got != c.want {
			t.Fatalf("Truncate(%q, %d) = %q; want %q", c.in, c.max, got, c.want)
		}
	}
}
