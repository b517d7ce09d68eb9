package video

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaInfo is the subset of ffprobe output the pipeline needs
type MediaInfo struct {
	Duration float64
	Width    int
	Height   int
}

// Prober reads media metadata with ffprobe
type Prober struct{}

// ProbeDuration returns the length of the media file at path in seconds
func (Prober) ProbeDuration(ctx context.Context, path string) (float64, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

// Probe runs ffprobe on path
func Probe(ctx context.Context, path string) (MediaInfo, error) {
	if err := ctx.Err(); err != nil {
		return MediaInfo{}, err
	}
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(data string) (MediaInfo, error) {
	var parsed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
			Duration  string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal([]byte(data), &parsed); err != nil {
		return MediaInfo{}, fmt.Errorf("failed to parse probe output: %w", err)
	}

	var info MediaInfo
	durationText := parsed.Format.Duration
	for _, s := range parsed.Streams {
		if s.CodecType == "video" && info.Width == 0 {
			info.Width, info.Height = s.Width, s.Height
		}
		if durationText == "" && s.Duration != "" {
			durationText = s.Duration
		}
	}

	if durationText == "" {
		return MediaInfo{}, fmt.Errorf("probe output has no duration")
	}
	d, err := strconv.ParseFloat(durationText, 64)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("invalid duration %q: %w", durationText, err)
	}
	info.Duration = d
	return info, nil
}
