package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"storyreel/composition"
	"storyreel/config"
)

// verticalCrop selects the largest centered 9:16 region of the input.
// ffmpeg-go escapes the commas when it builds the filter graph.
const verticalCrop = "min(iw,ih*9/16):min(ih,iw*16/9)"

// FallbackBaseName is used when a title sanitizes to nothing
const FallbackBaseName = "video"

// RendererConfig controls the output frame
type RendererConfig struct {
	// Width and Height crop and scale the background to a fixed frame.
	// Zero keeps the background's own size.
	Width  int
	Height int
	// FontsDir is searched for fonts named in the subtitle script
	FontsDir string
}

// RenderResult lists the files a render produced
type RenderResult struct {
	VideoPath string `json:"video_path"`
	PlanPath  string `json:"plan_path"`
}

// Renderer turns composition plans into video files with ffmpeg
type Renderer struct {
	cfg   RendererConfig
	probe func(ctx context.Context, path string) (MediaInfo, error)
	run   func(ctx context.Context, args []string) error
}

func NewRenderer(cfg RendererConfig) *Renderer {
	return &Renderer{cfg: cfg, probe: Probe, run: runFFmpeg}
}

// Render writes <outputDir>/<BaseName>.mp4 and the plan next to it as <BaseName>.plan.json
func (r *Renderer) Render(ctx context.Context, plan *composition.CompositionPlan, outputDir string) (RenderResult, error) {
	bg := plan.Background()
	if bg == nil {
		return RenderResult{}, fmt.Errorf("plan has no background layer")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return RenderResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := plan.BaseName
	if base == "" {
		base = FallbackBaseName
	}
	result := RenderResult{
		VideoPath: filepath.Join(outputDir, base+config.OutputExt),
		PlanPath:  filepath.Join(outputDir, base+".plan.json"),
	}

	width, height := r.cfg.Width, r.cfg.Height
	if width <= 0 || height <= 0 {
		info, err := r.probe(ctx, bg.VideoPath)
		if err != nil {
			return RenderResult{}, err
		}
		width, height = info.Width, info.Height
	}

	assFile, err := os.CreateTemp("", "storyreel-*.ass")
	if err != nil {
		return RenderResult{}, fmt.Errorf("failed to create subtitle script: %w", err)
	}
	assPath := assFile.Name()
	defer os.Remove(assPath)

	if _, err := assFile.WriteString(BuildASS(plan, width, height)); err != nil {
		assFile.Close()
		return RenderResult{}, fmt.Errorf("failed to write subtitle script: %w", err)
	}
	if err := assFile.Close(); err != nil {
		return RenderResult{}, fmt.Errorf("failed to write subtitle script: %w", err)
	}

	args := r.buildArgs(plan, bg, assPath, result.VideoPath)

	log.Printf("🎞️  Rendering %s (%.1fs from %.1fs)", filepath.Base(result.VideoPath), plan.Window.Duration(), plan.Window.Start)
	if err := r.run(ctx, args); err != nil {
		return RenderResult{}, fmt.Errorf("ffmpeg failed: %w", err)
	}

	if err := writePlan(plan, result.PlanPath); err != nil {
		return RenderResult{}, err
	}

	return result, nil
}

// buildArgs assembles the filter graph: windowed background, thumbnail images,
// then the subtitle script with the title card and captions
func (r *Renderer) buildArgs(plan *composition.CompositionPlan, bg *composition.BackgroundLayer, assPath, outputPath string) []string {
	video := ffmpeg.Input(bg.VideoPath, ffmpeg.KwArgs{
		"ss": formatSeconds(plan.Window.Start),
		"t":  formatSeconds(plan.Window.Duration()),
	})
	audio := ffmpeg.Input(bg.AudioPath)

	if r.cfg.Width > 0 && r.cfg.Height > 0 {
		// Center crop to the largest 9:16 area the source holds, wide or narrow
		video = video.Filter("crop", ffmpeg.Args{verticalCrop}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", r.cfg.Width, r.cfg.Height)})
	}

	for _, o := range plan.Overlays(composition.OverlayThumbnail) {
		image := ffmpeg.Input(o.ImagePath, ffmpeg.KwArgs{"loop": 1, "t": formatSeconds(o.Duration)}).
			Filter("format", ffmpeg.Args{"rgba"})
		if o.FadeOut > 0 {
			image = image.Filter("fade", ffmpeg.Args{}, ffmpeg.KwArgs{
				"t":     "out",
				"st":    formatSeconds(o.Duration - o.FadeOut),
				"d":     formatSeconds(o.FadeOut),
				"alpha": 1,
			})
		}
		if o.StartOffset > 0 {
			image = image.Filter("setpts", ffmpeg.Args{fmt.Sprintf("PTS+%s/TB", formatSeconds(o.StartOffset))})
		}

		x, y := overlayExpr(o.Position)
		video = ffmpeg.Filter([]*ffmpeg.Stream{video, image}, "overlay", ffmpeg.Args{}, ffmpeg.KwArgs{
			"x":          x,
			"y":          y,
			"eof_action": "pass",
			"enable":     fmt.Sprintf("between(t,%s,%s)", formatSeconds(o.StartOffset), formatSeconds(o.End())),
		})
	}

	assKw := ffmpeg.KwArgs{}
	if r.cfg.FontsDir != "" {
		assKw["fontsdir"] = filepath.ToSlash(r.cfg.FontsDir)
	}
	video = video.Filter("ass", ffmpeg.Args{filepath.ToSlash(assPath)}, assKw)

	return ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, ffmpeg.KwArgs{
		"c:v":    config.VideoCodec,
		"c:a":    config.AudioCodec,
		"b:a":    config.AudioBitrate,
		"preset": config.VideoPreset,
	}).OverWriteOutput().GetArgs()
}

// overlayExpr converts a position into ffmpeg overlay x/y expressions
func overlayExpr(p composition.Position) (string, string) {
	axis := func(c composition.Coord, frame, item string) string {
		switch {
		case c.Center:
			return fmt.Sprintf("(%s-%s)/2", frame, item)
		case p.Relative:
			return fmt.Sprintf("%s*%s", frame, trimFloat(c.Value))
		default:
			return trimFloat(c.Value)
		}
	}
	return axis(p.X, "W", "w"), axis(p.Y, "H", "h")
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func writePlan(plan *composition.CompositionPlan, path string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

func runFFmpeg(ctx context.Context, args []string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, lastLines(stderr.String(), 5))
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
