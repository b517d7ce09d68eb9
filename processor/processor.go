package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"storyreel/composition"
	"storyreel/config"
	"storyreel/speech"
	"storyreel/transcription"
	"storyreel/types"
	"storyreel/video"
)

// PostSource supplies the posts of one run
type PostSource interface {
	GetPosts(ctx context.Context) []types.Post
}

// Planner builds a composition plan; *composition.Planner implements it
type Planner interface {
	Plan(req composition.PlanRequest) (*composition.CompositionPlan, error)
}

// Renderer turns a plan into files; *video.Renderer implements it
type Renderer interface {
	Render(ctx context.Context, plan *composition.CompositionPlan, outputDir string) (video.RenderResult, error)
}

// Uploader publishes a rendered video and returns its remote ID
type Uploader interface {
	Upload(ctx context.Context, videoPath string, metadata video.Metadata) (string, error)
}

// ObjectStore keeps a copy of rendered files
type ObjectStore interface {
	PutFile(ctx context.Context, localPath, contentType string) (string, error)
}

// History tracks posts that were already produced
type History interface {
	Seen(ctx context.Context, post types.Post) (bool, error)
	Mark(ctx context.Context, post types.Post) error
}

// Dependencies are the collaborators of a VideoProcessor. Uploader, Store and
// History are optional.
type Dependencies struct {
	Synthesizer speech.Synthesizer
	Transcriber transcription.Transcriber
	Prober      speech.DurationProber
	Planner     Planner
	Renderer    Renderer
	Uploader    Uploader
	Store       ObjectStore
	History     History
}

// Options locate the inputs and outputs of a run
type Options struct {
	BackgroundVideo string
	TemplateDir     string
	ResultsPath     string
	// WorkDir holds per-job scratch directories; defaults to the OS temp dir
	WorkDir string
	// Upload publishes rendered videos when an Uploader is configured
	Upload bool
	// Concurrency bounds simultaneous posts; defaults to config.MaxConcurrentVideos
	Concurrency int
}

// VideoProcessor handles the text to video pipeline for batches of posts
type VideoProcessor struct {
	deps Dependencies
	opts Options

	mu    sync.Mutex
	names map[string]struct{}
}

func NewVideoProcessor(deps Dependencies, opts Options) (*VideoProcessor, error) {
	if deps.Synthesizer == nil || deps.Transcriber == nil || deps.Prober == nil || deps.Planner == nil || deps.Renderer == nil {
		return nil, fmt.Errorf("synthesizer, transcriber, prober, planner and renderer are required")
	}
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = config.MaxConcurrentVideos
	}
	return &VideoProcessor{deps: deps, opts: opts, names: make(map[string]struct{})}, nil
}

// Run fetches posts from source and processes them as one batch
func (p *VideoProcessor) Run(ctx context.Context, source PostSource, progress ProgressFunc) []types.VideoResult {
	posts := source.GetPosts(ctx)
	if len(posts) == 0 {
		log.Println("No posts to process")
		return nil
	}
	log.Printf("Found %d posts to process", len(posts))
	return p.ProcessBatch(ctx, posts, progress)
}

// ProcessBatch processes posts with bounded concurrency. A failing post is
// recorded with its reason and does not stop the others. Results are in
// input order.
func (p *VideoProcessor) ProcessBatch(ctx context.Context, posts []types.Post, progress ProgressFunc) []types.VideoResult {
	results := make([]types.VideoResult, len(posts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.opts.Concurrency)

	for i, post := range posts {
		wg.Add(1)

		go func(idx int, post types.Post) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			tracker := progress.Tracker(idx, len(posts), post)
			results[idx] = p.ProcessPost(ctx, post, p.opts.Upload, tracker)
		}(i, post)
	}

	wg.Wait()

	s := types.Summarize(results)
	log.Printf("🏁 Batch done: %d rendered, %d skipped, %d failed", s.Rendered, s.Skipped, s.Failed)
	return results
}

// ProcessPost runs one post through the whole pipeline
func (p *VideoProcessor) ProcessPost(ctx context.Context, post types.Post, upload bool, track Tracker) types.VideoResult {
	start := time.Now()
	result := types.VideoResult{Post: post}

	track.stage(StageStarted)
	log.Printf("🎬 Processing: %s", post.Title)

	err := p.process(ctx, post, upload, track, &result)
	result.Elapsed = time.Since(start)

	var invalid *composition.InvalidDurationError
	switch {
	case err == nil && result.Status == "":
		result.Status = types.StatusRendered
		log.Printf("✅ Rendered %s in %s", result.OutputPath, result.Elapsed.Round(time.Second))
	case errors.As(err, &invalid):
		result.Status = types.StatusSkipped
		result.Reason = err.Error()
		log.Printf("⏭️  Skipping %q: %v", post.Title, err)
	case err != nil:
		result.Status = types.StatusFailed
		result.Reason = err.Error()
		log.Printf("❌ Failed to process %q: %v", post.Title, err)
	}

	track.done(result)
	return result
}

func (p *VideoProcessor) process(ctx context.Context, post types.Post, upload bool, track Tracker, result *types.VideoResult) error {
	if p.deps.History != nil {
		seen, err := p.deps.History.Seen(ctx, post)
		if err != nil {
			log.Printf("⚠️  History check failed, continuing: %v", err)
		} else if seen {
			result.Status = types.StatusSkipped
			result.Reason = "already produced"
			log.Printf("⏭️  Skipping %q: already produced", post.Title)
			return nil
		}
	}

	jobDir := filepath.Join(p.opts.WorkDir, "storyreel-"+uuid.NewString())
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(jobDir)

	track.stage(StageSpeech)
	callCtx, cancel := context.WithTimeout(ctx, config.CollaboratorTimeout)
	narration, err := p.deps.Synthesizer.Synthesize(callCtx, post.NarrationText(), filepath.Join(jobDir, "narration.mp3"))
	cancel()
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	track.stage(StageTranscribe)
	callCtx, cancel = context.WithTimeout(ctx, config.CollaboratorTimeout)
	words, err := p.deps.Transcriber.Transcribe(callCtx, narration.AudioPath)
	cancel()
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	if nonPositive, outOfOrder := composition.TimingAnomalies(words); nonPositive > 0 || outOfOrder > 0 {
		log.Printf("⚠️  Timing anomalies in %q: %d non-positive durations, %d out of order", post.Title, nonPositive, outOfOrder)
	}

	track.stage(StagePlan)
	videoDuration, err := p.deps.Prober.ProbeDuration(ctx, p.opts.BackgroundVideo)
	if err != nil {
		return fmt.Errorf("failed to measure background video: %w", err)
	}

	plan, err := p.deps.Planner.Plan(composition.PlanRequest{
		Title:         post.Title,
		Words:         words,
		AudioDuration: narration.Duration,
		VideoDuration: videoDuration,
		Assets: composition.Assets{
			BackgroundVideo: p.opts.BackgroundVideo,
			Audio:           narration.AudioPath,
			TemplateDir:     p.opts.TemplateDir,
		},
	})
	if err != nil {
		return err
	}
	if name := p.reserveName(plan.BaseName); name != plan.BaseName {
		log.Printf("📝 Output name %q is taken, using %q", plan.BaseName, name)
		plan.BaseName = name
	}

	track.stage(StageRender)
	renderCtx, cancel := context.WithTimeout(ctx, config.RenderTimeout)
	rendered, err := p.deps.Renderer.Render(renderCtx, plan, p.opts.ResultsPath)
	cancel()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	result.OutputPath = rendered.VideoPath
	result.PlanPath = rendered.PlanPath

	if p.deps.Store != nil {
		track.stage(StageStore)
		for _, f := range []struct{ path, contentType string }{
			{rendered.VideoPath, "video/mp4"},
			{rendered.PlanPath, "application/json"},
		} {
			if _, err := p.deps.Store.PutFile(ctx, f.path, f.contentType); err != nil {
				return fmt.Errorf("failed to store results: %w", err)
			}
		}
	}

	if upload && p.deps.Uploader != nil {
		track.stage(StageUpload)
		id, err := p.deps.Uploader.Upload(ctx, rendered.VideoPath, video.MetadataFor(post, plan.Title))
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		result.VideoID = id
	}

	if p.deps.History != nil {
		if err := p.deps.History.Mark(ctx, post); err != nil {
			log.Printf("⚠️  Failed to record %q in history: %v", post.Title, err)
		}
	}
	return nil
}

// reserveName claims an output base name for the lifetime of the processor.
// A name claimed earlier, or already rendered into the results directory, gets
// a numeric suffix.
func (p *VideoProcessor) reserveName(base string) string {
	if base == "" {
		base = video.FallbackBaseName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	name := base
	for n := 2; p.nameTaken(name); n++ {
		name = fmt.Sprintf("%s (%d)", base, n)
	}
	p.names[name] = struct{}{}
	return name
}

func (p *VideoProcessor) nameTaken(name string) bool {
	if _, ok := p.names[name]; ok {
		return true
	}
	_, err := os.Stat(filepath.Join(p.opts.ResultsPath, name+config.OutputExt))
	return err == nil
}
