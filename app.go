package main

import (
	"context"
	"fmt"
	"log"

	"storyreel/common"
	"storyreel/composition"
	"storyreel/config"
	"storyreel/deduplication"
	"storyreel/processor"
	"storyreel/rssfeeds"
	"storyreel/speech"
	"storyreel/transcription"
	"storyreel/video"
)

// app holds the wired pipeline shared by every run mode
type app struct {
	settings  config.Settings
	planner   *composition.Planner
	processor *processor.VideoProcessor
	source    *rssfeeds.Source
	closers   []func() error
}

func newApp(ctx context.Context, s config.Settings, seed int64) (*app, error) {
	prober := video.Prober{}

	measurer, err := video.NewFontMeasurer(composition.TitleFontName, s.TitleFontFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}

	planner := composition.NewPlanner(composition.Options{
		ForceQuestionMark:        s.ForceQuestionMark,
		UseCustomThumbnailImages: s.UseCustomThumbnailImages,
		TitleFont:                composition.FontRef{Name: composition.TitleFontName, Size: config.TitleFontSize},
		MaxTitleWidth:            config.MaxTitleWidth,
	}, composition.NewRandomSource(seed), measurer)

	synth, err := speech.NewPollySynthesizer(ctx, speech.PollyConfig{
		Region:   s.AWSRegion,
		Profile:  s.AWSProfile,
		VoiceID:  s.PollyVoiceID,
		MaxChars: config.MaxSpeechChars,
	}, prober)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech synthesis: %w", err)
	}

	var transcriber transcription.Transcriber
	switch {
	case s.TimingsFile != "":
		log.Printf("📝 Using word timings from %s", s.TimingsFile)
		transcriber = transcription.FileTranscriber{Path: s.TimingsFile}
	case s.OpenAIAPIKey != "":
		transcriber = transcription.NewOpenAITranscriber(s.OpenAIAPIKey, s.OpenAIOrgID, s.TranscriptionModel)
	default:
		return nil, fmt.Errorf("OPENAI_API_KEY or TIMINGS_FILE is required for transcription")
	}

	renderCfg := video.RendererConfig{FontsDir: s.AssetsPath}
	if s.VerticalOutput {
		renderCfg.Width, renderCfg.Height = config.VideoWidth, config.VideoHeight
	}

	a := &app{settings: s, planner: planner}
	deps := processor.Dependencies{
		Synthesizer: synth,
		Transcriber: transcriber,
		Prober:      prober,
		Planner:     planner,
		Renderer:    video.NewRenderer(renderCfg),
	}

	if s.S3Bucket != "" {
		store, err := common.NewS3(ctx, common.S3Config{
			Bucket:       s.S3Bucket,
			Prefix:       s.S3Prefix,
			Region:       s.AWSRegion,
			Profile:      s.AWSProfile,
			UsePathStyle: s.S3UsePathStyle,
		})
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (uploads disabled)", err)
		} else {
			deps.Store = store
			log.Printf("☁️  Copying results to s3://%s/%s", s.S3Bucket, s.S3Prefix)
		}
	}

	if s.RedisAddr != "" {
		history, err := deduplication.NewHistory(ctx, deduplication.HistoryConfig{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: %v (history disabled)", err)
		} else {
			deps.History = history
			a.closers = append(a.closers, history.Close)
		}
	}

	if s.YouTubeCredentialsFile != "" {
		uploader, err := video.NewUploader(ctx, s.YouTubeCredentialsFile)
		if err != nil {
			log.Printf("YouTube uploader not initialized: %v", err)
			log.Println("Running in VIDEO-ONLY mode (no upload)")
		} else {
			deps.Uploader = uploader
			log.Println("YouTube client initialized")
		}
	}

	proc, err := processor.NewVideoProcessor(deps, processor.Options{
		BackgroundVideo: s.BackgroundVideo,
		TemplateDir:     s.TemplateDir(),
		ResultsPath:     s.ResultsPath,
		Upload:          deps.Uploader != nil,
	})
	if err != nil {
		return nil, err
	}
	a.processor = proc
	a.source = rssfeeds.NewSource(s, rssfeeds.NewFetcher(s.UserAgent))

	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Printf("close: %v", err)
		}
	}
}
