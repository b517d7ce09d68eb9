package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"storyreel/api"
	"storyreel/config"
	"storyreel/kafka"
	"storyreel/processor"
	"storyreel/tui"
	"storyreel/types"
)

const (
	// DefaultAPIPort is the default port for the HTTP API server
	DefaultAPIPort = ":8080"
)

func main() {
	apiMode := flag.Bool("api", false, "Run the HTTP API server")
	kafkaMode := flag.Bool("kafka", false, "Consume video requests from Kafka")
	tuiMode := flag.Bool("tui", false, "Run one batch with a terminal progress view")
	cronSchedule := flag.String("cron", "", "Cron schedule for repeated batches, e.g. \"0 */6 * * *\"")
	apiPort := flag.String("port", DefaultAPIPort, "API server port (e.g., :8080)")
	seed := flag.Int64("seed", 0, "Seed for background clip selection (0 picks one from the clock)")
	flag.Parse()

	log.SetOutput(os.Stderr)

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	a, err := newApp(ctx, settings, *seed)
	if err != nil {
		log.Fatalf("❌ Failed to initialize: %v", err)
	}
	defer a.Close()

	switch {
	case *kafkaMode:
		err = runKafka(ctx, a)
	case *apiMode:
		err = runAPI(ctx, a, *apiPort)
	case *cronSchedule != "":
		err = runCron(ctx, a, *cronSchedule)
	case *tuiMode:
		err = runTUI(ctx, a)
	default:
		runOnce(ctx, a)
	}
	if err != nil {
		log.Printf("❌ %v", err)
		a.Close()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, a *app) {
	log.Println("🎬 storyreel - single run")
	results := a.processor.Run(ctx, a.source, nil)
	displayResults(results)
}

func runAPI(ctx context.Context, a *app, addr string) error {
	server := api.NewServer(ctx, a.planner, a.processor, a.source, a.settings.YouTubeCredentialsFile != "")
	srv := &http.Server{Addr: addr, Handler: server.NewRouter()}

	log.Printf("🚀 API Server listening on %s", addr)
	log.Println("📌 Endpoints:")
	log.Println("   GET  /api/health      - Health check")
	log.Println("   POST /api/plan        - Preview a composition plan")
	log.Println("   POST /api/videos      - Submit a post for rendering")
	log.Println("   GET  /api/videos/:id  - Status of a submitted post")
	log.Println("   POST /api/videos/run  - Start a batch from the configured source")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func runKafka(ctx context.Context, a *app) error {
	s := a.settings
	log.Println("📨 Running in KAFKA consumer mode")
	log.Printf("🔗 Kafka Brokers: %v", s.KafkaBrokers)
	log.Printf("📋 Topic: %s", s.KafkaTopic)
	log.Printf("👥 Consumer Group: %s", s.KafkaGroupID)

	defaultUpload := s.YouTubeCredentialsFile != ""
	handler := kafka.NewVideoRequestHandler(func(ctx context.Context, req *types.VideoRequest) error {
		upload := defaultUpload
		if req.Upload != nil {
			upload = *req.Upload
		}
		result := a.processor.ProcessPost(ctx, req.Post, upload, processor.Tracker{})
		if result.Status == types.StatusFailed {
			return fmt.Errorf("request %s failed: %s", req.RequestID, result.Reason)
		}
		return nil
	})

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: s.KafkaBrokers,
		Topic:   s.KafkaTopic,
		GroupID: s.KafkaGroupID,
		Handler: handler,
	})
	if err != nil {
		return err
	}
	if err := consumer.Start(ctx); err != nil {
		consumer.Close()
		return err
	}

	<-ctx.Done()
	log.Println("Received termination signal")
	return consumer.Close()
}

func runCron(ctx context.Context, a *app, schedule string) error {
	var running atomic.Bool
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if !running.CompareAndSwap(false, true) {
			log.Println("Cron skipped: previous batch still running")
			return
		}
		defer running.Store(false)

		log.Println("Cron triggered: starting batch")
		displayResults(a.processor.Run(ctx, a.source, nil))
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	c.Start()
	log.Printf("Cron job started with schedule: %s", schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func runTUI(ctx context.Context, a *app) error {
	// The progress view owns the terminal; logs go to a file next to the results
	if err := os.MkdirAll(a.settings.ResultsPath, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(a.settings.ResultsPath, "storyreel.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	program := tea.NewProgram(tui.NewModel("storyreel"), tea.WithContext(ctx))

	go func() {
		posts := a.source.GetPosts(ctx)
		program.Send(tui.PostsLoadedMsg{Posts: posts})
		results := a.processor.ProcessBatch(ctx, posts, func(e processor.Event) {
			program.Send(tui.ProgressMsg{Event: e})
		})
		program.Send(tui.BatchDoneMsg{Results: results})
	}()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func displayResults(results []types.VideoResult) {
	s := types.Summarize(results)

	log.Println("=== Batch Summary ===")
	log.Printf("Total Posts:    %d", s.Total)
	log.Printf("Rendered:       %d", s.Rendered)
	log.Printf("Skipped:        %d", s.Skipped)
	log.Printf("Failed:         %d", s.Failed)
	for _, r := range results {
		if r.Status == types.StatusRendered {
			log.Printf("  🎥 %s", r.OutputPath)
		}
	}
	log.Println("=====================")
}
