package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/schollz/progressbar/v3"
	"github.com/tadeasf/reddit-media-dl/internal/app/delivery"
	"github.com/tadeasf/reddit-media-dl/internal/app/downloader"
	"github.com/tadeasf/reddit-media-dl/internal/app/fetcher"
	"github.com/tadeasf/reddit-media-dl/internal/app/listing"
	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/app/normalizer"
	"github.com/tadeasf/reddit-media-dl/internal/app/progress"
	"github.com/tadeasf/reddit-media-dl/internal/app/session"
	"github.com/tadeasf/reddit-media-dl/internal/config"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
	"go.uber.org/zap"
)

const renderInterval = 200 * time.Millisecond

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogMode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.LogMode),
		zap.Int("worker_count", cfg.WorkerCount),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Info("shutting down, letting in-flight transfers finish",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	posts, err := listing.ParseDirectory(cfg.InputDir)
	if err != nil {
		logger.Error("failed to read input", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Found %d posts to process\n", len(posts))

	var targets []models.MediaTarget
	for _, post := range posts {
		targets = append(targets, normalizer.Normalize(post)...)
	}
	targets = normalizer.Dedupe(targets)

	if len(targets) == 0 {
		fmt.Println("No media URLs found to download")
		return
	}
	fmt.Printf("Found %d unique media files to download\n", len(targets))

	sess, err := session.New(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to create session directory", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", sess.Root())

	state := progress.CreateState()
	state.SetTotal(len(targets))

	statusServer := startStatusServer(cfg.StatusPort, state)

	bar := progressbar.NewOptions(len(targets),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
	)
	renderDone := make(chan struct{})
	go renderProgress(state, bar, renderDone)

	pool := downloader.CreatePool(
		fetcher.CreateHTTPFetcher(cfg.RequestTimeout),
		sess,
		state,
		cfg.WorkerCount,
	)
	outcomes := pool.Run(ctx, targets)

	close(renderDone)
	bar.Finish()

	if statusServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("status server shutdown error", zap.Error(err))
		}
	}

	for _, outcome := range outcomes {
		if outcome.Status == models.StatusFailure {
			logger.Warn("download failed",
				zap.String("url", outcome.Target.SourceURL),
				zap.String("detail", outcome.ErrorDetail),
			)
		}
	}

	printSummary(state.Snapshot(), sess.Root())
}

func startStatusServer(port string, state *progress.State) *http.Server {
	if port == "" {
		return nil
	}

	statusDelivery := delivery.CreateStatusDelivery(state)

	router := mux.NewRouter()
	router.HandleFunc("/health", statusDelivery.Health).Methods("GET")
	router.PathPrefix("/api/v1").Subrouter().
		HandleFunc("/progress", statusDelivery.GetProgress).Methods("GET")

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("starting status server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("status server error", zap.Error(err))
		}
	}()

	return server
}

func renderProgress(state *progress.State, bar *progressbar.ProgressBar, done <-chan struct{}) {
	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = bar.Set(state.Snapshot().CompletedCount)
		}
	}
}

func printSummary(snap models.ProgressSnapshot, sessionRoot string) {
	fmt.Println("\nDownload complete!")
	fmt.Printf("  Successful: %d\n", snap.CompletedCount-snap.FailedCount)
	fmt.Printf("  Failed:     %d\n", snap.FailedCount)
	fmt.Printf("  Saved to:   %s\n", sessionRoot)

	for _, kind := range []models.Kind{models.KindImage, models.KindVideo, models.KindGif, models.KindOther} {
		if count := snap.SucceededByKind[kind]; count > 0 {
			fmt.Printf("  %-7s %d files\n", string(kind)+":", count)
		}
	}
}
