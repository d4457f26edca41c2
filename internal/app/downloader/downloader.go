package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/tadeasf/reddit-media-dl/internal/app"
	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/utils/errs"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
	"github.com/tadeasf/reddit-media-dl/internal/utils/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkerCount = 16

	copyBufferSize = 32 * 1024
)

// Pool is a fixed set of workers draining a shared queue of media targets.
// Every target ends in exactly one outcome; a failure never aborts the run.
type Pool struct {
	fetcher  app.Fetcher
	resolver app.PathResolver
	progress app.ProgressSink
	workers  int
}

func CreatePool(fetcher app.Fetcher, resolver app.PathResolver, progress app.ProgressSink, workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Pool{
		fetcher:  fetcher,
		resolver: resolver,
		progress: progress,
		workers:  workers,
	}
}

// Run processes all targets to completion and returns their outcomes, in no
// particular order. Cancelling ctx stops workers before their next pop;
// in-flight transfers surface as failures when their request context dies.
func (p *Pool) Run(ctx context.Context, targets []models.MediaTarget) []models.DownloadOutcome {
	const funcName = "downloader.Pool.Run"
	logger.Info("starting download pool",
		zap.String("function", funcName),
		zap.Int("targets", len(targets)),
		zap.Int("workers", p.workers),
	)

	queue := make(chan models.MediaTarget)
	go func() {
		defer close(queue)
		for _, target := range targets {
			select {
			case <-ctx.Done():
				return
			case queue <- target:
			}
		}
	}()

	var (
		mu       sync.Mutex
		outcomes = make([]models.DownloadOutcome, 0, len(targets))
	)

	g := new(errgroup.Group)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for target := range queue {
				if ctx.Err() != nil {
					return nil
				}

				outcome := p.process(ctx, target)
				p.progress.Record(outcome)

				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("download pool drained",
		zap.String("function", funcName),
		zap.Int("processed", len(outcomes)),
	)

	return outcomes
}

func (p *Pool) process(ctx context.Context, target models.MediaTarget) models.DownloadOutcome {
	const funcName = "downloader.Pool.process"

	destPath, err := p.resolver.ResolvePath(target)
	if err != nil {
		return failure(target, err)
	}

	// A previously completed download at the destination counts as success
	// without a fetch. Zero-length leftovers are re-fetched.
	if alreadyDownloaded(destPath) {
		logger.Debug("file already exists, skipping",
			zap.String("function", funcName),
			zap.String("path", destPath),
		)
		return success(target, destPath)
	}

	body, contentType, err := p.fetcher.Fetch(ctx, target.SourceURL)
	if err != nil {
		return failure(target, err)
	}
	defer body.Close()

	// Targets the normalizer could not classify get a second chance from the
	// response headers.
	if target.Kind == models.KindOther {
		if kind := validate.KindForContentType(contentType); kind != models.KindOther {
			target.Kind = kind
			if path.Ext(target.SuggestedName) == "" {
				target.SuggestedName += validate.ExtensionForContentType(contentType)
			}

			destPath, err = p.resolver.ResolvePath(target)
			if err != nil {
				return failure(target, err)
			}
			if alreadyDownloaded(destPath) {
				return success(target, destPath)
			}
		}
	}

	written, err := streamToFile(destPath, body)
	if err != nil {
		return failure(target, err)
	}
	if written == 0 {
		os.Remove(destPath)
		return failure(target, fmt.Errorf("%w: %s", errs.ErrEmptyBody, target.SourceURL))
	}

	logger.Debug("downloaded target",
		zap.String("function", funcName),
		zap.String("path", destPath),
		zap.Int64("bytes", written),
	)

	return success(target, destPath)
}

// streamToFile copies the body to destPath in fixed-size chunks so large
// payloads never live in memory. The partial file is removed on any error.
func streamToFile(destPath string, body io.Reader) (int64, error) {
	file, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	written, err := io.CopyBuffer(file, body, make([]byte, copyBufferSize))
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return 0, fmt.Errorf("write %s: %w", destPath, err)
	}

	return written, nil
}

func alreadyDownloaded(destPath string) bool {
	info, err := os.Stat(destPath)
	return err == nil && info.Size() > 0
}

func success(target models.MediaTarget, finalPath string) models.DownloadOutcome {
	return models.DownloadOutcome{
		Status:    models.StatusSuccess,
		Target:    target,
		FinalPath: finalPath,
	}
}

func failure(target models.MediaTarget, err error) models.DownloadOutcome {
	return models.DownloadOutcome{
		Status:      models.StatusFailure,
		Target:      target,
		ErrorDetail: err.Error(),
	}
}
