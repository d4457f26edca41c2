package app

import (
	"context"
	"io"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// Fetcher issues a streaming GET for a media URL and returns the response
// body together with its Content-Type. The caller owns closing the body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// PathResolver maps a media target to its destination path on disk, creating
// the kind subdirectory when needed.
type PathResolver interface {
	ResolvePath(target models.MediaTarget) (string, error)
}

// ProgressSink receives one terminal outcome per target and serves consistent
// counter snapshots to concurrent readers.
type ProgressSink interface {
	Record(outcome models.DownloadOutcome)
	Snapshot() models.ProgressSnapshot
}
