package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tadeasf/reddit-media-dl/internal/utils/errs"
)

// Media hosts block default Go user agents, so requests carry a desktop
// browser one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0"

// HTTPFetcher issues streaming GET requests with a per-request deadline.
type HTTPFetcher struct {
	client *http.Client
}

func CreateHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the response body as a stream together with its Content-Type.
// Non-2xx statuses are errors; the caller owns closing the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: %d for %s", errs.ErrBadStatus, resp.StatusCode, url)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
