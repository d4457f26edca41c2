package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/utils/errs"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
	"go.uber.org/zap"
)

// ParseDirectory reads every *.json page in dir, in filename-sort order, and
// returns the posts they contain. Unreadable or malformed pages are skipped
// with a warning; a missing directory or zero readable pages is an error.
func ParseDirectory(dir string) ([]models.Post, error) {
	const funcName = "listing.ParseDirectory"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var (
		posts    []models.Post
		readable int
	)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("failed to read listing page",
				zap.String("function", funcName),
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}

		pagePosts, err := parsePage(data)
		if err != nil {
			logger.Warn("failed to parse listing page",
				zap.String("function", funcName),
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}

		readable++
		posts = append(posts, pagePosts...)
	}

	if readable == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoInputFiles, dir)
	}

	logger.Info("parsed listing pages",
		zap.String("function", funcName),
		zap.Int("pages", readable),
		zap.Int("posts", len(posts)),
	)

	return posts, nil
}

// parsePage accepts the three page shapes the dumps come in: a listing
// envelope, a single wrapped post, or an array of either.
func parsePage(data []byte) ([]models.Post, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty page")
	}

	if trimmed[0] == '[' {
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("decode page array: %w", err)
		}

		var posts []models.Post
		for _, element := range elements {
			elemPosts, err := parseEnvelope(element)
			if err != nil {
				return nil, err
			}
			posts = append(posts, elemPosts...)
		}
		return posts, nil
	}

	return parseEnvelope(trimmed)
}

func parseEnvelope(data []byte) ([]models.Post, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}

	var page struct {
		Children []struct {
			Data rawPost `json:"data"`
		} `json:"children"`
	}
	if err := json.Unmarshal(envelope.Data, &page); err == nil && page.Children != nil {
		posts := make([]models.Post, 0, len(page.Children))
		for _, child := range page.Children {
			posts = append(posts, child.Data.toPost())
		}
		return posts, nil
	}

	var single rawPost
	if err := json.Unmarshal(envelope.Data, &single); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	return []models.Post{single.toPost()}, nil
}
