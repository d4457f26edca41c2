package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/utils/errs"
	"github.com/tadeasf/reddit-media-dl/internal/utils/validate"
)

const timestampLayout = "2006-01-02_15-04-05"

var kindSubdirs = map[models.Kind]string{
	models.KindImage: "images",
	models.KindVideo: "videos",
	models.KindGif:   "gifs",
	models.KindOther: "other",
}

// Session is one timestamped output directory. It routes each target to a
// kind subdirectory, creating subdirectories on first use.
type Session struct {
	root string
}

// New creates {outputRoot}/{timestamp}/ and returns the session rooted there.
func New(outputRoot string) (*Session, error) {
	root := filepath.Join(outputRoot, time.Now().Format(timestampLayout))
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &Session{root: root}, nil
}

// Root returns the session directory path.
func (s *Session) Root() string {
	return s.root
}

// ResolvePath maps the target's kind to its subdirectory and joins the
// suggested name. MkdirAll keeps concurrent first-use creation race-safe.
func (s *Session) ResolvePath(target models.MediaTarget) (string, error) {
	if !validate.SafeFilename(target.SuggestedName) {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsafeFilename, target.SuggestedName)
	}

	subdir, ok := kindSubdirs[target.Kind]
	if !ok {
		subdir = kindSubdirs[models.KindOther]
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s directory: %w", subdir, err)
	}

	return filepath.Join(dir, target.SuggestedName), nil
}
