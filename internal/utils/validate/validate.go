package validate

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
)

const maxTitleLength = 64

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9 _-]+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

var extensionKinds = map[string]models.Kind{
	".jpg":  models.KindImage,
	".jpeg": models.KindImage,
	".png":  models.KindImage,
	".webp": models.KindImage,
	".gif":  models.KindGif,
	".mp4":  models.KindVideo,
	".webm": models.KindVideo,
	".mov":  models.KindVideo,
}

var contentTypeKinds = map[string]models.Kind{
	"image/jpeg": models.KindImage,
	"image/png":  models.KindImage,
	"image/webp": models.KindImage,
	"image/gif":  models.KindGif,
	"video/mp4":  models.KindVideo,
	"video/webm": models.KindVideo,
}

// SanitizeTitle reduces a post title to a filename-safe token: characters
// outside [A-Za-z0-9 _-] are stripped, whitespace runs collapse to one space,
// and the result is truncated to 64 characters. Returns "" when nothing
// survives.
func SanitizeTitle(title string) string {
	s := unsafeChars.ReplaceAllString(title, "")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxTitleLength {
		s = strings.TrimSpace(s[:maxTitleLength])
	}
	return s
}

// Extension returns the lowercased extension of the URL path, including the
// dot, or "" when the path has none.
func Extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}

// KindForExtension classifies a URL extension, KindOther when unknown.
func KindForExtension(ext string) models.Kind {
	if kind, ok := extensionKinds[strings.ToLower(ext)]; ok {
		return kind
	}
	return models.KindOther
}

// KindForContentType classifies a response Content-Type header, KindOther
// when unknown. Parameters after ";" are ignored.
func KindForContentType(contentType string) models.Kind {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if kind, ok := contentTypeKinds[strings.TrimSpace(strings.ToLower(mediaType))]; ok {
		return kind
	}
	return models.KindOther
}

// ExtensionForContentType returns the canonical extension for a recognized
// media Content-Type, or "" when unknown.
func ExtensionForContentType(contentType string) string {
	switch KindForContentType(contentType) {
	case models.KindImage:
		mediaType, _, _ := strings.Cut(contentType, ";")
		if after, ok := strings.CutPrefix(strings.TrimSpace(mediaType), "image/"); ok {
			return "." + after
		}
		return ".jpg"
	case models.KindGif:
		return ".gif"
	case models.KindVideo:
		return ".mp4"
	}
	return ""
}

// SafeFilename reports whether name is usable as a bare filename: non-empty
// and free of path separators.
func SafeFilename(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`)
}
