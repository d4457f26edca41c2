package normalizer

import (
	"fmt"
	"strings"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
	"github.com/tadeasf/reddit-media-dl/internal/utils/validate"
	"go.uber.org/zap"
)

// Normalize converts one post into zero or more media targets. It never
// fails: posts with no recognizable media yield nil.
func Normalize(post models.Post) []models.MediaTarget {
	if post.ID == "" {
		post.ID = "unknown"
	}

	switch media := post.Media.(type) {
	case models.Gallery:
		return galleryTargets(post, media)
	case models.NativeVideo:
		return videoTargets(post, media)
	case models.AnimatedImage:
		return animatedTargets(post, media)
	case models.DirectLink:
		return directLinkTargets(post, media)
	default:
		return nil
	}
}

// Dedupe collapses targets to one per source URL, first seen wins. Input
// order of the survivors is preserved.
func Dedupe(targets []models.MediaTarget) []models.MediaTarget {
	const funcName = "normalizer.Dedupe"

	seen := make(map[string]struct{}, len(targets))
	unique := make([]models.MediaTarget, 0, len(targets))
	for _, target := range targets {
		if _, ok := seen[target.SourceURL]; ok {
			continue
		}
		seen[target.SourceURL] = struct{}{}
		unique = append(unique, target)
	}

	if dropped := len(targets) - len(unique); dropped > 0 {
		logger.Debug("dropped duplicate targets",
			zap.String("function", funcName),
			zap.Int("dropped", dropped),
		)
	}

	return unique
}

func galleryTargets(post models.Post, gallery models.Gallery) []models.MediaTarget {
	var targets []models.MediaTarget
	for i, item := range gallery.Items {
		variant, ok := bestVariant(item.Variants)
		if !ok {
			continue
		}

		url := unescapeURL(variant.URL)
		ext := validate.Extension(url)
		if ext == "" {
			ext = ".jpg"
		}

		targets = append(targets, models.MediaTarget{
			SourceURL:     url,
			SuggestedName: fmt.Sprintf("%s%d%s", post.ID, i+1, ext),
			Kind:          models.KindImage,
			OriginPostID:  post.ID,
		})
	}
	return targets
}

// bestVariant picks the variant with the largest pixel area; ties keep the
// first offered.
func bestVariant(variants []models.ImageVariant) (models.ImageVariant, bool) {
	var (
		best     models.ImageVariant
		bestArea = -1
	)
	for _, v := range variants {
		if v.URL == "" {
			continue
		}
		area := v.Width * v.Height
		if area > bestArea {
			best = v
			bestArea = area
		}
	}
	return best, bestArea >= 0
}

func videoTargets(post models.Post, video models.NativeVideo) []models.MediaTarget {
	if video.VideoURL == "" {
		return nil
	}

	base := baseName(post)
	targets := []models.MediaTarget{{
		SourceURL:     unescapeURL(video.VideoURL),
		SuggestedName: base + "_video.mp4",
		Kind:          models.KindVideo,
		OriginPostID:  post.ID,
	}}

	if video.AudioURL != "" {
		targets = append(targets, models.MediaTarget{
			SourceURL:     unescapeURL(video.AudioURL),
			SuggestedName: base + "_audio.mp4",
			Kind:          models.KindVideo,
			OriginPostID:  post.ID,
		})
	}

	return targets
}

func animatedTargets(post models.Post, animated models.AnimatedImage) []models.MediaTarget {
	target := models.MediaTarget{
		Kind:         models.KindGif,
		OriginPostID: post.ID,
	}

	// Prefer the pre-transcoded MP4 rendition when the feed offers one; its
	// own extension is kept.
	if animated.VideoURL != "" {
		target.SourceURL = unescapeURL(animated.VideoURL)
		target.SuggestedName = post.ID + ".mp4"
	} else if animated.ImageURL != "" {
		target.SourceURL = unescapeURL(animated.ImageURL)
		target.SuggestedName = post.ID + ".gif"
	} else {
		return nil
	}

	return []models.MediaTarget{target}
}

func directLinkTargets(post models.Post, link models.DirectLink) []models.MediaTarget {
	url := unescapeURL(link.URL)
	if url == "" {
		return nil
	}

	// Hosts serving .gifv only actually serve the MP4 rendition.
	if strings.HasSuffix(url, ".gifv") {
		return []models.MediaTarget{{
			SourceURL:     strings.TrimSuffix(url, ".gifv") + ".mp4",
			SuggestedName: baseName(post) + ".mp4",
			Kind:          models.KindGif,
			OriginPostID:  post.ID,
		}}
	}

	ext := validate.Extension(url)
	return []models.MediaTarget{{
		SourceURL:     url,
		SuggestedName: baseName(post) + ext,
		Kind:          validate.KindForExtension(ext),
		OriginPostID:  post.ID,
	}}
}

// baseName is the post ID plus the sanitized title when one survives
// sanitization.
func baseName(post models.Post) string {
	title := validate.SanitizeTitle(post.Title)
	if title == "" {
		return post.ID
	}
	return post.ID + "_" + title
}

// The dumps escape ampersands inside URLs.
func unescapeURL(url string) string {
	return strings.ReplaceAll(url, "&amp;", "&")
}
