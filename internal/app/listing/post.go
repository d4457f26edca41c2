package listing

import (
	"encoding/json"
	"strings"

	"github.com/tadeasf/reddit-media-dl/internal/app/models"
)

// rawPost covers the listing fields the pipeline consumes. Everything else
// in the dump is ignored.
type rawPost struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	IsSelf              bool   `json:"is_self"`
	IsVideo             bool   `json:"is_video"`
	IsGallery           bool   `json:"is_gallery"`
	URLOverriddenByDest string `json:"url_overridden_by_dest"`

	GalleryData struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`
	MediaMetadata map[string]mediaMeta `json:"media_metadata"`

	Media       *rawMedia `json:"media"`
	SecureMedia *rawMedia `json:"secure_media"`

	Preview struct {
		Images []previewImage `json:"images"`
	} `json:"preview"`
}

type rawMedia struct {
	RedditVideo *struct {
		FallbackURL string `json:"fallback_url"`
		HasAudio    bool   `json:"has_audio"`
	} `json:"reddit_video"`
}

type mediaMeta struct {
	Source   imageVariant   `json:"s"`
	Previews []imageVariant `json:"p"`
}

type imageVariant struct {
	URL    string `json:"u"`
	Width  int    `json:"x"`
	Height int    `json:"y"`
}

type previewImage struct {
	Source   imageVariant `json:"source"`
	Variants struct {
		Gif *struct {
			Source imageVariant `json:"source"`
		} `json:"gif"`
		MP4 *struct {
			Source imageVariant `json:"source"`
		} `json:"mp4"`
	} `json:"variants"`
}

// The preview image variant blocks use "url" instead of "u".
func (v *imageVariant) UnmarshalJSON(data []byte) error {
	type alias struct {
		U      string `json:"u"`
		URL    string `json:"url"`
		Width  int    `json:"x"`
		Height int    `json:"y"`
		W      int    `json:"width"`
		H      int    `json:"height"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	v.URL = a.U
	if v.URL == "" {
		v.URL = a.URL
	}
	v.Width = a.Width
	if v.Width == 0 {
		v.Width = a.W
	}
	v.Height = a.Height
	if v.Height == 0 {
		v.Height = a.H
	}
	return nil
}

// toPost resolves the polymorphic media fields into one tagged descriptor.
// Resolution follows target priority: gallery, native video, animated image,
// direct link, nothing.
func (p rawPost) toPost() models.Post {
	post := models.Post{
		ID:    p.ID,
		Title: p.Title,
	}

	if p.IsSelf {
		return post
	}

	if gallery := p.gallery(); gallery != nil {
		post.Media = *gallery
		return post
	}

	if video := p.nativeVideo(); video != nil {
		post.Media = *video
		return post
	}

	if animated := p.animatedImage(); animated != nil {
		post.Media = *animated
		return post
	}

	if p.URLOverriddenByDest != "" {
		post.Media = models.DirectLink{URL: p.URLOverriddenByDest}
	}

	return post
}

func (p rawPost) gallery() *models.Gallery {
	if !p.IsGallery || len(p.MediaMetadata) == 0 {
		return nil
	}

	var gallery models.Gallery
	for _, item := range p.GalleryData.Items {
		meta, ok := p.MediaMetadata[item.MediaID]
		if !ok {
			continue
		}

		variants := make([]models.ImageVariant, 0, len(meta.Previews)+1)
		for _, v := range append(meta.Previews, meta.Source) {
			if v.URL == "" {
				continue
			}
			variants = append(variants, models.ImageVariant{
				URL:    v.URL,
				Width:  v.Width,
				Height: v.Height,
			})
		}
		if len(variants) == 0 {
			continue
		}

		gallery.Items = append(gallery.Items, models.GalleryItem{Variants: variants})
	}

	if len(gallery.Items) == 0 {
		return nil
	}
	return &gallery
}

func (p rawPost) nativeVideo() *models.NativeVideo {
	media := p.Media
	if media == nil || media.RedditVideo == nil {
		media = p.SecureMedia
	}
	if media == nil || media.RedditVideo == nil || media.RedditVideo.FallbackURL == "" {
		return nil
	}

	video := models.NativeVideo{VideoURL: media.RedditVideo.FallbackURL}
	if media.RedditVideo.HasAudio {
		// Audio ships as a separate DASH track next to the video stream.
		base := video.VideoURL
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			base = base[:idx]
		}
		video.AudioURL = base + "/DASH_audio.mp4"
	}

	return &video
}

func (p rawPost) animatedImage() *models.AnimatedImage {
	if len(p.Preview.Images) == 0 {
		return nil
	}

	image := p.Preview.Images[0]
	if image.Variants.Gif == nil || image.Variants.Gif.Source.URL == "" {
		return nil
	}

	animated := models.AnimatedImage{ImageURL: image.Variants.Gif.Source.URL}
	if image.Variants.MP4 != nil {
		animated.VideoURL = image.Variants.MP4.Source.URL
	}

	return &animated
}
