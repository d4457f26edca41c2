package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tadeasf/reddit-media-dl/internal/app/models"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestNormalize_Gallery(t *testing.T) {
	post := models.Post{
		ID:    "abc12",
		Title: "vacation pics",
		Media: models.Gallery{
			Items: []models.GalleryItem{
				{
					Variants: []models.ImageVariant{
						{URL: "https://i.example.com/small.jpg", Width: 100, Height: 100},
						{URL: "https://i.example.com/large.jpg", Width: 800, Height: 600},
						{URL: "https://i.example.com/medium.jpg", Width: 400, Height: 300},
					},
				},
				{
					Variants: []models.ImageVariant{
						{URL: "https://i.example.com/second.png", Width: 640, Height: 480},
					},
				},
			},
		},
	}

	targets := Normalize(post)

	assert.Len(t, targets, 2)
	assert.Equal(t, "https://i.example.com/large.jpg", targets[0].SourceURL)
	assert.Equal(t, "abc121.jpg", targets[0].SuggestedName)
	assert.Equal(t, models.KindImage, targets[0].Kind)
	assert.Equal(t, "abc122.png", targets[1].SuggestedName)
	assert.Equal(t, "abc12", targets[1].OriginPostID)
}

func TestNormalize_GalleryEqualAreaKeepsFirst(t *testing.T) {
	post := models.Post{
		ID: "abc12",
		Media: models.Gallery{
			Items: []models.GalleryItem{
				{
					Variants: []models.ImageVariant{
						{URL: "https://i.example.com/first.jpg", Width: 800, Height: 600},
						{URL: "https://i.example.com/second.jpg", Width: 600, Height: 800},
					},
				},
			},
		},
	}

	targets := Normalize(post)

	assert.Len(t, targets, 1)
	assert.Equal(t, "https://i.example.com/first.jpg", targets[0].SourceURL)
}

func TestNormalize_NativeVideoWithAudio(t *testing.T) {
	post := models.Post{
		ID:    "vid99",
		Title: "Amazing Clip!! (2025)",
		Media: models.NativeVideo{
			VideoURL: "https://v.example.com/vid99/DASH_720.mp4",
			AudioURL: "https://v.example.com/vid99/DASH_audio.mp4",
		},
	}

	targets := Normalize(post)

	assert.Len(t, targets, 2)
	assert.Equal(t, "vid99_Amazing Clip 2025_video.mp4", targets[0].SuggestedName)
	assert.Equal(t, "vid99_Amazing Clip 2025_audio.mp4", targets[1].SuggestedName)
	assert.Equal(t, models.KindVideo, targets[0].Kind)
	assert.Equal(t, models.KindVideo, targets[1].Kind)
}

func TestNormalize_NativeVideoWithoutAudio(t *testing.T) {
	post := models.Post{
		ID:    "vid99",
		Title: "silent",
		Media: models.NativeVideo{
			VideoURL: "https://v.example.com/vid99/DASH_720.mp4",
		},
	}

	targets := Normalize(post)

	assert.Len(t, targets, 1)
	assert.Equal(t, "vid99_silent_video.mp4", targets[0].SuggestedName)
}

func TestNormalize_NativeVideoEmptyTitleFallsBackToID(t *testing.T) {
	post := models.Post{
		ID:    "vid99",
		Title: "???",
		Media: models.NativeVideo{
			VideoURL: "https://v.example.com/vid99/DASH_720.mp4",
		},
	}

	targets := Normalize(post)

	assert.Len(t, targets, 1)
	assert.Equal(t, "vid99_video.mp4", targets[0].SuggestedName)
}

func TestNormalize_AnimatedImage(t *testing.T) {
	tests := []struct {
		name         string
		media        models.AnimatedImage
		expectedURL  string
		expectedName string
	}{
		{
			name: "TranscodedVideoPreferred",
			media: models.AnimatedImage{
				ImageURL: "https://i.example.com/anim.gif",
				VideoURL: "https://i.example.com/anim.mp4",
			},
			expectedURL:  "https://i.example.com/anim.mp4",
			expectedName: "gif01.mp4",
		},
		{
			name: "StaticImageFallback",
			media: models.AnimatedImage{
				ImageURL: "https://i.example.com/anim.gif",
			},
			expectedURL:  "https://i.example.com/anim.gif",
			expectedName: "gif01.gif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := Normalize(models.Post{ID: "gif01", Media: tt.media})

			assert.Len(t, targets, 1)
			assert.Equal(t, tt.expectedURL, targets[0].SourceURL)
			assert.Equal(t, tt.expectedName, targets[0].SuggestedName)
			assert.Equal(t, models.KindGif, targets[0].Kind)
		})
	}
}

func TestNormalize_DirectLink(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		expectedURL  string
		expectedName string
		expectedKind models.Kind
	}{
		{
			name:         "Image",
			url:          "https://i.example.com/pic.jpg",
			expectedURL:  "https://i.example.com/pic.jpg",
			expectedName: "dl1_linked pic.jpg",
			expectedKind: models.KindImage,
		},
		{
			name:         "Video",
			url:          "https://i.example.com/clip.webm",
			expectedURL:  "https://i.example.com/clip.webm",
			expectedName: "dl1_linked pic.webm",
			expectedKind: models.KindVideo,
		},
		{
			name:         "GifvSubstitutedWithMP4",
			url:          "https://i.example.com/anim.gifv",
			expectedURL:  "https://i.example.com/anim.mp4",
			expectedName: "dl1_linked pic.mp4",
			expectedKind: models.KindGif,
		},
		{
			name:         "UnknownExtensionIsOther",
			url:          "https://example.com/view/xyz",
			expectedURL:  "https://example.com/view/xyz",
			expectedName: "dl1_linked pic",
			expectedKind: models.KindOther,
		},
		{
			name:         "EscapedAmpersandUnescaped",
			url:          "https://i.example.com/pic.jpg?a=1&amp;b=2",
			expectedURL:  "https://i.example.com/pic.jpg?a=1&b=2",
			expectedName: "dl1_linked pic.jpg",
			expectedKind: models.KindImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := Normalize(models.Post{
				ID:    "dl1",
				Title: "linked pic",
				Media: models.DirectLink{URL: tt.url},
			})

			assert.Len(t, targets, 1)
			assert.Equal(t, tt.expectedURL, targets[0].SourceURL)
			assert.Equal(t, tt.expectedName, targets[0].SuggestedName)
			assert.Equal(t, tt.expectedKind, targets[0].Kind)
		})
	}
}

func TestNormalize_NoMedia(t *testing.T) {
	assert.Empty(t, Normalize(models.Post{ID: "txt1", Title: "just text"}))
}

func TestNormalize_Idempotent(t *testing.T) {
	post := models.Post{
		ID:    "vid99",
		Title: "repeatable",
		Media: models.NativeVideo{
			VideoURL: "https://v.example.com/vid99/DASH_720.mp4",
			AudioURL: "https://v.example.com/vid99/DASH_audio.mp4",
		},
	}

	assert.Equal(t, Normalize(post), Normalize(post))
}

func TestDedupe(t *testing.T) {
	targets := []models.MediaTarget{
		{SourceURL: "https://a.example.com/1.jpg", SuggestedName: "first.jpg"},
		{SourceURL: "https://a.example.com/2.jpg", SuggestedName: "second.jpg"},
		{SourceURL: "https://a.example.com/1.jpg", SuggestedName: "duplicate.jpg"},
		{SourceURL: "https://a.example.com/3.jpg", SuggestedName: "third.jpg"},
		{SourceURL: "https://a.example.com/2.jpg", SuggestedName: "duplicate2.jpg"},
	}

	unique := Dedupe(targets)

	assert.Len(t, unique, 3)

	seen := make(map[string]bool)
	for _, target := range unique {
		assert.False(t, seen[target.SourceURL], "duplicate source URL in output")
		seen[target.SourceURL] = true
	}

	// First-seen representative wins.
	assert.Equal(t, "first.jpg", unique[0].SuggestedName)
	assert.Equal(t, "second.jpg", unique[1].SuggestedName)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
}
