package models

// Kind is the coarse media category driving output directory placement.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindGif   Kind = "gif"
	KindOther Kind = "other"
)

// Post is one listing entry reduced to the fields the pipeline consumes.
// Media is nil for link-only and self posts.
type Post struct {
	ID    string
	Title string
	Media MediaDescriptor
}

// MediaDescriptor is the tagged variant over the per-post media shapes the
// listing feed can carry. The normalizer type-switches over it.
type MediaDescriptor interface {
	isMediaDescriptor()
}

// ImageVariant is one offered resolution of a gallery image.
type ImageVariant struct {
	URL    string
	Width  int
	Height int
}

// GalleryItem is one image in a native gallery, with its offered variants in
// the order the feed listed them.
type GalleryItem struct {
	Variants []ImageVariant
}

// Gallery is a native gallery post: an ordered sequence of image items.
type Gallery struct {
	Items []GalleryItem
}

// NativeVideo is a self-hosted video: a silent video stream plus an optional
// separate audio stream.
type NativeVideo struct {
	VideoURL string
	AudioURL string
}

// AnimatedImage is a native animated image, optionally with a pre-transcoded
// MP4 rendition.
type AnimatedImage struct {
	ImageURL string
	VideoURL string
}

// DirectLink is a post whose media is a single external URL.
type DirectLink struct {
	URL string
}

func (Gallery) isMediaDescriptor()       {}
func (NativeVideo) isMediaDescriptor()   {}
func (AnimatedImage) isMediaDescriptor() {}
func (DirectLink) isMediaDescriptor()    {}

// MediaTarget is one normalized downloadable unit.
type MediaTarget struct {
	SourceURL     string
	SuggestedName string
	Kind          Kind
	OriginPostID  string
}

// OutcomeStatus is the terminal state of one download attempt.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusFailure OutcomeStatus = "failure"
)

// DownloadOutcome is the immutable result of attempting one MediaTarget.
type DownloadOutcome struct {
	Status      OutcomeStatus
	Target      MediaTarget
	FinalPath   string
	ErrorDetail string
}

// ProgressSnapshot is a consistent point-in-time read of the run counters.
type ProgressSnapshot struct {
	TotalTargets    int          `json:"total_targets"`
	CompletedCount  int          `json:"completed_count"`
	FailedCount     int          `json:"failed_count"`
	SucceededByKind map[Kind]int `json:"succeeded_by_kind"`
}
