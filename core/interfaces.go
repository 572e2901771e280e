// Package core defines the shared types and pipeline interfaces for
// tumblr2ghpages. Each stage of the pipeline is a small, testable interface.
package core

import "context"

// ImageMode controls which referenced media gets re-hosted locally.
type ImageMode string

const (
	// ImagesOff leaves every media URL untouched.
	ImagesOff ImageMode = "off"
	// ImagesOwner caches only media owned by the blog being imported.
	ImagesOwner ImageMode = "owner-only"
	// ImagesAll caches media regardless of owner.
	ImagesAll ImageMode = "all"
)

// AutoTagOptions configures the tag classifier. A nil pointer disables
// auto-tagging entirely; each rule is independently optional.
type AutoTagOptions struct {
	// OwnTag marks posts classified as original content.
	OwnTag string
	// PostTag marks posts authored by the blog itself (not reblogs).
	PostTag string
	// LongformTag marks posts whose own text meets LongformMinLength.
	LongformTag string
	// LongformMinLength is the own-text length threshold; 0 disables the rule.
	LongformMinLength int
	// Sync pushes newly added tags back to Tumblr.
	Sync bool
}

// GeoBox is a latitude/longitude bounding box used for the diagnostic
// warning when stripped GPS coordinates fall inside it.
type GeoBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Contains reports whether the coordinates fall inside the box.
func (b GeoBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// GeoTags holds GPS coordinates found in a media file.
type GeoTags struct {
	Lat float64
	Lon float64
}

// Options holds the per-run configuration, threaded explicitly through
// every component constructor.
type Options struct {
	Blog       string
	Images     ImageMode
	RemoveGeo  bool
	GeoAlert   *GeoBox
	AutoTags   *AutoTagOptions
	OutputDir  string
	CacheDir   string
	APIKey     string
	OAuthToken string
}

// MediaFetcher retrieves the binary payload of a media URL.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetResolver resolves a media URL to either the original remote URL or
// a local site-absolute path, caching and scrubbing on first fetch.
type AssetResolver interface {
	Resolve(ctx context.Context, url string, owner string) (string, error)
}

// Scrubber inspects a locally stored media file for embedded geolocation
// metadata and strips it in place.
type Scrubber interface {
	// Inspect returns the GPS coordinates found in the file, or nil when
	// the file carries none.
	Inspect(path string) (*GeoTags, error)
	Strip(path string) error
}

// Converter turns an HTML fragment into the target lightweight markup.
type Converter interface {
	Convert(html string) (string, error)
}

// TagUpdater pushes an updated tag list back to the source platform.
type TagUpdater interface {
	UpdateTags(ctx context.Context, blog string, postID int64, tags []string) error
}
