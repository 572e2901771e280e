// Package assets implements the AssetResolver interface: a local,
// URL-addressed media store. Every URL is downloaded at most once for the
// lifetime of the cache directory; privacy scrubbing happens on first fetch.
package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sztupy/tumblr2ghpages/core"
)

// externalDir namespaces non-platform media so a sanitized external name
// can never collide with a platform-native key.
const externalDir = "external"

// minKeyLength is the minimum key length built from trailing URL segments.
const minKeyLength = 8

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Cache stores media files under a local directory keyed by URL.
type Cache struct {
	dir      string
	mode     core.ImageMode
	blog     string
	remove   bool
	alert    *core.GeoBox
	fetcher  core.MediaFetcher
	scrubber core.Scrubber

	hits   int
	misses int
}

// New creates a Cache from the run options and its collaborators.
func New(opts core.Options, fetcher core.MediaFetcher, scrubber core.Scrubber) *Cache {
	return &Cache{
		dir:      opts.CacheDir,
		mode:     opts.Images,
		blog:     opts.Blog,
		remove:   opts.RemoveGeo,
		alert:    opts.GeoAlert,
		fetcher:  fetcher,
		scrubber: scrubber,
	}
}

// Resolve returns either the original remote URL (caching off, or the asset
// belongs to another blog and mode is not "all") or the site-absolute path
// of the locally cached copy, fetching and scrubbing it first if needed.
func (c *Cache) Resolve(ctx context.Context, url string, owner string) (string, error) {
	if c.mode == core.ImagesOff {
		return url, nil
	}
	if owner != c.blog && c.mode != core.ImagesAll {
		return url, nil
	}

	rel := Key(url)
	disk := filepath.Join(c.dir, filepath.FromSlash(rel))

	if fileExists(disk) {
		c.hits++
		return localURL(c.dir, rel), nil
	}

	slog.Info("Fetching media", "url", url)
	data, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching asset %s: %w", url, err)
	}

	if err := os.MkdirAll(filepath.Dir(disk), 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(disk, data, 0644); err != nil {
		return "", fmt.Errorf("writing cached asset %s: %w", disk, err)
	}

	if c.remove && c.scrubber != nil {
		c.scrub(disk, url)
	}

	c.misses++
	return localURL(c.dir, rel), nil
}

// scrub strips geolocation metadata from a freshly cached file. Scrubbing
// problems are warnings, never resolve failures.
func (c *Cache) scrub(disk string, url string) {
	tags, err := c.scrubber.Inspect(disk)
	if err != nil {
		slog.Warn("Failed to inspect media for GPS metadata", "path", disk, "url", url, "error", err)
		return
	}
	if tags == nil {
		return
	}

	slog.Info("GPS information found, removing", "path", disk, "url", url)
	if c.alert != nil && c.alert.Contains(tags.Lat, tags.Lon) {
		slog.Warn("GPS coordinates fall inside the alert bounding box", "path", disk, "lat", tags.Lat, "lon", tags.Lon)
	}
	if err := c.scrubber.Strip(disk); err != nil {
		slog.Warn("Failed to strip GPS metadata", "path", disk, "error", err)
	}
}

// Hits returns the number of resolves served from the cache directory.
func (c *Cache) Hits() int { return c.hits }

// Misses returns the number of resolves that required a download.
func (c *Cache) Misses() int { return c.misses }

// Key derives the cache-relative path for a URL. Platform-native media keeps
// a key built by greedily consuming trailing path segments until it is at
// least minKeyLength characters; anything else is sanitized into the
// external namespace.
func Key(url string) string {
	if strings.Contains(url, "tumblr.com") {
		frags := strings.Split(url, "/")
		name := ""
		for len(name) < minKeyLength && len(frags) > 0 {
			name += frags[len(frags)-1]
			frags = frags[:len(frags)-1]
		}
		return name
	}
	return path.Join(externalDir, unsafeChars.ReplaceAllString(url, "_"))
}

// localURL builds the site-absolute URL for a cache-relative key.
func localURL(dir string, rel string) string {
	return "/" + path.Join(filepath.ToSlash(dir), rel)
}

// fileExists reports whether path exists with non-zero size. A zero-byte
// file is treated as a failed earlier download and refetched.
func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Size() > 0
}
