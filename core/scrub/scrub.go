// Package scrub implements the Scrubber interface. GPS tags are detected
// in-process via goexif; stripping shells out to exiftool, which handles
// every media container the import can encounter.
package scrub

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/sztupy/tumblr2ghpages/core"
)

// ExifScrubber detects and removes geolocation metadata from media files.
type ExifScrubber struct {
	// exiftool is the binary invoked for stripping; overridable in tests.
	exiftool string
}

// New creates an ExifScrubber using the exiftool binary on PATH.
func New() *ExifScrubber {
	return &ExifScrubber{exiftool: "exiftool"}
}

// Inspect returns the GPS coordinates embedded in the file, or nil when the
// file has no readable EXIF block or no GPS tags. Files that goexif cannot
// parse (videos, non-EXIF formats) are reported as carrying no coordinates.
func (s *ExifScrubber) Inspect(path string) (*core.GeoTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, nil
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return nil, nil
	}
	return &core.GeoTags{Lat: lat, Lon: lon}, nil
}

// Strip removes all GPS and geotag metadata from the file in place.
func (s *ExifScrubber) Strip(path string) error {
	cmd := exec.Command(s.exiftool, "-gps:all=", "-xmp:geotag=", "-overwrite_original", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running exiftool on %s: %w (%s)", path, err, out)
	}
	return nil
}
