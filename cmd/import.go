// Package cmd — import command.
// This is the main command that orchestrates the pipeline:
// fetch page → render → classify → normalize → write, one post at a time.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sztupy/tumblr2ghpages/core"
	"github.com/sztupy/tumblr2ghpages/core/assets"
	"github.com/sztupy/tumblr2ghpages/core/fetch"
	"github.com/sztupy/tumblr2ghpages/core/markup"
	"github.com/sztupy/tumblr2ghpages/core/normalize"
	"github.com/sztupy/tumblr2ghpages/core/output"
	"github.com/sztupy/tumblr2ghpages/core/render"
	"github.com/sztupy/tumblr2ghpages/core/scrub"
	"github.com/sztupy/tumblr2ghpages/core/tags"
	"github.com/sztupy/tumblr2ghpages/tumblr"
)

// Flag variables.
var (
	flagImages         string
	flagRemoveGeo      bool
	flagGeoAlertBox    string
	flagOwnTag         string
	flagPostTag        string
	flagLongformTag    string
	flagLongformLength int
	flagSyncTags       bool
	flagOutputDir      string
	flagCacheDir       string
	flagAPIKey         string
	flagOAuthToken     string
)

var importCmd = &cobra.Command{
	Use:   "import <blog>",
	Short: "Import a Tumblr blog into Jekyll post files",
	Long: `Import fetches every post of the given blog (e.g. example.tumblr.com),
renders each into Markdown with YAML front-matter, optionally caches the
referenced media locally, and writes one file per post.

Examples:
  tumblr2ghpages import example.tumblr.com --api-key KEY
  tumblr2ghpages import example.tumblr.com --api-key KEY --images owner-only --remove-geo-data
  tumblr2ghpages import example.tumblr.com --api-key KEY \
    --own-tag own --post-tag post --longform-tag rant --longform-min-length 512 --sync-tags`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	// Media caching.
	importCmd.Flags().StringVar(&flagImages, "images", "off", "Media caching mode: off, owner-only, or all")
	importCmd.Flags().BoolVar(&flagRemoveGeo, "remove-geo-data", false, "Strip GPS metadata from cached media")
	importCmd.Flags().StringVar(&flagGeoAlertBox, "geo-alert-box", "", "Warn when stripped coordinates fall inside minLat,minLon,maxLat,maxLon")

	// Auto-tagging.
	importCmd.Flags().StringVar(&flagOwnTag, "own-tag", "", "Tag added to posts classified as original content")
	importCmd.Flags().StringVar(&flagPostTag, "post-tag", "", "Tag added to posts authored by the blog itself")
	importCmd.Flags().StringVar(&flagLongformTag, "longform-tag", "", "Tag added to posts whose own text meets the length threshold")
	importCmd.Flags().IntVar(&flagLongformLength, "longform-min-length", 0, "Own-text length threshold for the longform tag")
	importCmd.Flags().BoolVar(&flagSyncTags, "sync-tags", false, "Push newly added tags back to Tumblr (requires --oauth-token)")

	// Directories.
	importCmd.Flags().StringVar(&flagOutputDir, "output-dir", output.DefaultDir, "Directory for generated post files")
	importCmd.Flags().StringVar(&flagCacheDir, "cache-dir", "tumblr_files", "Directory for cached media")

	// Credentials.
	importCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "Tumblr API key (or TUMBLR_API_KEY)")
	importCmd.Flags().StringVar(&flagOAuthToken, "oauth-token", "", "Tumblr OAuth bearer token (or TUMBLR_OAUTH_TOKEN)")
}

func runImport(cmd *cobra.Command, args []string) error {
	blogID := args[0]

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	client := tumblr.NewClient(opts.APIKey, opts.OAuthToken)
	ctx := context.Background()

	pageSize := tumblr.DefaultPageSize
	page, err := client.FetchPage(ctx, blogID, 0, pageSize)
	if err != nil {
		return fmt.Errorf("fetching first page: %w", err)
	}

	// Ownership checks compare against the blog's short name, which only
	// the API response carries.
	opts.Blog = page.Blog.Name

	cache := assets.New(*opts, fetch.New(), scrub.New())
	renderer := render.New(cache, *opts)
	classifier := tags.New(*opts, client)
	normalizer := normalize.New(renderer, classifier, markup.New())

	writer, err := output.New(opts.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	pageNum := 0
	written := 0
	for {
		fmt.Fprintf(os.Stdout, "Page: %d - Posts: %d\n", pageNum+1, len(page.Posts))

		for i := range page.Posts {
			post := &page.Posts[i]

			doc, err := normalizer.Normalize(ctx, post)
			if err != nil {
				return fmt.Errorf("processing post %d: %w", post.ID, err)
			}

			path, err := writer.Write(doc)
			if err != nil {
				return fmt.Errorf("writing post %d: %w", post.ID, err)
			}
			fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
			written++
		}

		if len(page.Posts) < pageSize {
			break
		}
		pageNum++
		page, err = client.FetchPage(ctx, blogID, pageNum*pageSize, pageSize)
		if err != nil {
			return fmt.Errorf("fetching page %d: %w", pageNum+1, err)
		}
	}

	fmt.Fprintf(os.Stdout, "Done: %d posts written\n", written)
	if opts.Images != core.ImagesOff {
		fmt.Fprintf(os.Stdout, "Media cache: %d downloaded, %d reused\n", cache.Misses(), cache.Hits())
	}
	return nil
}

// buildOptions validates the flags and collects them into run options.
func buildOptions() (*core.Options, error) {
	mode := core.ImageMode(flagImages)
	switch mode {
	case core.ImagesOff, core.ImagesOwner, core.ImagesAll:
	default:
		return nil, fmt.Errorf("invalid --images mode %q (want off, owner-only, or all)", flagImages)
	}

	apiKey := flagAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("TUMBLR_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("an API key is required: pass --api-key or set TUMBLR_API_KEY")
	}

	token := flagOAuthToken
	if token == "" {
		token = os.Getenv("TUMBLR_OAUTH_TOKEN")
	}
	if flagSyncTags && token == "" {
		return nil, fmt.Errorf("--sync-tags requires --oauth-token or TUMBLR_OAUTH_TOKEN")
	}

	var geoAlert *core.GeoBox
	if flagGeoAlertBox != "" {
		box, err := parseGeoBox(flagGeoAlertBox)
		if err != nil {
			return nil, err
		}
		geoAlert = box
	}

	var autoTags *core.AutoTagOptions
	if flagOwnTag != "" || flagPostTag != "" || flagLongformTag != "" {
		autoTags = &core.AutoTagOptions{
			OwnTag:            flagOwnTag,
			PostTag:           flagPostTag,
			LongformTag:       flagLongformTag,
			LongformMinLength: flagLongformLength,
			Sync:              flagSyncTags,
		}
	}

	return &core.Options{
		Images:     mode,
		RemoveGeo:  flagRemoveGeo,
		GeoAlert:   geoAlert,
		AutoTags:   autoTags,
		OutputDir:  flagOutputDir,
		CacheDir:   flagCacheDir,
		APIKey:     apiKey,
		OAuthToken: token,
	}, nil
}

// parseGeoBox parses "minLat,minLon,maxLat,maxLon" into a bounding box.
func parseGeoBox(s string) (*core.GeoBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid --geo-alert-box %q (want minLat,minLon,maxLat,maxLon)", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --geo-alert-box coordinate %q: %w", p, err)
		}
		vals[i] = v
	}
	return &core.GeoBox{MinLat: vals[0], MinLon: vals[1], MaxLat: vals[2], MaxLon: vals[3]}, nil
}
