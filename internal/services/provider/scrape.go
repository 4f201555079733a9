package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// openGraphScraper is the last line of the fallback chain: fetch the page
// HTML and read Open Graph meta tags out of it. Works on any platform,
// yields thin data, never authentic.
type openGraphScraper struct {
	deps  Deps
	label string
}

func NewOpenGraphScraper(platform models.Platform, deps Deps) Adapter {
	return &openGraphScraper{deps: deps, label: platformLabel(platform)}
}

func (a *openGraphScraper) Name() string               { return a.label + " Open Graph scrape" }
func (a *openGraphScraper) Authentic() bool            { return false }
func (a *openGraphScraper) RequiredCredential() string { return "" }
func (a *openGraphScraper) LastResort() bool           { return true }

var (
	ogTitleRegex       = regexp.MustCompile(`<meta[^>]+property="og:title"[^>]+content="([^"]*)"`)
	ogDescriptionRegex = regexp.MustCompile(`<meta[^>]+property="og:description"[^>]+content="([^"]*)"`)
	ogImageRegex       = regexp.MustCompile(`<meta[^>]+property="og:image"[^>]+content="([^"]*)"`)
	ogDurationRegex    = regexp.MustCompile(`<meta[^>]+property="og:video:duration"[^>]+content="(\d+)"`)
	twitterTitleRegex  = regexp.MustCompile(`<meta[^>]+name="twitter:title"[^>]+content="([^"]*)"`)
	htmlTitleRegex     = regexp.MustCompile(`<title[^>]*>([^<]+)</title>`)
)

func (a *openGraphScraper) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.URL, nil)
	if err != nil {
		return nil, wrapError(a.Name(), err, false)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := a.deps.HTTPClient.Do(req)
	if err != nil {
		return nil, wrapError(a.Name(), err, true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newError(a.Name(), fmt.Sprintf("page returned status %d", resp.StatusCode), resp.StatusCode >= http.StatusInternalServerError)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, wrapError(a.Name(), err, true)
	}
	html := string(body)

	title := firstMatch(html, ogTitleRegex, twitterTitleRegex, htmlTitleRegex)
	if title == "" {
		return nil, newError(a.Name(), "no Open Graph metadata found", false)
	}

	description := firstMatch(html, ogDescriptionRegex)

	md := &models.VideoMetadata{
		Title:        title,
		Description:  description,
		Hashtags:     normalize.ExtractHashtags(title+" "+description, a.deps.Extraction.HashtagLimit),
		ThumbnailURL: firstMatch(html, ogImageRegex),
		Provenance: models.Provenance{
			IsAuthentic:      false,
			DataSource:       a.Name(),
			ExtractionMethod: "scrape",
		},
	}

	if raw := firstMatch(html, ogDurationRegex); raw != "" {
		if seconds, err := strconv.ParseUint(raw, 10, 32); err == nil {
			md.DurationSeconds = uint32(seconds)
		}
	}

	return md, nil
}

// firstMatch returns the first capture group of the first regex that hits.
func firstMatch(html string, patterns ...*regexp.Regexp) string {
	for _, pattern := range patterns {
		if matches := pattern.FindStringSubmatch(html); len(matches) > 1 {
			return matches[1]
		}
	}
	return ""
}

func platformLabel(platform models.Platform) string {
	switch platform {
	case models.PlatformYouTube:
		return "YouTube"
	case models.PlatformTikTok:
		return "TikTok"
	case models.PlatformReddit:
		return "Reddit"
	case models.PlatformFacebook:
		return "Facebook"
	case models.PlatformInstagram:
		return "Instagram"
	case models.PlatformTwitter:
		return "Twitter"
	default:
		return "Unknown"
	}
}
