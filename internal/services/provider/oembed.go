package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// oEmbedEndpoints maps each platform to its public oEmbed endpoint. oEmbed
// is metadata-light: no engagement numbers, never authentic.
var oEmbedEndpoints = map[models.Platform]struct {
	label    string
	endpoint string
}{
	models.PlatformYouTube: {"YouTube", "https://www.youtube.com/oembed"},
	models.PlatformTikTok:  {"TikTok", "https://www.tiktok.com/oembed"},
	models.PlatformReddit:  {"Reddit", "https://www.reddit.com/oembed"},
	models.PlatformTwitter: {"Twitter", "https://publish.twitter.com/oembed"},
}

type oEmbed struct {
	deps     Deps
	label    string
	endpoint string
}

// NewOEmbed returns the oEmbed adapter for the platform, or nil when the
// platform has no public oEmbed endpoint.
func NewOEmbed(platform models.Platform, deps Deps) Adapter {
	entry, ok := oEmbedEndpoints[platform]
	if !ok {
		return nil
	}
	return &oEmbed{deps: deps, label: entry.label, endpoint: entry.endpoint}
}

func (a *oEmbed) Name() string               { return a.label + " oEmbed" }
func (a *oEmbed) Authentic() bool            { return false }
func (a *oEmbed) RequiredCredential() string { return "" }
func (a *oEmbed) LastResort() bool           { return true }

type oEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderName string `json:"provider_name"`
}

func (a *oEmbed) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	requestURL := fmt.Sprintf("%s?url=%s&format=json", a.endpoint, url.QueryEscape(in.URL))

	var payload oEmbedResponse
	if err := getJSON(ctx, a.deps.HTTPClient, requestURL, nil, &payload); err != nil {
		return nil, wrapError(a.Name(), err, isRetriable(err))
	}
	if payload.Title == "" && payload.AuthorName == "" {
		return nil, newError(a.Name(), "empty oEmbed payload", false)
	}

	return &models.VideoMetadata{
		Title: payload.Title,
		Author: models.Author{
			Username:    payload.AuthorName,
			DisplayName: payload.AuthorName,
		},
		Hashtags:     normalize.ExtractHashtags(payload.Title, a.deps.Extraction.HashtagLimit),
		ThumbnailURL: payload.ThumbnailURL,
		Provenance: models.Provenance{
			IsAuthentic:      false,
			DataSource:       a.Name(),
			ExtractionMethod: "oembed",
		},
	}, nil
}
