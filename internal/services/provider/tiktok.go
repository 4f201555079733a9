package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// tikTokPayload is the aweme-style shape shared by TikWM and most RapidAPI
// TikTok scrapers.
type tikTokPayload struct {
	Code int `json:"code"`
	Data struct {
		Title        string `json:"title"`
		Cover        string `json:"cover"`
		Duration     uint32 `json:"duration"`
		PlayCount    uint64 `json:"play_count"`
		DiggCount    uint64 `json:"digg_count"`
		CommentCount uint64 `json:"comment_count"`
		ShareCount   uint64 `json:"share_count"`
		CreateTime   int64  `json:"create_time"`
		Author       struct {
			UniqueID string `json:"unique_id"`
			Nickname string `json:"nickname"`
			Avatar   string `json:"avatar"`
		} `json:"author"`
	} `json:"data"`
}

func (p *tikTokPayload) toMetadata(source string, limit int) *models.VideoMetadata {
	md := &models.VideoMetadata{
		Title:       p.Data.Title,
		Description: p.Data.Title,
		Engagement: models.Engagement{
			Views:    p.Data.PlayCount,
			Likes:    p.Data.DiggCount,
			Comments: p.Data.CommentCount,
			Shares:   p.Data.ShareCount,
		},
		Author: models.Author{
			Username:    p.Data.Author.UniqueID,
			DisplayName: p.Data.Author.Nickname,
			AvatarURL:   p.Data.Author.Avatar,
		},
		Hashtags:        normalize.ExtractHashtags(p.Data.Title, limit),
		DurationSeconds: p.Data.Duration,
		ThumbnailURL:    p.Data.Cover,
	}
	if p.Data.CreateTime > 0 {
		md.PublishedAt = time.Unix(p.Data.CreateTime, 0).UTC()
	}
	md.Provenance = models.Provenance{
		IsAuthentic:      true,
		DataSource:       source,
		ExtractionMethod: "rapidapi",
	}
	return md
}

// rapidAPITikTok tries each configured RapidAPI host in sequence inside one
// adapter call; the variants are interchangeable plans for the same data.
type rapidAPITikTok struct {
	deps Deps
}

func NewRapidAPITikTok(deps Deps) Adapter {
	return &rapidAPITikTok{deps: deps}
}

func (a *rapidAPITikTok) Name() string               { return "TikTok RapidAPI" }
func (a *rapidAPITikTok) Authentic() bool            { return true }
func (a *rapidAPITikTok) RequiredCredential() string { return "RAPIDAPI_KEY" }
func (a *rapidAPITikTok) LastResort() bool           { return false }

func (a *rapidAPITikTok) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	headers := map[string]string{
		"x-rapidapi-key": a.deps.Credentials.RapidAPIKey,
	}

	var lastErr error
	for _, host := range a.deps.Extraction.RapidAPITikTokHosts {
		headers["x-rapidapi-host"] = host
		requestURL := fmt.Sprintf("https://%s/?url=%s&hd=1", host, url.QueryEscape(in.URL))

		var payload tikTokPayload
		if err := getJSON(ctx, a.deps.HTTPClient, requestURL, headers, &payload); err != nil {
			lastErr = err
			continue
		}
		if payload.Code != 0 || payload.Data.Title == "" {
			lastErr = fmt.Errorf("%s returned code %d", host, payload.Code)
			continue
		}
		return payload.toMetadata(a.Name(), a.deps.Extraction.HashtagLimit), nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no hosts configured")
	}
	return nil, wrapError(a.Name(), lastErr, isRetriable(lastErr))
}

// tikwmAPI is the free public TikWM endpoint: same payload shape as the
// RapidAPI scrapers but uncredentialed, so it never claims authenticity.
type tikwmAPI struct {
	deps Deps
}

func NewTikWMAPI(deps Deps) Adapter {
	return &tikwmAPI{deps: deps}
}

func (a *tikwmAPI) Name() string               { return "TikWM" }
func (a *tikwmAPI) Authentic() bool            { return false }
func (a *tikwmAPI) RequiredCredential() string { return "" }
func (a *tikwmAPI) LastResort() bool           { return false }

func (a *tikwmAPI) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	requestURL := fmt.Sprintf("https://www.tikwm.com/api/?url=%s", url.QueryEscape(in.URL))

	var payload tikTokPayload
	if err := getJSON(ctx, a.deps.HTTPClient, requestURL, nil, &payload); err != nil {
		return nil, wrapError(a.Name(), err, isRetriable(err))
	}
	if payload.Code != 0 || payload.Data.Title == "" {
		return nil, newError(a.Name(), fmt.Sprintf("tikwm returned code %d", payload.Code), true)
	}

	md := payload.toMetadata(a.Name(), a.deps.Extraction.HashtagLimit)
	md.Provenance.IsAuthentic = false
	md.Provenance.ExtractionMethod = "public_api"
	return md, nil
}
