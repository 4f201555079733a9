package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// rapidAPIInstagram tries each configured RapidAPI Instagram host in
// sequence inside one adapter call.
type rapidAPIInstagram struct {
	deps Deps
}

func NewRapidAPIInstagram(deps Deps) Adapter {
	return &rapidAPIInstagram{deps: deps}
}

func (a *rapidAPIInstagram) Name() string               { return "Instagram RapidAPI" }
func (a *rapidAPIInstagram) Authentic() bool            { return true }
func (a *rapidAPIInstagram) RequiredCredential() string { return "RAPIDAPI_KEY" }
func (a *rapidAPIInstagram) LastResort() bool           { return false }

type instagramPostInfo struct {
	Data struct {
		Caption struct {
			Text string `json:"text"`
		} `json:"caption"`
		Metrics struct {
			LikeCount    uint64 `json:"like_count"`
			CommentCount uint64 `json:"comment_count"`
			PlayCount    uint64 `json:"play_count"`
		} `json:"metrics"`
		User struct {
			Username      string `json:"username"`
			FullName      string `json:"full_name"`
			IsVerified    bool   `json:"is_verified"`
			ProfilePicURL string `json:"profile_pic_url"`
			FollowerCount uint64 `json:"follower_count"`
		} `json:"user"`
		VideoDuration float64 `json:"video_duration"`
		ThumbnailURL  string  `json:"thumbnail_url"`
		TakenAt       int64   `json:"taken_at"`
	} `json:"data"`
}

func (a *rapidAPIInstagram) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	headers := map[string]string{
		"x-rapidapi-key": a.deps.Credentials.RapidAPIKey,
	}

	var lastErr error
	for _, host := range a.deps.Extraction.RapidAPIInstagramHosts {
		headers["x-rapidapi-host"] = host
		requestURL := fmt.Sprintf("https://%s/v1/post_info?code_or_id_or_url=%s", host, url.QueryEscape(in.ID))

		var payload instagramPostInfo
		if err := getJSON(ctx, a.deps.HTTPClient, requestURL, headers, &payload); err != nil {
			lastErr = err
			continue
		}
		if payload.Data.User.Username == "" {
			lastErr = fmt.Errorf("%s returned an empty post", host)
			continue
		}

		caption := payload.Data.Caption.Text
		md := &models.VideoMetadata{
			Title:       caption,
			Description: caption,
			Engagement: models.Engagement{
				Views:    payload.Data.Metrics.PlayCount,
				Likes:    payload.Data.Metrics.LikeCount,
				Comments: payload.Data.Metrics.CommentCount,
			},
			Author: models.Author{
				Username:      payload.Data.User.Username,
				DisplayName:   payload.Data.User.FullName,
				Verified:      payload.Data.User.IsVerified,
				AvatarURL:     payload.Data.User.ProfilePicURL,
				FollowerCount: payload.Data.User.FollowerCount,
			},
			Hashtags:        normalize.ExtractHashtags(caption, a.deps.Extraction.HashtagLimit),
			DurationSeconds: uint32(payload.Data.VideoDuration),
			ThumbnailURL:    payload.Data.ThumbnailURL,
			Provenance: models.Provenance{
				IsAuthentic:      true,
				DataSource:       a.Name(),
				ExtractionMethod: "rapidapi",
			},
		}
		if payload.Data.TakenAt > 0 {
			md.PublishedAt = time.Unix(payload.Data.TakenAt, 0).UTC()
		}
		return md, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no hosts configured")
	}
	return nil, wrapError(a.Name(), lastErr, isRetriable(lastErr))
}
