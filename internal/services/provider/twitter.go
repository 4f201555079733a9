package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// twitterSyndication reads the syndication CDN used by embedded tweets. It
// is a public, uncredentialed surface.
type twitterSyndication struct {
	deps Deps
}

func NewTwitterSyndication(deps Deps) Adapter {
	return &twitterSyndication{deps: deps}
}

func (a *twitterSyndication) Name() string               { return "Twitter Syndication" }
func (a *twitterSyndication) Authentic() bool            { return false }
func (a *twitterSyndication) RequiredCredential() string { return "" }
func (a *twitterSyndication) LastResort() bool           { return false }

type tweetResult struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	User      struct {
		Name            string `json:"name"`
		ScreenName      string `json:"screen_name"`
		ProfileImageURL string `json:"profile_image_url_https"`
		Verified        bool   `json:"verified"`
	} `json:"user"`
	FavoriteCount     uint64 `json:"favorite_count"`
	ConversationCount uint64 `json:"conversation_count"`
	MediaDetails      []struct {
		MediaURLHTTPS string `json:"media_url_https"`
		Type          string `json:"type"`
	} `json:"mediaDetails"`
}

func (a *twitterSyndication) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	requestURL := fmt.Sprintf("https://cdn.syndication.twimg.com/tweet-result?id=%s&lang=en", url.QueryEscape(in.ID))

	var tweet tweetResult
	if err := getJSON(ctx, a.deps.HTTPClient, requestURL, nil, &tweet); err != nil {
		return nil, wrapError(a.Name(), err, isRetriable(err))
	}
	if tweet.Text == "" && tweet.User.ScreenName == "" {
		return nil, newError(a.Name(), "tweet not found", false)
	}

	md := &models.VideoMetadata{
		Title:       tweet.Text,
		Description: tweet.Text,
		Engagement: models.Engagement{
			Likes:    tweet.FavoriteCount,
			Comments: tweet.ConversationCount,
		},
		Author: models.Author{
			Username:    tweet.User.ScreenName,
			DisplayName: tweet.User.Name,
			Verified:    tweet.User.Verified,
			AvatarURL:   tweet.User.ProfileImageURL,
		},
		Hashtags: normalize.ExtractHashtags(tweet.Text, a.deps.Extraction.HashtagLimit),
		Provenance: models.Provenance{
			IsAuthentic:      false,
			DataSource:       a.Name(),
			ExtractionMethod: "public_api",
		},
	}
	if tweet.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
			md.PublishedAt = ts.UTC()
		}
	}
	if len(tweet.MediaDetails) > 0 {
		md.ThumbnailURL = tweet.MediaDetails[0].MediaURLHTTPS
	}

	return md, nil
}
