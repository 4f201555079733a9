package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// redditJSONAPI reads the public listing API: the post URL with a .json
// suffix. No credential, but it is Reddit's own API, so it counts as
// authentic.
type redditJSONAPI struct {
	deps Deps
}

func NewRedditJSONAPI(deps Deps) Adapter {
	return &redditJSONAPI{deps: deps}
}

func (a *redditJSONAPI) Name() string               { return "Reddit JSON API" }
func (a *redditJSONAPI) Authentic() bool            { return true }
func (a *redditJSONAPI) RequiredCredential() string { return "" }
func (a *redditJSONAPI) LastResort() bool           { return false }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Author      string  `json:"author"`
				Ups         uint64  `json:"ups"`
				NumComments uint64  `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Thumbnail   string  `json:"thumbnail"`
				Subreddit   string  `json:"subreddit"`
				Media       struct {
					RedditVideo struct {
						Duration uint32 `json:"duration"`
					} `json:"reddit_video"`
				} `json:"media"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (a *redditJSONAPI) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	// The detector passes the full post URL through; the .json suffix is
	// appended here.
	requestURL := strings.TrimSuffix(in.ID, "/") + ".json"

	var listings []redditListing
	if err := getJSON(ctx, a.deps.HTTPClient, requestURL, nil, &listings); err != nil {
		return nil, wrapError(a.Name(), err, isRetriable(err))
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return nil, newError(a.Name(), "post not found in listing", false)
	}
	post := listings[0].Data.Children[0].Data

	md := &models.VideoMetadata{
		Title:       post.Title,
		Description: post.Selftext,
		Engagement: models.Engagement{
			Likes:    post.Ups,
			Comments: post.NumComments,
		},
		Author: models.Author{
			Username:    post.Author,
			DisplayName: post.Author,
		},
		Hashtags:        normalize.ExtractHashtags(post.Title+" "+post.Selftext, a.deps.Extraction.HashtagLimit),
		DurationSeconds: post.Media.RedditVideo.Duration,
		Provenance: models.Provenance{
			IsAuthentic:      true,
			DataSource:       a.Name(),
			ExtractionMethod: "official_api",
		},
	}
	if post.CreatedUTC > 0 {
		md.PublishedAt = time.Unix(int64(post.CreatedUTC), 0).UTC()
	}
	if strings.HasPrefix(post.Thumbnail, "http") {
		md.ThumbnailURL = post.Thumbnail
	}
	if post.Subreddit != "" {
		md.Author.Bio = fmt.Sprintf("r/%s", post.Subreddit)
	}

	return md, nil
}
