package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// youtubeDataAPI is the official Data API v3 adapter. It chains a video
// lookup with a channel lookup to fill in author stats.
type youtubeDataAPI struct {
	deps Deps
}

func NewYouTubeDataAPI(deps Deps) Adapter {
	return &youtubeDataAPI{deps: deps}
}

func (a *youtubeDataAPI) Name() string               { return "YouTube Data API v3" }
func (a *youtubeDataAPI) Authentic() bool            { return true }
func (a *youtubeDataAPI) RequiredCredential() string { return "YOUTUBE_API_KEY" }
func (a *youtubeDataAPI) LastResort() bool           { return false }

type ytVideoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			PublishedAt  time.Time `json:"publishedAt"`
			ChannelID    string    `json:"channelId"`
			ChannelTitle string    `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
			Tags []string `json:"tags"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type ytChannelListResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			CustomURL   string `json:"customUrl"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (a *youtubeDataAPI) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	key := a.deps.Credentials.YouTubeAPIKey

	videoURL := fmt.Sprintf(
		"https://www.googleapis.com/youtube/v3/videos?part=snippet,statistics,contentDetails&id=%s&key=%s",
		url.QueryEscape(in.ID), url.QueryEscape(key))

	var videos ytVideoListResponse
	if err := getJSON(ctx, a.deps.HTTPClient, videoURL, nil, &videos); err != nil {
		return nil, wrapError(a.Name(), err, isRetriable(err))
	}
	if len(videos.Items) == 0 {
		return nil, newError(a.Name(), "video not found", false)
	}
	item := videos.Items[0]

	md := &models.VideoMetadata{
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Engagement: models.Engagement{
			Views:    parseCount(item.Statistics.ViewCount),
			Likes:    parseCount(item.Statistics.LikeCount),
			Comments: parseCount(item.Statistics.CommentCount),
		},
		Author: models.Author{
			Username:    item.Snippet.ChannelTitle,
			DisplayName: item.Snippet.ChannelTitle,
		},
		Hashtags:        videoHashtags(item.Snippet.Title, item.Snippet.Description, item.Snippet.Tags, a.deps.Extraction.HashtagLimit),
		PublishedAt:     item.Snippet.PublishedAt,
		DurationSeconds: normalize.ParseISO8601Duration(item.ContentDetails.Duration),
		ThumbnailURL:    firstNonEmpty(item.Snippet.Thumbnails.High.URL, item.Snippet.Thumbnails.Default.URL),
		Provenance: models.Provenance{
			IsAuthentic:      true,
			DataSource:       a.Name(),
			ExtractionMethod: "official_api",
		},
	}

	// Second chained call: channel stats. Failure here degrades the author
	// block instead of failing the whole extraction.
	if item.Snippet.ChannelID != "" {
		channelURL := fmt.Sprintf(
			"https://www.googleapis.com/youtube/v3/channels?part=snippet,statistics&id=%s&key=%s",
			url.QueryEscape(item.Snippet.ChannelID), url.QueryEscape(key))

		var channels ytChannelListResponse
		if err := getJSON(ctx, a.deps.HTTPClient, channelURL, nil, &channels); err == nil && len(channels.Items) > 0 {
			ch := channels.Items[0]
			md.Author.DisplayName = ch.Snippet.Title
			md.Author.FollowerCount = parseCount(ch.Statistics.SubscriberCount)
			md.Author.AvatarURL = ch.Snippet.Thumbnails.Default.URL
			md.Author.Bio = ch.Snippet.Description
			if ch.Snippet.CustomURL != "" {
				md.Author.Username = ch.Snippet.CustomURL
			}
		}
	}

	return md, nil
}

// invidiousAPI walks a list of Invidious-compatible mirrors; the first
// instance that answers wins.
type invidiousAPI struct {
	deps Deps
}

func NewInvidiousAPI(deps Deps) Adapter {
	return &invidiousAPI{deps: deps}
}

func (a *invidiousAPI) Name() string               { return "Invidious" }
func (a *invidiousAPI) Authentic() bool            { return false }
func (a *invidiousAPI) RequiredCredential() string { return "" }
func (a *invidiousAPI) LastResort() bool           { return false }

type invidiousVideoResponse struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ViewCount       uint64   `json:"viewCount"`
	LikeCount       uint64   `json:"likeCount"`
	Author          string   `json:"author"`
	LengthSeconds   uint32   `json:"lengthSeconds"`
	Published       int64    `json:"published"`
	Keywords        []string `json:"keywords"`
	VideoThumbnails []struct {
		URL string `json:"url"`
	} `json:"videoThumbnails"`
}

func (a *invidiousAPI) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	var lastErr error
	for _, instance := range a.deps.Extraction.InvidiousInstances {
		apiURL := fmt.Sprintf("%s/api/v1/videos/%s", instance, url.PathEscape(in.ID))

		var video invidiousVideoResponse
		if err := getJSON(ctx, a.deps.HTTPClient, apiURL, nil, &video); err != nil {
			lastErr = err
			continue
		}
		if video.Title == "" {
			lastErr = fmt.Errorf("empty response from %s", instance)
			continue
		}

		md := &models.VideoMetadata{
			Title:       video.Title,
			Description: video.Description,
			Engagement: models.Engagement{
				Views: video.ViewCount,
				Likes: video.LikeCount,
			},
			Author: models.Author{
				Username:    video.Author,
				DisplayName: video.Author,
			},
			Hashtags:        videoHashtags(video.Title, video.Description, video.Keywords, a.deps.Extraction.HashtagLimit),
			DurationSeconds: video.LengthSeconds,
			Provenance: models.Provenance{
				IsAuthentic:      false,
				DataSource:       a.Name(),
				ExtractionMethod: "open_mirror",
			},
		}
		if video.Published > 0 {
			md.PublishedAt = time.Unix(video.Published, 0).UTC()
		}
		if len(video.VideoThumbnails) > 0 {
			md.ThumbnailURL = video.VideoThumbnails[0].URL
		}
		return md, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no instances configured")
	}
	return nil, wrapError(a.Name(), lastErr, true)
}

// videoHashtags prefers tags found in the visible text, topping up from
// provider keyword lists when the text has none.
func videoHashtags(title, description string, keywords []string, limit int) []string {
	hashtags := normalize.ExtractHashtags(title+" "+description, limit)
	if len(hashtags) > 0 {
		return hashtags
	}
	if limit <= 0 {
		limit = normalize.DefaultHashtagLimit
	}
	seen := make(map[string]struct{})
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		hashtags = append(hashtags, kw)
		if len(hashtags) >= limit {
			break
		}
	}
	return hashtags
}

func parseCount(s string) uint64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
