package provider

import (
	"context"

	"github.com/kkdai/youtube/v2"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
)

// innerTube pulls metadata through YouTube's player API via the kkdai
// client. No credential needed, but the data is not from a licensed API
// surface, so it never claims authenticity.
type innerTube struct {
	deps   Deps
	client *youtube.Client
}

func NewInnerTube(deps Deps) Adapter {
	return &innerTube{
		deps: deps,
		client: &youtube.Client{
			HTTPClient: deps.HTTPClient,
		},
	}
}

func (a *innerTube) Name() string               { return "YouTube InnerTube" }
func (a *innerTube) Authentic() bool            { return false }
func (a *innerTube) RequiredCredential() string { return "" }
func (a *innerTube) LastResort() bool           { return false }

func (a *innerTube) Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error) {
	video, err := a.client.GetVideoContext(ctx, in.ID)
	if err != nil {
		return nil, wrapError(a.Name(), err, true)
	}

	md := &models.VideoMetadata{
		Title:       video.Title,
		Description: video.Description,
		Author: models.Author{
			Username:    video.Author,
			DisplayName: video.Author,
		},
		Hashtags:        normalize.ExtractHashtags(video.Title+" "+video.Description, a.deps.Extraction.HashtagLimit),
		DurationSeconds: uint32(video.Duration.Seconds()),
		Provenance: models.Provenance{
			IsAuthentic:      false,
			DataSource:       a.Name(),
			ExtractionMethod: "player_api",
		},
	}

	if len(video.Thumbnails) > 0 {
		md.ThumbnailURL = video.Thumbnails[0].URL
	}

	return md, nil
}
