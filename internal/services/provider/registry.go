package provider

import (
	"github.com/clipsight/clipsight/internal/models"
)

// ForPlatform builds the fallback chain for a platform. List order encodes
// priority and is the resolver's tie-break: official API, then specialized
// third-party, then general third-party, then open mirrors, then oEmbed,
// then scraping. Callers must not reorder it.
func ForPlatform(platform models.Platform, deps Deps) []Adapter {
	var adapters []Adapter

	switch platform {
	case models.PlatformYouTube:
		adapters = append(adapters,
			NewYouTubeDataAPI(deps),
			NewInnerTube(deps),
			NewInvidiousAPI(deps),
		)
	case models.PlatformTikTok:
		adapters = append(adapters,
			NewRapidAPITikTok(deps),
			NewTikWMAPI(deps),
		)
	case models.PlatformReddit:
		adapters = append(adapters,
			NewRedditJSONAPI(deps),
		)
	case models.PlatformTwitter:
		adapters = append(adapters,
			NewTwitterSyndication(deps),
		)
	case models.PlatformFacebook:
		adapters = append(adapters,
			NewFacebookGraphOEmbed(deps),
		)
	case models.PlatformInstagram:
		adapters = append(adapters,
			NewRapidAPIInstagram(deps),
		)
	}

	if oembed := NewOEmbed(platform, deps); oembed != nil {
		adapters = append(adapters, oembed)
	}
	adapters = append(adapters, NewOpenGraphScraper(platform, deps))

	return adapters
}
