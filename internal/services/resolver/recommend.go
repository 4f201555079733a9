package resolver

import (
	"github.com/clipsight/clipsight/internal/models"
)

// credentialActions names the remediation for each missing credential, keyed
// by the platforms it unlocks.
var credentialActions = map[models.Platform][]struct {
	credential string
	action     string
}{
	models.PlatformYouTube: {
		{"YOUTUBE_API_KEY", "Configure YOUTUBE_API_KEY to enable the YouTube Data API adapter"},
	},
	models.PlatformTikTok: {
		{"RAPIDAPI_KEY", "Subscribe to a RapidAPI TikTok plan and set RAPIDAPI_KEY"},
	},
	models.PlatformInstagram: {
		{"RAPIDAPI_KEY", "Subscribe to a RapidAPI Instagram plan and set RAPIDAPI_KEY"},
	},
	models.PlatformFacebook: {
		{"FACEBOOK_ACCESS_TOKEN", "Set FACEBOOK_ACCESS_TOKEN to enable the Graph oEmbed adapter"},
	},
}

// platformActions are always suggested on total failure for the platform.
var platformActions = map[models.Platform][]string{
	models.PlatformYouTube: {
		"Check that the configured Invidious instances are reachable",
	},
	models.PlatformTikTok: {
		"Verify the video is public and not region-locked",
	},
	models.PlatformReddit: {
		"Verify the post is public and the subreddit is not quarantined",
	},
}

// recommendedActions builds the remediation list for a total failure. The
// result is never empty: a generic reachability hint closes the list.
func recommendedActions(platform models.Platform, available []string) []string {
	actions := []string{}

	for _, entry := range credentialActions[platform] {
		if !hasCredential(available, entry.credential) {
			actions = append(actions, entry.action)
		}
	}

	actions = append(actions, platformActions[platform]...)
	actions = append(actions, "Verify the video URL is publicly reachable")

	return actions
}
