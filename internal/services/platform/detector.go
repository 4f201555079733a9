package platform

import (
	"regexp"
	"strings"

	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/utils"
)

// hostnameTable maps URL substrings to platforms. The first match in table
// order wins, which keeps classification deterministic.
var hostnameTable = []struct {
	needle   string
	platform models.Platform
}{
	{"youtube.com", models.PlatformYouTube},
	{"youtu.be", models.PlatformYouTube},
	{"vm.tiktok.com", models.PlatformTikTok},
	{"tiktok.com", models.PlatformTikTok},
	{"reddit.com", models.PlatformReddit},
	{"facebook.com", models.PlatformFacebook},
	{"fb.watch", models.PlatformFacebook},
	{"instagram.com", models.PlatformInstagram},
	{"twitter.com", models.PlatformTwitter},
	{"x.com", models.PlatformTwitter},
}

var (
	youtubeIDRegex   = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([a-zA-Z0-9_-]{6,11})`)
	tiktokIDRegex    = regexp.MustCompile(`/video/(\d+)`)
	tiktokShortRegex = regexp.MustCompile(`vm\.tiktok\.com/([A-Za-z0-9]+)`)
	tweetIDRegex     = regexp.MustCompile(`/status/(\d+)`)
	instagramRegex   = regexp.MustCompile(`instagram\.com/(?:reel|reels|p|tv)/([A-Za-z0-9_-]+)`)
)

// Detect classifies a URL into a known platform. It never performs network
// I/O; an unknown hostname fails here before any adapter runs.
func Detect(url string) (models.Platform, error) {
	lowered := strings.ToLower(url)
	for _, entry := range hostnameTable {
		if strings.Contains(lowered, entry.needle) {
			return entry.platform, nil
		}
	}
	return models.PlatformUnknown, utils.NewUnsupportedPlatformError(url)
}

// ExtractPlatformID pulls the platform-native video identifier out of the URL.
// Reddit keeps the full URL as its identifier: the adapter appends the .json
// suffix itself.
func ExtractPlatformID(url string, platform models.Platform) (string, error) {
	switch platform {
	case models.PlatformYouTube:
		if matches := youtubeIDRegex.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	case models.PlatformTikTok:
		if matches := tiktokIDRegex.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
		if matches := tiktokShortRegex.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	case models.PlatformTwitter:
		if matches := tweetIDRegex.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	case models.PlatformInstagram:
		if matches := instagramRegex.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	case models.PlatformReddit, models.PlatformFacebook:
		return url, nil
	}
	return "", utils.NewMalformedURLError(url, string(platform))
}
