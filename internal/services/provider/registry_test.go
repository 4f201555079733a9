package provider

import (
	"testing"

	"github.com/clipsight/clipsight/internal/models"
)

func TestForPlatformChainOrder(t *testing.T) {
	deps := scraperDeps()

	tests := []struct {
		platform models.Platform
		names    []string
	}{
		{
			platform: models.PlatformYouTube,
			names: []string{
				"YouTube Data API v3",
				"YouTube InnerTube",
				"Invidious",
				"YouTube oEmbed",
				"YouTube Open Graph scrape",
			},
		},
		{
			platform: models.PlatformTikTok,
			names: []string{
				"TikTok RapidAPI",
				"TikWM",
				"TikTok oEmbed",
				"TikTok Open Graph scrape",
			},
		},
		{
			platform: models.PlatformReddit,
			names: []string{
				"Reddit JSON API",
				"Reddit oEmbed",
				"Reddit Open Graph scrape",
			},
		},
		{
			platform: models.PlatformTwitter,
			names: []string{
				"Twitter Syndication",
				"Twitter oEmbed",
				"Twitter Open Graph scrape",
			},
		},
		{
			platform: models.PlatformFacebook,
			names: []string{
				"Facebook Graph oEmbed",
				"Facebook Open Graph scrape",
			},
		},
		{
			platform: models.PlatformInstagram,
			names: []string{
				"Instagram RapidAPI",
				"Instagram Open Graph scrape",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			adapters := ForPlatform(tt.platform, deps)
			if len(adapters) != len(tt.names) {
				t.Fatalf("expected %d adapters, got %d", len(tt.names), len(adapters))
			}
			for i, want := range tt.names {
				if got := adapters[i].Name(); got != want {
					t.Errorf("position %d: expected %q, got %q", i, want, got)
				}
			}
		})
	}
}

func TestForPlatformCredentialsAndFlags(t *testing.T) {
	deps := scraperDeps()

	wantCredential := map[string]string{
		"YouTube Data API v3":   "YOUTUBE_API_KEY",
		"TikTok RapidAPI":       "RAPIDAPI_KEY",
		"Instagram RapidAPI":    "RAPIDAPI_KEY",
		"Facebook Graph oEmbed": "FACEBOOK_ACCESS_TOKEN",
	}

	for _, platform := range []models.Platform{
		models.PlatformYouTube,
		models.PlatformTikTok,
		models.PlatformReddit,
		models.PlatformFacebook,
		models.PlatformInstagram,
		models.PlatformTwitter,
	} {
		for _, adapter := range ForPlatform(platform, deps) {
			want := wantCredential[adapter.Name()]
			if got := adapter.RequiredCredential(); got != want {
				t.Errorf("%s: expected credential %q, got %q", adapter.Name(), want, got)
			}
			// Only the thin metadata sources get the sequential retry.
			isTail := adapter.LastResort()
			name := adapter.Name()
			wantTail := name == platformLabel(platform)+" Open Graph scrape" ||
				name == platformLabel(platform)+" oEmbed"
			if isTail != wantTail {
				t.Errorf("%s: expected LastResort=%v, got %v", name, wantTail, isTail)
			}
		}
	}
}

func TestForPlatformAuthenticity(t *testing.T) {
	authentic := map[string]bool{
		"YouTube Data API v3":   true,
		"TikTok RapidAPI":       true,
		"Instagram RapidAPI":    true,
		"Reddit JSON API":       true,
		"Facebook Graph oEmbed": true,
	}

	for _, platform := range []models.Platform{
		models.PlatformYouTube,
		models.PlatformTikTok,
		models.PlatformReddit,
		models.PlatformFacebook,
		models.PlatformInstagram,
		models.PlatformTwitter,
	} {
		for _, adapter := range ForPlatform(platform, scraperDeps()) {
			if got := adapter.Authentic(); got != authentic[adapter.Name()] {
				t.Errorf("%s: expected authentic=%v, got %v", adapter.Name(), authentic[adapter.Name()], got)
			}
		}
	}
}
