package platform

import (
	"testing"

	"github.com/clipsight/clipsight/internal/models"
)

func TestDetect(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		expected    models.Platform
		expectError bool
	}{
		{
			name:     "YouTube watch URL",
			url:      "https://www.youtube.com/watch?v=abc123XYZ00",
			expected: models.PlatformYouTube,
		},
		{
			name:     "YouTube short link",
			url:      "https://youtu.be/abc123XYZ00",
			expected: models.PlatformYouTube,
		},
		{
			name:     "TikTok video URL",
			url:      "https://www.tiktok.com/@someone/video/7234567890123456789",
			expected: models.PlatformTikTok,
		},
		{
			name:     "TikTok short link",
			url:      "https://vm.tiktok.com/ZMabcdef/",
			expected: models.PlatformTikTok,
		},
		{
			name:     "Reddit post",
			url:      "https://www.reddit.com/r/videos/comments/abc123/some_title/",
			expected: models.PlatformReddit,
		},
		{
			name:     "Facebook watch",
			url:      "https://www.facebook.com/watch/?v=123456",
			expected: models.PlatformFacebook,
		},
		{
			name:     "Instagram reel",
			url:      "https://www.instagram.com/reel/Cabcdefghij/",
			expected: models.PlatformInstagram,
		},
		{
			name:     "Twitter status",
			url:      "https://twitter.com/user/status/1234567890",
			expected: models.PlatformTwitter,
		},
		{
			name:     "Uppercase hostname",
			url:      "https://WWW.YOUTUBE.COM/watch?v=abc123XYZ00",
			expected: models.PlatformYouTube,
		},
		{
			name:        "Unsupported hostname",
			url:         "https://vimeo.com/123456",
			expectError: true,
		},
		{
			name:        "Not a URL at all",
			url:         "not-a-url",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			platform, err := Detect(tc.url)
			if tc.expectError {
				if err == nil {
					t.Errorf("expected error for %s, got platform %s", tc.url, platform)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if platform != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, platform)
			}
		})
	}
}

func TestExtractPlatformID(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		platform    models.Platform
		expected    string
		expectError bool
	}{
		{
			name:     "YouTube watch parameter",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			platform: models.PlatformYouTube,
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "YouTube short link",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			platform: models.PlatformYouTube,
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "YouTube embed",
			url:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
			platform: models.PlatformYouTube,
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "YouTube ID shorter than eleven characters",
			url:      "https://www.youtube.com/watch?v=abc123XYZ",
			platform: models.PlatformYouTube,
			expected: "abc123XYZ",
		},
		{
			name:     "TikTok numeric video ID",
			url:      "https://www.tiktok.com/@someone/video/7234567890123456789",
			platform: models.PlatformTikTok,
			expected: "7234567890123456789",
		},
		{
			name:     "TikTok short-link token",
			url:      "https://vm.tiktok.com/ZMabcdef/",
			platform: models.PlatformTikTok,
			expected: "ZMabcdef",
		},
		{
			name:     "Reddit passes the URL through",
			url:      "https://www.reddit.com/r/videos/comments/abc123/some_title/",
			platform: models.PlatformReddit,
			expected: "https://www.reddit.com/r/videos/comments/abc123/some_title/",
		},
		{
			name:     "Tweet ID",
			url:      "https://twitter.com/user/status/1234567890",
			platform: models.PlatformTwitter,
			expected: "1234567890",
		},
		{
			name:     "Instagram reel code",
			url:      "https://www.instagram.com/reel/Cabcdefghij/",
			platform: models.PlatformInstagram,
			expected: "Cabcdefghij",
		},
		{
			name:        "YouTube URL without a video ID",
			url:         "https://www.youtube.com/feed/subscriptions",
			platform:    models.PlatformYouTube,
			expectError: true,
		},
		{
			name:        "Twitter profile URL without status",
			url:         "https://twitter.com/user",
			platform:    models.PlatformTwitter,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ExtractPlatformID(tc.url, tc.platform)
			if tc.expectError {
				if err == nil {
					t.Errorf("expected error, got %q", id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, id)
			}
		})
	}
}

// Classification must be idempotent: a detected URL re-detects to the same
// platform.
func TestDetectRoundTrip(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.tiktok.com/@someone/video/7234567890123456789",
		"https://www.reddit.com/r/videos/comments/abc123/some_title/",
		"https://twitter.com/user/status/1234567890",
	}

	for _, url := range urls {
		first, err := Detect(url)
		if err != nil {
			t.Fatalf("first detection of %s failed: %v", url, err)
		}
		second, err := Detect(url)
		if err != nil {
			t.Fatalf("second detection of %s failed: %v", url, err)
		}
		if first != second {
			t.Errorf("detection of %s not idempotent: %s vs %s", url, first, second)
		}
	}
}
