package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies the social network a video URL belongs to.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformReddit    Platform = "reddit"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformUnknown   Platform = "unknown"
)

type Engagement struct {
	Views    uint64 `json:"views"`
	Likes    uint64 `json:"likes"`
	Comments uint64 `json:"comments"`
	Shares   uint64 `json:"shares"`
}

type Author struct {
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	FollowerCount uint64 `json:"follower_count"`
	Verified      bool   `json:"verified"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Bio           string `json:"bio,omitempty"`
}

// Provenance records where the metadata came from. IsAuthentic is declared by
// the adapter that produced the record and is not independently verified.
type Provenance struct {
	IsAuthentic      bool   `json:"is_authentic"`
	DataSource       string `json:"data_source"`
	ExtractionMethod string `json:"extraction_method"`
}

// VideoMetadata is the normalized result of one extraction call.
type VideoMetadata struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Engagement      Engagement `json:"engagement"`
	Author          Author     `json:"author"`
	Hashtags        []string   `json:"hashtags"`
	Platform        Platform   `json:"platform"`
	Rating          int        `json:"rating"`
	PublishedAt     time.Time  `json:"published_at"`
	DurationSeconds uint32     `json:"duration_seconds"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	SourceURL       string     `json:"source_url"`
	Provenance      Provenance `json:"provenance"`
}

type AttemptOutcome string

const (
	AttemptSuccess       AttemptOutcome = "success"
	AttemptFailed        AttemptOutcome = "failed"
	AttemptNotConfigured AttemptOutcome = "not_configured"
	AttemptNotAttempted  AttemptOutcome = "not_attempted"
)

// ExtractionAttempt is one diagnostic record per adapter call.
type ExtractionAttempt struct {
	Method      string         `json:"method"`
	Outcome     AttemptOutcome `json:"outcome"`
	ErrorDetail string         `json:"error_detail,omitempty"`
}

// ExtractionReport accumulates what the resolver tried and why.
type ExtractionReport struct {
	Attempts             []ExtractionAttempt `json:"attempts"`
	SuccessfulMethod     string              `json:"successful_method,omitempty"`
	RecommendedActions   []string            `json:"recommended_actions,omitempty"`
	CredentialsAvailable []string            `json:"credentials_available"`
}

// ExtractionSnapshot is the append-only observability record stored per
// successful extraction when the snapshot store is enabled.
type ExtractionSnapshot struct {
	ID               uuid.UUID `json:"id" bson:"id"`
	SourceURL        string    `json:"source_url" bson:"source_url"`
	Platform         Platform  `json:"platform" bson:"platform"`
	Title            string    `json:"title" bson:"title"`
	DataSource       string    `json:"data_source" bson:"data_source"`
	ExtractionMethod string    `json:"extraction_method" bson:"extraction_method"`
	IsAuthentic      bool      `json:"is_authentic" bson:"is_authentic"`
	Rating           int       `json:"rating" bson:"rating"`
	Views            uint64    `json:"views" bson:"views"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

type AnalyzeVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

type AnalyzeVideoResponse struct {
	Metadata *VideoMetadata    `json:"metadata"`
	Report   *ExtractionReport `json:"report"`
}

type DetectPlatformRequest struct {
	URL string `json:"url" binding:"required"`
}

type DetectPlatformResponse struct {
	Platform   Platform `json:"platform"`
	PlatformID string   `json:"platform_id"`
}

type HistoryResponse struct {
	Total     int                  `json:"total"`
	Enabled   bool                 `json:"enabled"`
	Snapshots []ExtractionSnapshot `json:"snapshots"`
}
