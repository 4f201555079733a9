package resolver

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/provider"
	"github.com/clipsight/clipsight/internal/utils"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeAdapter struct {
	name       string
	authentic  bool
	credential string
	lastResort bool
	delay      time.Duration
	metadata   *models.VideoMetadata
	err        error
	failFirst  bool
	calls      atomic.Int32
}

func (f *fakeAdapter) Name() string               { return f.name }
func (f *fakeAdapter) Authentic() bool            { return f.authentic }
func (f *fakeAdapter) RequiredCredential() string { return f.credential }
func (f *fakeAdapter) LastResort() bool           { return f.lastResort }

func (f *fakeAdapter) Fetch(ctx context.Context, in provider.Input) (*models.VideoMetadata, error) {
	call := f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failFirst && call == 1 {
		return nil, &provider.Error{Provider: f.name, Reason: "transient failure", Retriable: true}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.metadata, nil
}

func successMetadata(source string, authentic bool, views, likes uint64) *models.VideoMetadata {
	return &models.VideoMetadata{
		Title: "some video",
		Engagement: models.Engagement{
			Views: views,
			Likes: likes,
		},
		Provenance: models.Provenance{
			IsAuthentic:      authentic,
			DataSource:       source,
			ExtractionMethod: "test",
		},
	}
}

func testResolver(creds config.CredentialsConfig, adapters []provider.Adapter) *Resolver {
	return &Resolver{
		deps: provider.Deps{
			Credentials: creds,
			Extraction:  config.ExtractionConfig{HashtagLimit: 10},
		},
		adapterTimeout: 2 * time.Second,
		forPlatform: func(models.Platform, provider.Deps) []provider.Adapter {
			return adapters
		},
	}
}

func TestResolveUnsupportedPlatform(t *testing.T) {
	r := testResolver(config.CredentialsConfig{}, nil)

	_, report, err := r.Resolve(context.Background(), "https://vimeo.com/123456")
	if err == nil {
		t.Fatal("expected an error for an unsupported platform")
	}

	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected *utils.AppError, got %T", err)
	}
	if appErr.Code != utils.ErrorCodeUnsupportedPlatform {
		t.Errorf("expected code %s, got %s", utils.ErrorCodeUnsupportedPlatform, appErr.Code)
	}
	if len(report.Attempts) != 0 {
		t.Errorf("expected zero attempts before detection, got %d", len(report.Attempts))
	}
}

func TestResolveMalformedURL(t *testing.T) {
	r := testResolver(config.CredentialsConfig{}, nil)

	_, _, err := r.Resolve(context.Background(), "https://www.youtube.com/feed/subscriptions")
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected *utils.AppError, got %T", err)
	}
	if appErr.Code != utils.ErrorCodeMalformedURL {
		t.Errorf("expected code %s, got %s", utils.ErrorCodeMalformedURL, appErr.Code)
	}
}

// The authentic adapter must win even when a non-authentic one settles much
// earlier.
func TestResolveAuthenticityBeatsArrival(t *testing.T) {
	slow := &fakeAdapter{
		name:      "slow authentic",
		authentic: true,
		delay:     150 * time.Millisecond,
		metadata:  successMetadata("slow authentic", true, 1000, 100),
	}
	fast := &fakeAdapter{
		name:     "fast scrape",
		metadata: successMetadata("fast scrape", false, 0, 0),
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{slow, fast})

	md, report, err := r.Resolve(context.Background(), testVideoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !md.Provenance.IsAuthentic {
		t.Error("expected the authentic result to win")
	}
	if report.SuccessfulMethod != "slow authentic" {
		t.Errorf("expected successful method %q, got %q", "slow authentic", report.SuccessfulMethod)
	}
	if md.Rating != 5 {
		t.Errorf("expected derived rating 5 for 10%% engagement, got %d", md.Rating)
	}
}

func TestResolveFirstSuccessInListOrder(t *testing.T) {
	failing := &fakeAdapter{
		name: "broken api",
		err:  &provider.Error{Provider: "broken api", Reason: "boom", Retriable: true},
	}
	second := &fakeAdapter{
		name:     "mirror",
		metadata: successMetadata("mirror", false, 500, 5),
	}
	third := &fakeAdapter{
		name:     "oembed",
		metadata: successMetadata("oembed", false, 0, 0),
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{failing, second, third})

	md, report, err := r.Resolve(context.Background(), testVideoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Provenance.DataSource != "mirror" {
		t.Errorf("expected the first successful adapter in list order, got %q", md.Provenance.DataSource)
	}
	if len(report.Attempts) != 3 {
		t.Errorf("expected 3 attempts, got %d", len(report.Attempts))
	}
	if report.Attempts[0].Outcome != models.AttemptFailed {
		t.Errorf("expected first attempt failed, got %s", report.Attempts[0].Outcome)
	}
}

func TestResolveRecordsNotConfigured(t *testing.T) {
	needsKey := &fakeAdapter{
		name:       "official api",
		authentic:  true,
		credential: "YOUTUBE_API_KEY",
		metadata:   successMetadata("official api", true, 1, 1),
	}
	open := &fakeAdapter{
		name:     "open mirror",
		metadata: successMetadata("open mirror", false, 0, 0),
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{needsKey, open})

	md, report, err := r.Resolve(context.Background(), testVideoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Provenance.DataSource != "open mirror" {
		t.Errorf("expected open mirror to win, got %q", md.Provenance.DataSource)
	}
	if needsKey.calls.Load() != 0 {
		t.Error("adapter with missing credential must not be called")
	}
	if report.Attempts[0].Outcome != models.AttemptNotConfigured {
		t.Errorf("expected not_configured attempt, got %s", report.Attempts[0].Outcome)
	}
}

func TestResolveAllProvidersFailed(t *testing.T) {
	needsKey := &fakeAdapter{
		name:       "official api",
		credential: "YOUTUBE_API_KEY",
	}
	broken := &fakeAdapter{
		name: "mirror",
		err:  &provider.Error{Provider: "mirror", Reason: "unreachable", Retriable: true},
	}
	brokenScrape := &fakeAdapter{
		name:       "scrape",
		lastResort: true,
		err:        &provider.Error{Provider: "scrape", Reason: "blocked", Retriable: false},
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{needsKey, broken, brokenScrape})

	_, report, err := r.Resolve(context.Background(), testVideoURL)
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected *utils.AppError, got %T", err)
	}
	if appErr.Code != utils.ErrorCodeAllProvidersFailed {
		t.Errorf("expected code %s, got %s", utils.ErrorCodeAllProvidersFailed, appErr.Code)
	}
	// not_configured + 2 concurrent failures + 1 sequential retry of the
	// last-resort adapter
	if len(report.Attempts) != 4 {
		t.Errorf("expected 4 attempts, got %d", len(report.Attempts))
	}
	if len(report.RecommendedActions) == 0 {
		t.Error("expected non-empty recommended actions on total failure")
	}
}

// A last-resort adapter that fails in the concurrent burst but answers the
// calm sequential retry must still produce a result.
func TestResolveSequentialLastResortRecovers(t *testing.T) {
	flaky := &fakeAdapter{
		name:       "oembed",
		lastResort: true,
		failFirst:  true,
		metadata:   successMetadata("oembed", false, 0, 0),
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{flaky})

	md, report, err := r.Resolve(context.Background(), testVideoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Provenance.DataSource != "oembed" {
		t.Errorf("expected oembed to recover, got %q", md.Provenance.DataSource)
	}
	if flaky.calls.Load() != 2 {
		t.Errorf("expected two calls (concurrent then sequential), got %d", flaky.calls.Load())
	}
	if report.SuccessfulMethod != "oembed" {
		t.Errorf("expected successful method oembed, got %q", report.SuccessfulMethod)
	}
}

// Short watch?v= IDs are still valid; with no credentials configured the
// chain must end up at the thin metadata tail rather than failing URL parsing.
func TestResolveShortYouTubeID(t *testing.T) {
	oembed := &fakeAdapter{
		name:       "YouTube oEmbed",
		lastResort: true,
		metadata:   successMetadata("YouTube oEmbed", false, 0, 0),
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{oembed})

	md, report, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=abc123XYZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Provenance.IsAuthentic {
		t.Error("oEmbed results must not be authentic")
	}
	if md.Provenance.DataSource != "YouTube oEmbed" {
		t.Errorf("unexpected data source: %q", md.Provenance.DataSource)
	}
	if md.Engagement.Views != 0 {
		t.Errorf("oEmbed carries no engagement, got %d views", md.Engagement.Views)
	}
	if report.SuccessfulMethod != "YouTube oEmbed" {
		t.Errorf("unexpected successful method: %q", report.SuccessfulMethod)
	}
}

func TestResolveFinalizesRecord(t *testing.T) {
	adapter := &fakeAdapter{
		name: "mirror",
		metadata: &models.VideoMetadata{
			Title: "video",
			// Adapter lies about the rating; the resolver must overwrite it.
			Rating: 5,
			Provenance: models.Provenance{
				DataSource:       "mirror",
				ExtractionMethod: "test",
			},
		},
	}

	r := testResolver(config.CredentialsConfig{}, []provider.Adapter{adapter})

	md, _, err := r.Resolve(context.Background(), testVideoURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.SourceURL != testVideoURL {
		t.Errorf("source URL not preserved verbatim: %q", md.SourceURL)
	}
	if md.Platform != models.PlatformYouTube {
		t.Errorf("expected platform youtube, got %s", md.Platform)
	}
	if md.Rating != 0 {
		t.Errorf("rating must be derived from engagement (zero views), got %d", md.Rating)
	}
	if md.Hashtags == nil {
		t.Error("hashtags must never be nil")
	}
}
