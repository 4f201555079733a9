package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
	"github.com/clipsight/clipsight/internal/services/normalize"
	"github.com/clipsight/clipsight/internal/services/platform"
	"github.com/clipsight/clipsight/internal/services/provider"
	"github.com/clipsight/clipsight/internal/utils"
)

// Resolver races a platform's fallback chain and picks the best settled
// result. It is stateless per call: nothing is memoized between resolutions.
type Resolver struct {
	deps           provider.Deps
	adapterTimeout time.Duration
	forPlatform    func(models.Platform, provider.Deps) []provider.Adapter
}

func New(cfg *config.Config) *Resolver {
	return &Resolver{
		deps:           provider.NewDeps(cfg),
		adapterTimeout: cfg.Extraction.AdapterTimeout,
		forPlatform:    provider.ForPlatform,
	}
}

type settled struct {
	metadata *models.VideoMetadata
	err      error
}

// Resolve classifies the URL, fans out over every eligible adapter
// concurrently, and selects by priority: first authentic success in chain
// order, else first success, else a sequential last-resort pass. Individual
// adapter failures are recorded in the report, never returned; only a total
// failure surfaces as an error.
func (r *Resolver) Resolve(ctx context.Context, videoURL string) (*models.VideoMetadata, *models.ExtractionReport, error) {
	report := &models.ExtractionReport{
		Attempts:             []models.ExtractionAttempt{},
		CredentialsAvailable: r.deps.Credentials.Available(),
	}

	detected, err := platform.Detect(videoURL)
	if err != nil {
		utils.LogWarn(ctx, "Unsupported platform", utils.Fields{"url": videoURL})
		return nil, report, err
	}

	id, err := platform.ExtractPlatformID(videoURL, detected)
	if err != nil {
		utils.LogWarn(ctx, "Could not extract platform ID", utils.Fields{
			"url":      videoURL,
			"platform": detected,
		})
		return nil, report, err
	}

	adapters := r.forPlatform(detected, r.deps)
	in := provider.Input{URL: videoURL, ID: id}

	eligible := make([]provider.Adapter, 0, len(adapters))
	for _, adapter := range adapters {
		if cred := adapter.RequiredCredential(); cred != "" && !hasCredential(report.CredentialsAvailable, cred) {
			report.Attempts = append(report.Attempts, models.ExtractionAttempt{
				Method:      adapter.Name(),
				Outcome:     models.AttemptNotConfigured,
				ErrorDetail: cred + " is not set",
			})
			continue
		}
		eligible = append(eligible, adapter)
	}

	utils.LogInfo(ctx, "Resolving video metadata", utils.Fields{
		"url":               videoURL,
		"platform":          detected,
		"eligible_adapters": len(eligible),
	})

	winner, winnerName := r.concurrentPass(ctx, eligible, in, report)
	if winner == nil {
		// Degraded networks sometimes fail a parallel burst but answer a
		// calm sequential retry, so the cheap adapters get a second pass.
		winner, winnerName = r.lastResortPass(ctx, adapters, in, report)
	}

	if winner == nil {
		report.RecommendedActions = recommendedActions(detected, report.CredentialsAvailable)
		return nil, report, utils.NewAllProvidersFailedError(videoURL, map[string]interface{}{
			"platform": string(detected),
			"attempts": len(report.Attempts),
		})
	}

	finalize(winner, videoURL, detected)
	report.SuccessfulMethod = winnerName

	utils.LogInfo(ctx, "Video metadata resolved", utils.Fields{
		"url":         videoURL,
		"platform":    detected,
		"data_source": winner.Provenance.DataSource,
		"authentic":   winner.Provenance.IsAuthentic,
	})

	return winner, report, nil
}

// concurrentPass launches every eligible adapter at once, waits for all to
// settle, then selects by static chain order rather than arrival time.
func (r *Resolver) concurrentPass(ctx context.Context, eligible []provider.Adapter, in provider.Input, report *models.ExtractionReport) (*models.VideoMetadata, string) {
	if len(eligible) == 0 {
		return nil, ""
	}

	results := make([]settled, len(eligible))
	var wg sync.WaitGroup
	for i, adapter := range eligible {
		wg.Add(1)
		go func(i int, adapter provider.Adapter) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
			defer cancel()
			md, err := adapter.Fetch(callCtx, in)
			results[i] = settled{metadata: md, err: err}
		}(i, adapter)
	}
	wg.Wait()

	for i, adapter := range eligible {
		attempt := models.ExtractionAttempt{
			Method:  adapter.Name(),
			Outcome: models.AttemptSuccess,
		}
		if results[i].err != nil {
			attempt.Outcome = models.AttemptFailed
			attempt.ErrorDetail = results[i].err.Error()
			utils.LogDebug(ctx, "Adapter failed", utils.Fields{
				"adapter": adapter.Name(),
				"error":   results[i].err.Error(),
			})
		}
		report.Attempts = append(report.Attempts, attempt)
	}

	firstSuccess := -1
	for i := range results {
		if results[i].err != nil || results[i].metadata == nil {
			continue
		}
		if results[i].metadata.Provenance.IsAuthentic {
			return results[i].metadata, eligible[i].Name()
		}
		if firstSuccess < 0 {
			firstSuccess = i
		}
	}
	if firstSuccess >= 0 {
		return results[firstSuccess].metadata, eligible[firstSuccess].Name()
	}
	return nil, ""
}

// lastResortPass re-runs the credential-free tail of the chain one adapter
// at a time, in chain order, stopping at the first success.
func (r *Resolver) lastResortPass(ctx context.Context, adapters []provider.Adapter, in provider.Input, report *models.ExtractionReport) (*models.VideoMetadata, string) {
	for _, adapter := range adapters {
		if !adapter.LastResort() {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, r.adapterTimeout)
		md, err := adapter.Fetch(callCtx, in)
		cancel()

		if err != nil {
			report.Attempts = append(report.Attempts, models.ExtractionAttempt{
				Method:      adapter.Name(),
				Outcome:     models.AttemptFailed,
				ErrorDetail: err.Error(),
			})
			continue
		}

		report.Attempts = append(report.Attempts, models.ExtractionAttempt{
			Method:  adapter.Name(),
			Outcome: models.AttemptSuccess,
		})
		return md, adapter.Name()
	}
	return nil, ""
}

// finalize enforces the normalized-record invariants in one place: the
// source URL is preserved verbatim and the rating is always derived from
// engagement, whatever the adapter reported.
func finalize(md *models.VideoMetadata, sourceURL string, detected models.Platform) {
	md.SourceURL = sourceURL
	md.Platform = detected
	md.Rating = normalize.CalculateRating(md.Engagement.Views, md.Engagement.Likes)
	if md.Hashtags == nil {
		md.Hashtags = []string{}
	}
}

func hasCredential(available []string, name string) bool {
	for _, c := range available {
		if c == name {
			return true
		}
	}
	return false
}
