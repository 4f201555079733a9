package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Input carries the URL as provided by the caller plus the platform-native
// identifier the detector extracted from it.
type Input struct {
	URL string
	ID  string
}

// Adapter is a single-provider integration: one logical extraction per call,
// no shared mutable state.
//
// Authentic is self-declared by the adapter. The resolver ranks results by it
// but does not verify it; treat it as a trust boundary, not a guarantee.
type Adapter interface {
	Name() string
	Authentic() bool
	// RequiredCredential names the env credential this adapter needs, empty
	// when none. A missing credential short-circuits to not_configured
	// without a network call.
	RequiredCredential() string
	// LastResort marks adapters re-run sequentially when the concurrent
	// pass yields nothing.
	LastResort() bool
	Fetch(ctx context.Context, in Input) (*models.VideoMetadata, error)
}

// Deps is the read-only wiring injected into every adapter. The HTTP client
// is shared; lifecycle is owned by the caller.
type Deps struct {
	Credentials config.CredentialsConfig
	Extraction  config.ExtractionConfig
	HTTPClient  *http.Client
}

func NewDeps(cfg *config.Config) Deps {
	return Deps{
		Credentials: cfg.Credentials,
		Extraction:  cfg.Extraction,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Error is a typed failure from one adapter call. It is recorded by the
// resolver and never aborts the overall resolution.
type Error struct {
	Provider  string
	Reason    string
	Retriable bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func newError(provider, reason string, retriable bool) *Error {
	return &Error{Provider: provider, Reason: reason, Retriable: retriable}
}

func wrapError(provider string, err error, retriable bool) *Error {
	return &Error{Provider: provider, Reason: err.Error(), Retriable: retriable}
}

// getJSON performs one GET request and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// isRetriable reports whether a fetch failure is worth retrying upstream:
// rate limits and server-side errors are, client errors are not.
func isRetriable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= http.StatusInternalServerError
	}
	return true
}
