package normalize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmarkov/verascope/internal/cache"
	"github.com/dmarkov/verascope/internal/model"
	"github.com/dmarkov/verascope/internal/util"
)

// Fetcher retrieves page content for URL submissions. Fetches pass through
// the cache when one is configured and honor robots.txt when enabled.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	retries    int
	cache      cache.Cache
	cacheTTL   time.Duration
	robots     *util.RobotsChecker
}

// NewFetcher creates a Fetcher from the HTTP and cache configuration.
// pageCache and robots may be nil to disable caching / robots checks.
func NewFetcher(cfg model.HTTPConfig, pageCache cache.Cache, cacheTTL time.Duration, robots *util.RobotsChecker) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: util.NewTransport(cfg.InsecureTLS),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		retries:   cfg.RetryAttempts,
		cache:     pageCache,
		cacheTTL:  cacheTTL,
		robots:    robots,
	}
}

// Fetch retrieves the raw body of rawURL. Transport failures and non-2xx
// responses come back as *model.ExternalAPIError carrying the upstream
// status.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(cache.Key(rawURL)); ok {
			return string(body), nil
		}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return "", &model.ExternalAPIError{
			Service: "fetch",
			Status:  http.StatusForbidden,
			Err:     fmt.Errorf("disallowed by robots.txt: %s", rawURL),
		}
	}

	body, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.Key(rawURL), []byte(body), f.cacheTTL)
	}
	return body, nil
}

// fetchWithRetry issues the GET, retrying transport failures and 5xx
// responses with a short backoff. GETs are idempotent so retrying is safe.
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		body, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, model.NewValidationError("invalid URL: %s", rawURL)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", true, &model.ExternalAPIError{Service: "fetch", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resp.StatusCode >= 500, &model.ExternalAPIError{
			Service: "fetch",
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", true, &model.ExternalAPIError{Service: "fetch", Err: fmt.Errorf("read body: %w", err)}
	}
	return string(data), false, nil
}
