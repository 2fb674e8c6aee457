package vet

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

// Vetter probes URL-shaped entries of an extracted sources list: authority
// tier plus a reachability check, with bounded concurrency. Results are
// attached to the response as supplementary data and never change the score.
type Vetter struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
}

// NewVetter creates a Vetter running at most maxWorkers concurrent probes.
func NewVetter(timeout time.Duration, userAgent string, maxWorkers int) *Vetter {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &Vetter{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  userAgent,
		maxWorkers: maxWorkers,
	}
}

// Vet classifies and probes every URL-shaped source. Non-URL entries (plain
// prose suggestions from the narrative) are skipped.
func (v *Vetter) Vet(ctx context.Context, sources []string) []model.SourceVetting {
	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			urls = append(urls, s)
		}
	}
	if len(urls) == 0 {
		return nil
	}

	results := make([]model.SourceVetting, len(urls))
	semaphore := make(chan struct{}, v.maxWorkers)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.SourceVetting{URL: rawURL, Authority: ClassifyHost(rawURL).String()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.probe(ctx, rawURL)
		}(i, u)
	}
	wg.Wait()

	return results
}

// probe issues a HEAD request; 2xx/3xx counts as accessible.
func (v *Vetter) probe(ctx context.Context, rawURL string) model.SourceVetting {
	result := model.SourceVetting{
		URL:       rawURL,
		Authority: ClassifyHost(rawURL).String(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return result
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.IsAccessible = resp.StatusCode >= 200 && resp.StatusCode < 400
	return result
}
