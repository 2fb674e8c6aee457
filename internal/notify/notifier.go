package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

// Notifier fans a completed analysis out to interested listeners. Delivery
// is best-effort by contract: a failure here never fails the request.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind model.AnalysisKind, resultID string)
}

// Webhook posts a small JSON event to a configured URL.
type Webhook struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates a webhook notifier. An empty URL yields a no-op
// notifier.
func NewWebhook(cfg model.NotifyConfig) *Webhook {
	return &Webhook{
		url:        cfg.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type event struct {
	UserID    string    `json:"user_id,omitempty"`
	Kind      string    `json:"kind"`
	ResultID  string    `json:"result_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Notify posts the event. Failures are logged with the result identifier
// and swallowed.
func (w *Webhook) Notify(ctx context.Context, userID string, kind model.AnalysisKind, resultID string) {
	if w.url == "" {
		return
	}

	body, err := json.Marshal(event{
		UserID:    userID,
		Kind:      string(kind),
		ResultID:  resultID,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("notify %s: marshal event: %v", resultID, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		log.Printf("notify %s: create request: %v", resultID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		log.Printf("notify %s: %v", resultID, err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		log.Printf("notify %s: webhook returned %s", resultID, resp.Status)
	}
}

var _ Notifier = (*Webhook)(nil)

// Log writes notifications to the process log. Used when no webhook is
// configured but an audit trail is still wanted.
type Log struct{}

func (Log) Notify(_ context.Context, userID string, kind model.AnalysisKind, resultID string) {
	log.Printf("analysis complete: kind=%s result=%s user=%s", kind, resultID, userID)
}

var _ Notifier = Log{}
