package forensics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"

	"github.com/dmarkov/verascope/internal/model"
)

// Client calls the external media-forensics inference endpoint. The service
// is a black box returning per-class manipulation scores; only the
// configured deepfake class is read.
type Client struct {
	endpoint      string
	apiKey        string
	deepfakeClass string
	httpClient    *http.Client
}

// NewClient creates a forensics client from configuration.
func NewClient(cfg model.ForensicsConfig) *Client {
	return &Client{
		endpoint:      cfg.Endpoint,
		apiKey:        cfg.APIKey,
		deepfakeClass: cfg.DeepfakeClass,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
	}
}

type inferenceResponse struct {
	Output []struct {
		Classes []struct {
			Class string  `json:"class"`
			Score float64 `json:"score"`
		} `json:"classes"`
	} `json:"output"`
}

// AnalyzeMedia uploads the file and derives an authenticity score from the
// deepfake class probability: 100 - floor(p*100).
func (c *Client) AnalyzeMedia(ctx context.Context, filename string, file io.Reader) (int, error) {
	if c.endpoint == "" {
		return 0, &model.ExternalAPIError{Service: "forensics", Err: fmt.Errorf("endpoint not configured")}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, fmt.Errorf("copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &model.ExternalAPIError{Service: "forensics", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &model.ExternalAPIError{
			Service: "forensics",
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, &model.ExternalAPIError{Service: "forensics", Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return c.authenticityScore(parsed), nil
}

// authenticityScore reads the deepfake class from the first output block.
// A missing class reads as zero manipulation probability.
func (c *Client) authenticityScore(parsed inferenceResponse) int {
	var deepfake float64
	if len(parsed.Output) > 0 {
		for _, cl := range parsed.Output[0].Classes {
			if cl.Class == c.deepfakeClass {
				deepfake = cl.Score
				break
			}
		}
	}
	return model.Clamp(100-int(math.Floor(deepfake*100)), 0, 100)
}
