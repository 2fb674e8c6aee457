package forensics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

func testClient(endpoint string) *Client {
	return NewClient(model.ForensicsConfig{
		Endpoint:      endpoint,
		Timeout:       5 * time.Second,
		DeepfakeClass: "yes_deepfake",
	})
}

func TestAnalyzeMedia(t *testing.T) {
	tests := []struct {
		name     string
		deepfake float64
		want     int
	}{
		{"low manipulation", 0.12, 88},
		{"high manipulation", 0.93, 7},
		{"zero", 0, 100},
		{"certain", 1, 0},
		// floor, not round: 0.125 -> 12 -> 88.
		{"floored", 0.125, 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Errorf("parse multipart: %v", err)
				}
				if _, _, err := r.FormFile("file"); err != nil {
					t.Errorf("missing file part: %v", err)
				}
				fmt.Fprintf(w, `{"output":[{"classes":[{"class":"no_deepfake","score":%f},{"class":"yes_deepfake","score":%f}]}]}`,
					1-tt.deepfake, tt.deepfake)
			}))
			defer server.Close()

			score, err := testClient(server.URL).AnalyzeMedia(context.Background(), "clip.mp4", strings.NewReader("data"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != tt.want {
				t.Errorf("score = %d, want %d", score, tt.want)
			}
		})
	}
}

func TestAnalyzeMedia_MissingClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"output":[{"classes":[{"class":"something_else","score":0.9}]}]}`)
	}))
	defer server.Close()

	score, err := testClient(server.URL).AnalyzeMedia(context.Background(), "clip.mp4", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// An absent class reads as zero manipulation probability.
	if score != 100 {
		t.Errorf("score = %d, want 100", score)
	}
}

func TestAnalyzeMedia_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server.URL).AnalyzeMedia(context.Background(), "clip.mp4", strings.NewReader("data"))
	var externalErr *model.ExternalAPIError
	if !errors.As(err, &externalErr) {
		t.Fatalf("expected ExternalAPIError, got %v", err)
	}
	if externalErr.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", externalErr.Status)
	}
	if externalErr.Service != "forensics" {
		t.Errorf("service = %q", externalErr.Service)
	}
}

func TestAnalyzeMedia_NoEndpoint(t *testing.T) {
	_, err := testClient("").AnalyzeMedia(context.Background(), "clip.mp4", strings.NewReader("data"))
	var externalErr *model.ExternalAPIError
	if !errors.As(err, &externalErr) {
		t.Fatalf("expected ExternalAPIError, got %v", err)
	}
}

func TestAnalyzeMedia_BearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.Copy(io.Discard, r.Body)
		fmt.Fprint(w, `{"output":[]}`)
	}))
	defer server.Close()

	client := NewClient(model.ForensicsConfig{
		Endpoint:      server.URL,
		APIKey:        "secret",
		Timeout:       5 * time.Second,
		DeepfakeClass: "yes_deepfake",
	})
	if _, err := client.AnalyzeMedia(context.Background(), "clip.mp4", strings.NewReader("data")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization = %q", gotAuth)
	}
}
