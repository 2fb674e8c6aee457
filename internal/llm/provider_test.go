package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no fences here", "no fences here"},
		{"fenced", "```\ntext inside\n```", "text inside"},
		{"markdown fenced", "```markdown\ntext inside\n```", "text inside"},
		{"leading whitespace", "  \n```\ntext\n```\n", "text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *scriptedProvider) Generate(ctx context.Context, system, user string) (string, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.responses) {
		return p.responses[i], nil
	}
	return "", errors.New("script exhausted")
}

func TestGenerator_RetriesOnce(t *testing.T) {
	provider := &scriptedProvider{
		errs:      []error{errors.New("transient"), nil},
		responses: []string{"", "```\nrecovered narrative\n```"},
	}
	g := NewGenerator(provider, 1)

	got, err := g.Narrative(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered narrative" {
		t.Errorf("narrative = %q", got)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 calls, got %d", provider.calls)
	}
}

func TestGenerator_ExhaustedRetries(t *testing.T) {
	wantErr := errors.New("still down")
	provider := &scriptedProvider{errs: []error{wantErr, wantErr}}
	g := NewGenerator(provider, 1)

	_, err := g.Narrative(context.Background(), "system", "user")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error, got %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 calls, got %d", provider.calls)
	}
}

func TestGenerator_ContextCancelled(t *testing.T) {
	provider := &scriptedProvider{errs: []error{errors.New("fail"), errors.New("fail")}}
	g := NewGenerator(provider, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Narrative(ctx, "system", "user")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(model.LLMConfig{Provider: ""}); err != nil || p != nil {
		t.Errorf("empty provider should disable generation, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("openai without API key should error")
	}

	p, err := NewProvider(model.LLMConfig{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("name = %q", p.Name())
	}

	p, err = NewProvider(model.LLMConfig{Provider: "ollama", Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("name = %q", p.Name())
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "nonsense"}); err == nil {
		t.Error("unknown provider should error")
	}
}

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"model":"test","response":"generated text","done":true}`)
	}))
	defer server.Close()

	p, err := NewOllamaProvider(model.LLMConfig{Provider: "ollama", Model: "test", BaseURL: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}

	got, err := p.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated text" {
		t.Errorf("response = %q", got)
	}
}

func TestOllamaProvider_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"model not found"}`)
	}))
	defer server.Close()

	p, err := NewOllamaProvider(model.LLMConfig{Provider: "ollama", Model: "test", BaseURL: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Generate(context.Background(), "system", "user")
	var externalErr *model.ExternalAPIError
	if !errors.As(err, &externalErr) {
		t.Fatalf("expected ExternalAPIError, got %v", err)
	}
	if externalErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", externalErr.Status)
	}
}

func TestOllamaProvider_RequiresModel(t *testing.T) {
	p, err := NewOllamaProvider(model.LLMConfig{Provider: "ollama"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(context.Background(), "system", "user"); err == nil {
		t.Error("expected error without model name")
	}
}
