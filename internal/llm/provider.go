package llm

import (
	"context"
	"strings"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

// Provider is the narrative generator boundary. Implementations return one
// opaque block of narrative text; no structure is guaranteed beyond the
// best-effort section labeling requested in the system instruction.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Generate produces a narrative for the given system and user
	// instructions.
	Generate(ctx context.Context, system, user string) (string, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Generator wraps a Provider with the call policy shared by all pipelines:
// one bounded retry (generation requests are idempotent) and code-fence
// stripping, since some models wrap their output in markdown fences.
type Generator struct {
	provider Provider
	retries  int
}

// NewGenerator wraps provider. retries is the number of additional attempts
// after a failure.
func NewGenerator(provider Provider, retries int) *Generator {
	return &Generator{provider: provider, retries: retries}
}

// Name returns the wrapped provider's name.
func (g *Generator) Name() string { return g.provider.Name() }

// Narrative generates and cleans one narrative block.
func (g *Generator) Narrative(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		text, err := g.provider.Generate(ctx, system, user)
		if err == nil {
			return stripFences(text), nil
		}
		lastErr = err
	}
	return "", lastErr
}

// stripFences removes a wrapping markdown code fence, if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```markdown")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// externalErr wraps a provider failure in the shared taxonomy, preserving
// the upstream status for logging.
func externalErr(service string, status int, err error) error {
	return &model.ExternalAPIError{Service: service, Status: status, Err: err}
}
