package normalize

import (
	"context"
	"strings"

	"github.com/dmarkov/verascope/internal/model"
)

// Normalizer resolves a submission into analyzable text. Validation happens
// before any network call.
type Normalizer struct {
	fetcher *Fetcher
	limits  model.LimitsConfig
	media   model.MediaConfig
}

// NewNormalizer creates a Normalizer. fetcher may be nil when URL
// submissions are not expected (e.g. in tests of the text path).
func NewNormalizer(fetcher *Fetcher, limits model.LimitsConfig, media model.MediaConfig) *Normalizer {
	return &Normalizer{fetcher: fetcher, limits: limits, media: media}
}

// Normalize validates the submission and resolves it to text. URL content is
// fetched and stripped of markup; everything is truncated to the content
// ceiling, prefix retained.
func (n *Normalizer) Normalize(ctx context.Context, sub model.Submission) (model.NormalizedContent, error) {
	content := strings.TrimSpace(sub.Content)
	if content == "" {
		return model.NormalizedContent{}, model.NewValidationError("content is required")
	}
	if len(content) > n.limits.MaxContentChars {
		return model.NormalizedContent{}, model.NewValidationError(
			"content exceeds %d characters", n.limits.MaxContentChars)
	}

	if sub.IsURL() {
		if n.fetcher == nil {
			return model.NormalizedContent{}, model.NewValidationError("URL submissions are not enabled")
		}
		body, err := n.fetcher.Fetch(ctx, content)
		if err != nil {
			return model.NormalizedContent{}, err
		}
		text := StripMarkup(body)
		original := len(text)
		return model.NormalizedContent{
			Text:           truncate(text, n.limits.MaxContentChars),
			FetchedFromURL: true,
			OriginalLength: original,
		}, nil
	}

	text := CollapseWhitespace(content)
	return model.NormalizedContent{
		Text:           truncate(text, n.limits.MaxContentChars),
		OriginalLength: len(text),
	}, nil
}

// ValidateMedia gates an upload against the size ceiling and MIME allow-list
// for its surface. Mandatory before any forensics call.
func (n *Normalizer) ValidateMedia(upload model.MediaUpload, authenticated bool) error {
	limit := n.media.MaxUploadBytes
	allowed := n.media.AllowedTypes
	if authenticated {
		limit = n.media.MaxUploadBytesAuth
		allowed = n.media.AllowedTypesAuth
	}

	if upload.Size <= 0 {
		return model.NewValidationError("file is required")
	}
	if upload.Size > limit {
		return model.NewValidationError("file exceeds %d bytes", limit)
	}
	for _, mime := range allowed {
		if strings.EqualFold(upload.MIMEType, mime) {
			return nil
		}
	}
	return model.NewValidationError("unsupported media type: %s", upload.MIMEType)
}

// truncate keeps the first max characters. Truncation is silent and
// deterministic.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
