package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmarkov/verascope/internal/model"
)

// Extractor recovers typed fields from the narrative generator's free text.
// It never fails: absence of a recognizable section yields that field's
// default, and malformed structure degrades rather than erroring. This is
// what lets the pipeline tolerate a generative service's non-deterministic
// output.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans the narrative with the grammar for kind and converts each
// captured span per its field kind. Numeric fields are clamped to [0,100];
// list fields keep document order, unde-duplicated and uncapped (capping
// happens at assembly). When the same label appears more than once, only the
// first occurrence governs.
func (e *Extractor) Extract(kind model.AnalysisKind, narrative string) model.ExtractedFields {
	fields := model.ExtractedFields{
		Flags:           []string{},
		Sources:         []string{},
		Recommendations: []string{},
	}

	lines := strings.Split(narrative, "\n")

	for _, rule := range GrammarFor(kind) {
		switch rule.Kind {
		case FieldScore:
			fields.Score = scanScalar(narrative, rule.Label)
		case FieldConfidence:
			fields.Confidence = scanScalar(narrative, rule.Label)
		case FieldStatus:
			// Pessimistic default: no clear verdict is never a
			// positive signal.
			fields.Status = matchStatus(scanEnumLine(lines, rule.Label))
		case FieldAuthenticity:
			fields.Authenticity = matchAuthenticity(scanEnumLine(lines, rule.Label))
		case FieldFlags:
			fields.Flags = scanList(lines, rule.Label)
		case FieldSources:
			fields.Sources = scanList(lines, rule.Label)
		case FieldRecommendations:
			fields.Recommendations = scanList(lines, rule.Label)
		}
	}

	return fields
}

// scanScalar finds the first "LABEL: <digits>" occurrence and returns the
// parsed integer clamped to [0,100], or nil when absent.
func scanScalar(narrative, label string) *int {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*:\s*\**\s*(\d+)`)
	m := re.FindStringSubmatch(narrative)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	n = model.Clamp(n, 0, 100)
	return &n
}

// scanEnumLine returns the remainder of the first line carrying
// "LABEL: ...", markup stripped, or "" when absent.
func scanEnumLine(lines []string, label string) string {
	upper := strings.ToUpper(label)
	for _, line := range lines {
		idx := strings.Index(strings.ToUpper(line), upper)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(label):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			continue
		}
		return strings.TrimSpace(strings.Trim(rest[colon+1:], "*: "))
	}
	return ""
}

var statusOrder = []model.VerificationStatus{
	model.StatusPartiallyVerified,
	model.StatusUnverified,
	model.StatusFalse,
	model.StatusVerified,
}

// matchStatus maps a raw verdict line to the closest status token.
// Longer tokens are tried first so that "PARTIALLY VERIFIED" does not match
// VERIFIED and "UNVERIFIED" does not match VERIFIED.
func matchStatus(raw string) model.VerificationStatus {
	norm := normalizeToken(raw)
	for _, status := range statusOrder {
		if strings.Contains(norm, string(status)) {
			return status
		}
	}
	return model.StatusUnverified
}

var authenticityOrder = []model.Authenticity{
	model.AuthenticityLikelyAuthentic,
	model.AuthenticityLikelyManipulated,
	model.AuthenticityQuestionable,
	model.AuthenticityManipulated,
	model.AuthenticityAuthentic,
}

// matchAuthenticity maps a raw verdict line to the closest authenticity
// token, defaulting to QUESTIONABLE.
func matchAuthenticity(raw string) model.Authenticity {
	norm := normalizeToken(raw)
	for _, a := range authenticityOrder {
		if strings.Contains(norm, string(a)) {
			return a
		}
	}
	return model.AuthenticityQuestionable
}

var nonToken = regexp.MustCompile(`[^A-Z0-9]+`)

// normalizeToken uppercases and folds separators so "Partially Verified",
// "PARTIALLY-VERIFIED" and "PARTIALLY_VERIFIED" all compare equal.
func normalizeToken(raw string) string {
	return strings.Trim(nonToken.ReplaceAllString(strings.ToUpper(raw), "_"), "_")
}

// scanList locates the first occurrence of the section header and captures
// bulleted lines up to the next header-looking line or blank line. A section
// with zero bullets yields an empty list.
func scanList(lines []string, label string) []string {
	out := []string{}

	start := -1
	upper := strings.ToUpper(label)
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), upper) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return out
	}

	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || looksLikeHeader(trimmed) {
			break
		}
		if item, ok := stripBullet(trimmed); ok {
			out = append(out, item)
		}
	}
	return out
}

var headerLine = regexp.MustCompile(`^[A-Z][A-Z /]+:`)

// looksLikeHeader reports whether a line opens a new section: a bold marker
// or an all-caps label with a colon.
func looksLikeHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "##") ||
		headerLine.MatchString(trimmed)
}

var numberedBullet = regexp.MustCompile(`^\d+[.)]\s+`)

// stripBullet removes a leading bullet marker. Non-bulleted lines inside a
// section are ignored.
func stripBullet(trimmed string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• ", "– "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	if loc := numberedBullet.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[loc[1]:]), true
	}
	return "", false
}
