package prompt

import (
	"strings"
	"testing"

	"github.com/dmarkov/verascope/internal/extract"
	"github.com/dmarkov/verascope/internal/model"
)

func testBuilder() *Builder {
	return NewBuilder(model.LimitsConfig{MaxContentChars: 5000, BiasPromptChars: 3000, MaxListEntries: 5})
}

func TestBuild_FactCheckLabels(t *testing.T) {
	b := testBuilder()
	p := b.Build(model.KindFactCheck, "some claim")

	// The system template must name every label the grammar scans for.
	for _, label := range []string{
		extract.LabelCredibilityScore,
		extract.LabelConfidence,
		extract.LabelVerificationStatus,
		extract.LabelRedFlags,
		extract.LabelSources,
		extract.LabelRecommendations,
	} {
		if !strings.Contains(p.System, label) {
			t.Errorf("fact-check system prompt missing label %q", label)
		}
	}
	if !strings.Contains(p.User, "some claim") {
		t.Error("user prompt missing submitted content")
	}
}

func TestBuild_BiasLabels(t *testing.T) {
	b := testBuilder()
	p := b.Build(model.KindBias, "some content")

	for _, label := range []string{
		extract.LabelConfidence,
		extract.LabelBiasIndicators,
		extract.LabelSources,
		extract.LabelRecommendations,
	} {
		if !strings.Contains(p.System, label) {
			t.Errorf("bias system prompt missing label %q", label)
		}
	}
	if strings.Contains(p.System, extract.LabelCredibilityScore) {
		t.Error("bias system prompt should not request a credibility score")
	}
}

func TestBuild_MediaLabels(t *testing.T) {
	b := testBuilder()
	p := b.Build(model.KindMedia, "forensics signal")

	for _, label := range []string{
		extract.LabelCredibilityScore,
		extract.LabelConfidence,
		extract.LabelAuthenticity,
		extract.LabelRedFlags,
		extract.LabelRecommendations,
	} {
		if !strings.Contains(p.System, label) {
			t.Errorf("media system prompt missing label %q", label)
		}
	}
}

func TestBuild_BiasTruncation(t *testing.T) {
	b := testBuilder()
	long := strings.Repeat("x", 4000)

	p := b.Build(model.KindBias, long)
	if strings.Contains(p.User, long) {
		t.Error("bias prompt should truncate long content")
	}
	if !strings.Contains(p.User, strings.Repeat("x", 3000)) {
		t.Error("bias prompt should keep the first 3000 characters")
	}

	// Fact-check prompts embed the full normalized text.
	p = b.Build(model.KindFactCheck, long)
	if !strings.Contains(p.User, long) {
		t.Error("fact-check prompt should keep the full content")
	}
}

func TestBuild_VerdictVocabulary(t *testing.T) {
	b := testBuilder()

	factCheck := b.Build(model.KindFactCheck, "claim")
	for _, status := range []string{"VERIFIED", "PARTIALLY_VERIFIED", "UNVERIFIED", "FALSE"} {
		if !strings.Contains(factCheck.System, status) {
			t.Errorf("fact-check prompt missing status %q", status)
		}
	}

	media := b.Build(model.KindMedia, "signal")
	for _, verdict := range []string{"AUTHENTIC", "LIKELY_AUTHENTIC", "QUESTIONABLE", "LIKELY_MANIPULATED", "MANIPULATED"} {
		if !strings.Contains(media.System, verdict) {
			t.Errorf("media prompt missing verdict %q", verdict)
		}
	}
}
