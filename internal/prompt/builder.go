package prompt

import (
	"fmt"

	"github.com/dmarkov/verascope/internal/extract"
	"github.com/dmarkov/verascope/internal/model"
)

// Prompt is the rendered instruction pair sent to the narrative generator.
type Prompt struct {
	System string
	User   string
}

// Builder renders per-kind prompts from fixed templates. The section labels
// named in the templates are the binding contract with the extractor: every
// label the grammar tables scan for appears verbatim below.
type Builder struct {
	biasPromptChars int
}

// NewBuilder creates a Builder honoring the configured length ceilings.
func NewBuilder(limits model.LimitsConfig) *Builder {
	return &Builder{biasPromptChars: limits.BiasPromptChars}
}

var factCheckSystem = fmt.Sprintf(`You are a meticulous fact-checking analyst. Assess the credibility of the submitted content.

Structure your response with exactly these labeled sections:
%s: <integer 0-100>
%s: <integer 0-100>
%s: <VERIFIED | PARTIALLY_VERIFIED | UNVERIFIED | FALSE>
%s:
- <each concern as a bulleted line>
%s:
- <each source worth consulting as a bulleted line>
%s:
- <each suggested next step as a bulleted line>

Base the score only on the content provided. Do not invent sources.`,
	extract.LabelCredibilityScore, extract.LabelConfidence,
	extract.LabelVerificationStatus, extract.LabelRedFlags,
	extract.LabelSources, extract.LabelRecommendations)

var biasSystem = fmt.Sprintf(`You are a media-bias analyst. Examine the submitted content for political slant, loaded language and rhetorical framing.

Structure your response with exactly these labeled sections:
%s: <integer 0-100>
%s:
- <each detected rhetorical pattern as a bulleted line>
%s:
- <each source offering an alternative perspective as a bulleted line>
%s:
- <each suggestion for balanced reading as a bulleted line>

Describe patterns you observe; do not speculate about the author's intent.`,
	extract.LabelConfidence, extract.LabelBiasIndicators,
	extract.LabelSources, extract.LabelRecommendations)

var mediaSystem = fmt.Sprintf(`You are a media-forensics analyst. Given an automated manipulation-detection score, interpret what it means for the file's authenticity.

Structure your response with exactly these labeled sections:
%s: <integer 0-100>
%s: <integer 0-100>
%s: <AUTHENTIC | LIKELY_AUTHENTIC | QUESTIONABLE | LIKELY_MANIPULATED | MANIPULATED>
%s:
- <each suspicious trait as a bulleted line>
%s:
- <each verification step as a bulleted line>

Be conservative: when the signal is ambiguous, prefer QUESTIONABLE.`,
	extract.LabelCredibilityScore, extract.LabelConfidence,
	extract.LabelAuthenticity, extract.LabelRedFlags,
	extract.LabelRecommendations)

// Build renders the system and user instructions for kind. The bias kind
// embeds a shorter slice of the normalized text.
func (b *Builder) Build(kind model.AnalysisKind, text string) Prompt {
	switch kind {
	case model.KindBias:
		if len(text) > b.biasPromptChars {
			text = text[:b.biasPromptChars]
		}
		return Prompt{
			System: biasSystem,
			User:   fmt.Sprintf("Analyze the following content for bias:\n\n%s", text),
		}
	case model.KindMedia:
		return Prompt{
			System: mediaSystem,
			User:   fmt.Sprintf("Interpret this media-forensics signal:\n\n%s", text),
		}
	default:
		return Prompt{
			System: factCheckSystem,
			User:   fmt.Sprintf("Fact-check the following content:\n\n%s", text),
		}
	}
}
