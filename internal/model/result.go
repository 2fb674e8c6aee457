package model

import "time"

// Leaning is the political-leaning classification produced by the keyword
// heuristics.
type Leaning string

const (
	LeaningLeft        Leaning = "Left"
	LeaningCenterLeft  Leaning = "Center-Left"
	LeaningCenter      Leaning = "Center"
	LeaningCenterRight Leaning = "Center-Right"
	LeaningRight       Leaning = "Right"
)

// Tone is the emotional-tone classification. First matching group wins.
type Tone string

const (
	ToneAngry   Tone = "Angry"
	ToneFear    Tone = "Fear-inducing"
	ToneHopeful Tone = "Hopeful"
	ToneNeutral Tone = "Neutral"
)

// VerificationStatus is the narrative's verdict on a fact-check submission.
type VerificationStatus string

const (
	StatusVerified          VerificationStatus = "VERIFIED"
	StatusPartiallyVerified VerificationStatus = "PARTIALLY_VERIFIED"
	StatusUnverified        VerificationStatus = "UNVERIFIED"
	StatusFalse             VerificationStatus = "FALSE"
)

// Authenticity is the categorical verdict on whether media is manipulated.
type Authenticity string

const (
	AuthenticityAuthentic         Authenticity = "AUTHENTIC"
	AuthenticityLikelyAuthentic   Authenticity = "LIKELY_AUTHENTIC"
	AuthenticityQuestionable      Authenticity = "QUESTIONABLE"
	AuthenticityLikelyManipulated Authenticity = "LIKELY_MANIPULATED"
	AuthenticityManipulated       Authenticity = "MANIPULATED"
)

// HeuristicResult is the local, network-free baseline signal. Leaning and
// Tone are always set for bias submissions; BaselineScore is always set for
// fact-check submissions.
type HeuristicResult struct {
	Leaning       Leaning  `json:"leaning,omitempty"`
	Tone          Tone     `json:"tone,omitempty"`
	Indicators    []string `json:"indicators,omitempty"`
	BaselineScore int      `json:"baseline_score"`
}

// ExtractedFields holds whatever structure the narrative contained. Every
// field has a well-defined zero value; absence of a section is expected, not
// an error.
type ExtractedFields struct {
	Score           *int               `json:"score,omitempty"`
	Confidence      *int               `json:"confidence,omitempty"`
	Status          VerificationStatus `json:"status,omitempty"`
	Authenticity    Authenticity       `json:"authenticity,omitempty"`
	Flags           []string           `json:"flags"`
	Sources         []string           `json:"sources"`
	Recommendations []string           `json:"recommendations"`
}

// SourceVetting is supplementary data about a cited source URL. It never
// affects the score.
type SourceVetting struct {
	URL          string `json:"url"`
	Authority    string `json:"authority"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
}

// AnalysisResult is the assembled, persisted verdict. Immutable once built:
// a later correction is a new record, never an update.
type AnalysisResult struct {
	ID        string       `json:"id"`
	Kind      AnalysisKind `json:"kind"`
	CreatedAt time.Time    `json:"timestamp"`

	Score        int                `json:"score"`
	Confidence   int                `json:"confidence"`
	Status       VerificationStatus `json:"status,omitempty"`
	Authenticity Authenticity       `json:"authenticity,omitempty"`

	Leaning Leaning `json:"leaning,omitempty"`
	Tone    Tone    `json:"tone,omitempty"`

	Indicators      []string `json:"indicators,omitempty"`
	Flags           []string `json:"flags,omitempty"`
	Sources         []string `json:"sources,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	Vetting []SourceVetting `json:"vetting,omitempty"`

	Narrative string `json:"narrative,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
