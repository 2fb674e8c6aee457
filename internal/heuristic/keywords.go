package heuristic

import "github.com/dmarkov/verascope/internal/model"

// ToneGroup maps a tone to its trigger terms. Groups are evaluated in order
// and the first group with any match wins.
type ToneGroup struct {
	Tone  model.Tone
	Terms []string
}

// IndicatorRule flags a rhetorical pattern when any of its terms appears.
type IndicatorRule struct {
	Label string
	Terms []string
}

// Adjustment shifts the credibility baseline when any of its terms appears.
// Adjustments are independent, not mutually exclusive.
type Adjustment struct {
	Delta int
	Terms []string
}

// Keywords holds every keyword table the scorer consults. All matching is
// case-insensitive substring containment.
type Keywords struct {
	Left        []string
	Right       []string
	Tones       []ToneGroup
	Indicators  []IndicatorRule
	Adjustments []Adjustment
}

// Weights holds the scoring thresholds. The margin and magnitude cutoffs are
// inherited defaults with no documented derivation; they are kept tunable
// rather than recalibrated.
type Weights struct {
	// BiasMargin is how far one side's count must exceed the other's
	// before the text leaves Center.
	BiasMargin int
	// StrongBias is the count above which a lean is classified as
	// outright Left/Right instead of Center-Left/Center-Right.
	StrongBias int
	// BaselineStart is the credibility starting point before adjustments.
	BaselineStart int
	// MaxIndicators caps the indicator list, earliest-detected-first.
	MaxIndicators int
}

// DefaultKeywords returns the built-in keyword tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Left: []string{
			"progressive", "liberal", "left-wing", "socialist",
			"social justice", "equity", "climate crisis", "union rights",
		},
		Right: []string{
			"conservative", "right-wing", "traditional values", "patriot",
			"free market", "deregulation", "border security", "second amendment",
		},
		Tones: []ToneGroup{
			{Tone: model.ToneAngry, Terms: []string{"angry", "outraged", "furious"}},
			{Tone: model.ToneFear, Terms: []string{"fear", "danger", "threat"}},
			{Tone: model.ToneHopeful, Terms: []string{"hope", "optimistic", "bright future"}},
		},
		Indicators: []IndicatorRule{
			{Label: "absolute statements", Terms: []string{"always", "never", "all"}},
			{Label: "vague attribution", Terms: []string{"they say", "sources claim"}},
			{Label: "excessive punctuation", Terms: []string{"!!", "???"}},
		},
		Adjustments: []Adjustment{
			{Delta: +20, Terms: []string{"verified", "accurate"}},
			{Delta: +15, Terms: []string{"credible", "reliable"}},
			{Delta: +10, Terms: []string{"factual", "confirmed"}},
			{Delta: -30, Terms: []string{"false", "misleading"}},
			{Delta: -20, Terms: []string{"unverified", "questionable"}},
			{Delta: -15, Terms: []string{"bias", "propaganda"}},
		},
	}
}

// DefaultWeights returns the built-in thresholds.
func DefaultWeights() Weights {
	return Weights{
		BiasMargin:    1,
		StrongBias:    3,
		BaselineStart: 50,
		MaxIndicators: 5,
	}
}
