package heuristic

import (
	"strings"

	"github.com/dmarkov/verascope/internal/model"
)

// Scorer is the deterministic, network-free baseline classifier. It is a
// pure function of the normalized text: same input, same output.
type Scorer struct {
	keywords Keywords
	weights  Weights
}

// NewScorer creates a scorer with the default tables.
func NewScorer() *Scorer {
	return NewScorerWith(DefaultKeywords(), DefaultWeights())
}

// NewScorerWith creates a scorer with custom tables and thresholds.
func NewScorerWith(kw Keywords, w Weights) *Scorer {
	return &Scorer{keywords: kw, weights: w}
}

// ClassifyBias produces the leaning, tone and indicator baseline for a bias
// submission. Leaning and tone are always one of their fixed values.
func (s *Scorer) ClassifyBias(text string) model.HeuristicResult {
	lower := strings.ToLower(text)
	return model.HeuristicResult{
		Leaning:    s.leaning(lower),
		Tone:       s.tone(lower),
		Indicators: s.indicators(lower),
	}
}

// CredibilityBaseline computes the fallback credibility score: the baseline
// start plus every matching adjustment, clamped to [0,100].
func (s *Scorer) CredibilityBaseline(text string) int {
	lower := strings.ToLower(text)
	score := s.weights.BaselineStart
	for _, adj := range s.keywords.Adjustments {
		if containsAny(lower, adj.Terms) {
			score += adj.Delta
		}
	}
	return model.Clamp(score, 0, 100)
}

// leaning counts left and right keyword occurrences and applies the margin
// and magnitude cutoffs.
func (s *Scorer) leaning(lower string) model.Leaning {
	left := countOccurrences(lower, s.keywords.Left)
	right := countOccurrences(lower, s.keywords.Right)

	switch {
	case left > right+s.weights.BiasMargin:
		if left > s.weights.StrongBias {
			return model.LeaningLeft
		}
		return model.LeaningCenterLeft
	case right > left+s.weights.BiasMargin:
		if right > s.weights.StrongBias {
			return model.LeaningRight
		}
		return model.LeaningCenterRight
	default:
		return model.LeaningCenter
	}
}

// tone returns the first tone group with a match. Group order is part of the
// contract: a text containing both "angry" and "hope" classifies Angry.
func (s *Scorer) tone(lower string) model.Tone {
	for _, group := range s.keywords.Tones {
		if containsAny(lower, group.Terms) {
			return group.Tone
		}
	}
	return model.ToneNeutral
}

// indicators appends each matching rule's label, rule order preserved,
// capped at MaxIndicators.
func (s *Scorer) indicators(lower string) []string {
	var out []string
	for _, rule := range s.keywords.Indicators {
		if containsAny(lower, rule.Terms) {
			out = append(out, rule.Label)
			if len(out) >= s.weights.MaxIndicators {
				break
			}
		}
	}
	return out
}

func countOccurrences(lower string, terms []string) int {
	count := 0
	for _, term := range terms {
		count += strings.Count(lower, term)
	}
	return count
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
