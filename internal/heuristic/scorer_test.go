package heuristic

import (
	"strings"
	"testing"

	"github.com/dmarkov/verascope/internal/model"
)

func TestClassifyBias_Leaning(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		text string
		want model.Leaning
	}{
		{
			name: "strong left",
			text: "The progressive liberal socialist movement champions social justice.",
			want: model.LeaningLeft,
		},
		{
			name: "moderate left",
			text: "A progressive outlook on equity in schools.",
			want: model.LeaningCenterLeft,
		},
		{
			name: "strong right",
			text: "Conservative patriots defend traditional values, the free market and border security.",
			want: model.LeaningRight,
		},
		{
			name: "moderate right",
			text: "A conservative take on deregulation.",
			want: model.LeaningCenterRight,
		},
		{
			name: "balanced one each",
			text: "A progressive host debated a conservative guest.",
			want: model.LeaningCenter,
		},
		{
			name: "no keywords",
			text: "The weather was mild on Tuesday.",
			want: model.LeaningCenter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ClassifyBias(tt.text)
			if got.Leaning != tt.want {
				t.Errorf("leaning = %s, want %s", got.Leaning, tt.want)
			}
		})
	}
}

func TestClassifyBias_Tone(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		text string
		want model.Tone
	}{
		{"angry", "Readers were outraged and furious at the decision.", model.ToneAngry},
		{"fear", "The report warns of a looming danger and growing threat.", model.ToneFear},
		{"hopeful", "There is hope for a bright future.", model.ToneHopeful},
		{"neutral", "The committee met on Thursday.", model.ToneNeutral},
		// Group order is the contract: angry wins over hopeful.
		{"angry beats hopeful", "Angry crowds still hope for change.", model.ToneAngry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ClassifyBias(tt.text)
			if got.Tone != tt.want {
				t.Errorf("tone = %s, want %s", got.Tone, tt.want)
			}
		})
	}
}

func TestClassifyBias_Indicators(t *testing.T) {
	scorer := NewScorer()

	got := scorer.ClassifyBias("They say this always happens!! Sources claim it never fails.")

	wantLabels := map[string]bool{
		"absolute statements":   true,
		"vague attribution":     true,
		"excessive punctuation": true,
	}
	if len(got.Indicators) != len(wantLabels) {
		t.Fatalf("expected %d indicators, got %v", len(wantLabels), got.Indicators)
	}
	for _, label := range got.Indicators {
		if !wantLabels[label] {
			t.Errorf("unexpected indicator %q", label)
		}
	}
}

func TestClassifyBias_IndicatorCap(t *testing.T) {
	kw := DefaultKeywords()
	w := DefaultWeights()
	w.MaxIndicators = 2
	scorer := NewScorerWith(kw, w)

	got := scorer.ClassifyBias("They say it always happens!! What could go wrong???")
	if len(got.Indicators) > 2 {
		t.Errorf("expected at most 2 indicators, got %d", len(got.Indicators))
	}
}

func TestCredibilityBaseline(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"neutral text", "The committee met on Thursday.", 50},
		{"verified boost", "The claim was verified by officials.", 70},
		{"false penalty", "The story was false and misleading.", 20},
		{"mixed", "A verified report on misleading propaganda.", 50 + 20 - 30 - 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.CredibilityBaseline(tt.text); got != tt.want {
				t.Errorf("baseline = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCredibilityBaseline_Clamped(t *testing.T) {
	scorer := NewScorer()

	low := scorer.CredibilityBaseline("false misleading questionable bias propaganda rumors")
	if low < 0 {
		t.Errorf("baseline below zero: %d", low)
	}
	if low != 0 {
		t.Errorf("expected clamp to 0, got %d", low)
	}
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer()
	text := "Progressive voices were outraged!! They say it always happens."

	first := scorer.ClassifyBias(text)
	second := scorer.ClassifyBias(text)

	if first.Leaning != second.Leaning || first.Tone != second.Tone {
		t.Error("classification is not deterministic")
	}
	if strings.Join(first.Indicators, "|") != strings.Join(second.Indicators, "|") {
		t.Error("indicators are not deterministic")
	}
}
