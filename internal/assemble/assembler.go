package assemble

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkov/verascope/internal/model"
)

// Assembler merges the heuristic and extracted signals into one immutable
// record. It is the sole producer of AnalysisResult; once the record is
// handed to the persistence collaborator it is read-only.
type Assembler struct {
	maxListEntries int
	// Confidence, when not separately extracted, derives from the score
	// bounded to this window so automated confidence never reads as
	// either totally unreliable or absolutely certain.
	confidenceFloor   int
	confidenceCeiling int
}

// NewAssembler creates an Assembler honoring the configured list cap.
func NewAssembler(limits model.LimitsConfig) *Assembler {
	return &Assembler{
		maxListEntries:    limits.MaxListEntries,
		confidenceFloor:   60,
		confidenceCeiling: 95,
	}
}

// Assemble builds the final record. Extracted numeric and enum fields take
// precedence; heuristic fields are the fallback and, for the bias kind, the
// primary classification. List fields are capped here, earliest-first.
func (a *Assembler) Assemble(kind model.AnalysisKind, heur model.HeuristicResult, ext model.ExtractedFields, narrative, sourceURL string) model.AnalysisResult {
	score := heur.BaselineScore
	if ext.Score != nil {
		score = *ext.Score
	}
	score = model.Clamp(score, 0, 100)

	confidence := model.Clamp(score, a.confidenceFloor, a.confidenceCeiling)
	if ext.Confidence != nil {
		confidence = model.Clamp(*ext.Confidence, 0, 100)
	}

	return model.AnalysisResult{
		ID:        fmt.Sprintf("va-%s", uuid.NewString()),
		Kind:      kind,
		CreatedAt: time.Now().UTC(),

		Score:        score,
		Confidence:   confidence,
		Status:       ext.Status,
		Authenticity: ext.Authenticity,

		Leaning: heur.Leaning,
		Tone:    heur.Tone,

		Indicators:      a.cap(heur.Indicators),
		Flags:           a.cap(ext.Flags),
		Sources:         a.cap(ext.Sources),
		Recommendations: a.cap(ext.Recommendations),

		Narrative: narrative,
		SourceURL: sourceURL,
	}
}

func (a *Assembler) cap(items []string) []string {
	if len(items) <= a.maxListEntries {
		return items
	}
	return items[:a.maxListEntries]
}
