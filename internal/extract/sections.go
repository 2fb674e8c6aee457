package extract

import "github.com/dmarkov/verascope/internal/model"

// Section labels the narrative generator is instructed to emit. The prompt
// templates and the grammar tables below must agree verbatim: every label a
// grammar row scans for appears in the corresponding template's
// required-sections instruction.
const (
	LabelCredibilityScore   = "CREDIBILITY SCORE"
	LabelConfidence         = "CONFIDENCE"
	LabelVerificationStatus = "VERIFICATION STATUS"
	LabelAuthenticity       = "AUTHENTICITY"
	LabelRedFlags           = "RED FLAGS"
	LabelBiasIndicators     = "BIAS INDICATORS"
	LabelSources            = "SOURCES TO CHECK"
	LabelRecommendations    = "RECOMMENDATIONS"
)

// FieldKind selects how a captured span converts to a typed field.
type FieldKind int

const (
	FieldScore FieldKind = iota
	FieldConfidence
	FieldStatus
	FieldAuthenticity
	FieldFlags
	FieldSources
	FieldRecommendations
)

// Rule binds one section label to one typed field. Adding a field to a
// pipeline is one table entry.
type Rule struct {
	Label string
	Kind  FieldKind
}

var factCheckGrammar = []Rule{
	{LabelCredibilityScore, FieldScore},
	{LabelConfidence, FieldConfidence},
	{LabelVerificationStatus, FieldStatus},
	{LabelRedFlags, FieldFlags},
	{LabelSources, FieldSources},
	{LabelRecommendations, FieldRecommendations},
}

var biasGrammar = []Rule{
	{LabelConfidence, FieldConfidence},
	{LabelBiasIndicators, FieldFlags},
	{LabelSources, FieldSources},
	{LabelRecommendations, FieldRecommendations},
}

var mediaGrammar = []Rule{
	{LabelCredibilityScore, FieldScore},
	{LabelConfidence, FieldConfidence},
	{LabelAuthenticity, FieldAuthenticity},
	{LabelRedFlags, FieldFlags},
	{LabelRecommendations, FieldRecommendations},
}

// GrammarFor returns the ordered rule table for an analysis kind.
func GrammarFor(kind model.AnalysisKind) []Rule {
	switch kind {
	case model.KindBias:
		return biasGrammar
	case model.KindMedia:
		return mediaGrammar
	default:
		return factCheckGrammar
	}
}
