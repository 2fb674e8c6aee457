package model

import "strings"

// AnalysisKind selects which analysis pipeline a submission runs through.
type AnalysisKind string

const (
	KindFactCheck AnalysisKind = "fact_check"
	KindBias      AnalysisKind = "bias"
	KindMedia     AnalysisKind = "media_authenticity"
)

// Valid reports whether the kind is one of the known pipelines.
func (k AnalysisKind) Valid() bool {
	switch k {
	case KindFactCheck, KindBias, KindMedia:
		return true
	}
	return false
}

// Submission is a single analysis request. It lives for one request and is
// never persisted.
type Submission struct {
	Content   string       `json:"content"`
	Kind      AnalysisKind `json:"kind"`
	SourceURL string       `json:"source_url,omitempty"`
}

// IsURL reports whether the submitted content looks like a fetchable URL.
func (s Submission) IsURL() bool {
	return strings.HasPrefix(strings.TrimSpace(s.Content), "http")
}

// NormalizedContent is the analyzable text resolved from a submission.
type NormalizedContent struct {
	Text           string `json:"text"`
	FetchedFromURL bool   `json:"fetched_from_url"`
	OriginalLength int    `json:"original_length"`
}

// MediaUpload describes an uploaded media file before forensics analysis.
type MediaUpload struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
}
