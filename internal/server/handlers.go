package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmarkov/verascope/internal/model"
	"github.com/dmarkov/verascope/internal/pipeline"
	"github.com/dmarkov/verascope/internal/storage"
)

// Analyses serves the submission endpoints.
type Analyses struct {
	pipe *pipeline.Pipeline
}

// NewAnalyses creates the analysis handler set.
func NewAnalyses(pipe *pipeline.Pipeline) Analyses {
	return Analyses{pipe: pipe}
}

type analysisRequest struct {
	Content string `json:"content" binding:"required"`
}

// FactCheck runs a fact-check analysis over text or a URL.
func (a Analyses) FactCheck(c *gin.Context) {
	a.analyzeText(c, model.KindFactCheck)
}

// Bias runs a bias analysis over text or a URL.
func (a Analyses) Bias(c *gin.Context) {
	a.analyzeText(c, model.KindBias)
}

func (a Analyses) analyzeText(c *gin.Context, kind model.AnalysisKind) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, model.NewValidationError("content is required"))
		return
	}

	result, err := a.pipe.AnalyzeText(c.Request.Context(), kind, req.Content, currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MediaAnonymous handles public media uploads with the small ceiling.
func (a Analyses) MediaAnonymous(c *gin.Context) {
	a.analyzeMedia(c, false)
}

// MediaAuthenticated handles authenticated uploads with the larger ceiling
// and the narrower MIME list.
func (a Analyses) MediaAuthenticated(c *gin.Context) {
	a.analyzeMedia(c, true)
}

func (a Analyses) analyzeMedia(c *gin.Context, authenticated bool) {
	header, err := c.FormFile("file")
	if err != nil {
		writeError(c, model.NewValidationError("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, model.NewValidationError("unreadable upload"))
		return
	}
	defer func() { _ = file.Close() }()

	upload := model.MediaUpload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
	}

	result, err := a.pipe.AnalyzeMedia(c.Request.Context(), upload, file, authenticated, currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Results serves stored analyses and the admin aggregates.
type Results struct {
	store *storage.Store
}

// NewResults creates the read-side handler set.
func NewResults(store *storage.Store) Results {
	return Results{store: store}
}

// List returns the newest stored results, optionally filtered by kind.
func (r Results) List(c *gin.Context) {
	kind := model.AnalysisKind(c.Query("kind"))
	if kind != "" && !kind.Valid() {
		writeError(c, model.NewValidationError("unknown kind: %s", kind))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, model.NewValidationError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	results, err := r.store.List(c.Request.Context(), kind, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Get returns one stored result by identifier.
func (r Results) Get(c *gin.Context) {
	result, err := r.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "result not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Metrics returns the aggregate admin view.
func (r Results) Metrics(c *gin.Context) {
	metrics, err := r.store.Aggregate(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
