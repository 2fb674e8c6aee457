package server

import (
	"github.com/gin-gonic/gin"

	"github.com/dmarkov/verascope/internal/model"
	"github.com/dmarkov/verascope/internal/pipeline"
	"github.com/dmarkov/verascope/internal/storage"
)

// New builds the HTTP surface. The anonymous routes run the pipeline with
// the small upload ceiling; /api/v1 routes sit behind the JWT middleware.
func New(cfg model.ServerConfig, pipe *pipeline.Pipeline, store *storage.Store) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, pipe, store)
	return g
}

func attachRoutes(g *gin.Engine, cfg model.ServerConfig, pipe *pipeline.Pipeline, store *storage.Store) {
	analyses := NewAnalyses(pipe)
	results := NewResults(store)

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := g.Group("/api")
	{
		api.POST("/factcheck", analyses.FactCheck)
		api.POST("/bias", analyses.Bias)
		api.POST("/media", analyses.MediaAnonymous)
	}

	v1 := g.Group("/api/v1")
	v1.Use(RequireAuth(cfg.JWTSecret))
	{
		v1.POST("/media", analyses.MediaAuthenticated)
		v1.GET("/results", results.List)
		v1.GET("/results/:id", results.Get)
		v1.GET("/admin/metrics", results.Metrics)
	}
}
