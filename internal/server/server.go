// Package server exposes the latest pipeline artifacts over a read-only
// HTTP API, the data surface behind the dashboard. Documents are
// revalidated against their embedded schemas on every read.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/artifact"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/pipeline"
)

type Server struct {
	relational *artifact.Store
	ai         *artifact.Store
	final      *artifact.Store
	logger     zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		relational: artifact.NewStore(cfg.Artifacts.RelationalDir, logger),
		ai:         artifact.NewStore(cfg.Artifacts.AIDir, logger),
		final:      artifact.NewStore(cfg.Artifacts.FinalDir, logger),
		logger:     logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/organizations", s.document(s.relational, pipeline.StemRelOrganizations, "organizations"))
	api.GET("/sites", s.document(s.relational, pipeline.StemRelSites, "sites"))
	api.GET("/links", s.document(s.relational, pipeline.StemRelLinks, "links"))
	api.GET("/validation", s.document(s.relational, pipeline.StemReport, "validation_report"))
	api.GET("/duplicates", s.document(s.ai, pipeline.StemDuplicates, "duplicate_pairs"))
	api.GET("/stats", s.document(s.final, pipeline.StemStats, "summary_stats"))

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// document serves the latest validated JSON artifact for a stem.
func (s *Server) document(store *artifact.Store, stem, schema string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := store.LoadValidatedJSON(stem, schema)
		if err != nil {
			if errors.Is(err, artifact.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error": "missing-artifact",
					"stem":  stem,
				})
				return
			}
			s.logger.Error().Err(err).Str("stem", stem).Msg("artifact read failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "artifact read failed"})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}
