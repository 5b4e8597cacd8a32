package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/artifact"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/config"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/pipeline"
)

func testServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	cfg := config.Default()
	cfg.Artifacts = config.ArtifactConfig{
		RawDir:        filepath.Join(root, "raw"),
		ProcessedDir:  filepath.Join(root, "processed"),
		RelationalDir: filepath.Join(root, "relational"),
		AIDir:         filepath.Join(root, "ai"),
		FinalDir:      filepath.Join(root, "final"),
	}
	return New(cfg, zerolog.Nop()), cfg
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	rec := get(t, srv.SetupRouter(), "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOrganizationsServesLatestArtifact(t *testing.T) {
	srv, cfg := testServer(t)

	store := artifact.NewStore(cfg.Artifacts.RelationalDir, zerolog.Nop())
	recs := []model.OrganizationRecord{{
		OrganizationID:    "ORG_0A1B2C3D4E",
		Name:              "Atlas Textile",
		Country:           "Morocco",
		DeclaredSiteCount: 2,
		FirstSeen:         "2026-08-30",
	}}
	require.NoError(t, store.SaveOrganizations(pipeline.StemRelOrganizations, recs))

	rec := get(t, srv.SetupRouter(), "/api/organizations")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.OrganizationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "ORG_0A1B2C3D4E", got[0].OrganizationID)
}

func TestMissingArtifactIs404(t *testing.T) {
	srv, _ := testServer(t)
	rec := get(t, srv.SetupRouter(), "/api/stats")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing-artifact", body["error"])
	assert.Equal(t, pipeline.StemStats, body["stem"])
}

func TestDuplicatesServedFromAIStore(t *testing.T) {
	srv, cfg := testServer(t)

	store := artifact.NewStore(cfg.Artifacts.AIDir, zerolog.Nop())
	require.NoError(t, store.SaveDuplicatePairs(pipeline.StemDuplicates, nil))

	rec := get(t, srv.SetupRouter(), "/api/duplicates")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
