package artifact

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zerolog.Nop())
}

func TestOrganizationsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	recs := []model.OrganizationRecord{
		{
			OrganizationID:    "ORG_AAAAAAAAAA",
			Name:              "Atlas Textile",
			Country:           "Morocco",
			Industry:          "Textiles",
			Description:       "Textile producer, regional supply chains.",
			Website:           "https://example.com",
			DeclaredSiteCount: 3,
			FirstSeen:         "2026-01-15",
		},
		{
			OrganizationID: "ORG_BBBBBBBBBB",
			Name:           "Iberia Footwear",
			Country:        "Spain",
		},
	}

	require.NoError(t, s.SaveOrganizations("organizations_cleaned", recs))
	loaded, err := s.LoadOrganizations("organizations_cleaned")
	require.NoError(t, err)
	assert.Equal(t, recs, loaded)
}

func TestMissingArtifactIsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadOrganizations("organizations_cleaned")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLatestPicksGreatestName(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))

	older := "organizations_cleaned_20240101_000000.csv"
	newer := "organizations_cleaned_20240102_000000.csv"
	for _, name := range []string{newer, older} {
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), name), []byte("organization_id\n"), 0o644))
	}

	path, err := s.Latest("organizations_cleaned", ".csv")
	require.NoError(t, err)
	assert.Equal(t, newer, filepath.Base(path))
}

func TestLatestTiebreaksLexicographically(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))

	// Two artifacts sharing a timestamp tie-break on the rest of the
	// filename.
	a := "organizations_cleaned_20240101_000000.csv"
	b := "organizations_cleaned_20240101_000000b.csv"
	for _, name := range []string{a, b} {
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), name), []byte("organization_id\n"), 0o644))
	}

	path, err := s.Latest("organizations_cleaned", ".csv")
	require.NoError(t, err)
	assert.Equal(t, b, filepath.Base(path))
}

func TestManifestPointerWins(t *testing.T) {
	s := newTestStore(t)
	recs := []model.Link{{OrganizationID: "ORG_AAAAAAAAAA", SiteID: "STE_AAAAAAAAAA"}}
	require.NoError(t, s.SaveLinks("organization_sites", recs))

	// A later-sorting file exists, but the manifest still points at the
	// recorded artifact.
	decoy := "organization_sites_99999999_999999.csv"
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), decoy), []byte("organization_id,site_id\nX,Y\n"), 0o644))

	loaded, err := s.LoadLinks("organization_sites")
	require.NoError(t, err)
	assert.Equal(t, recs, loaded)
}

func TestMalformedOptionalFieldsDefault(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))

	csv := "organization_id,name,country,declared_site_count\n" +
		"ORG_AAAAAAAAAA,Atlas Textile,Morocco,not-a-number\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(s.Dir(), "organizations_cleaned_20240101_000000.csv"),
		[]byte(csv), 0o644))

	loaded, err := s.LoadOrganizations("organizations_cleaned")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 0, loaded[0].DeclaredSiteCount)
	assert.Equal(t, "", loaded[0].Industry)
}

func TestLoadValidatedJSON(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveDocument("summary_stats", model.SummaryStats{
		TotalOrganizations: 2,
		TotalSites:         5,
		AverageSitesPerOrg: 2.5,
	}))

	raw, err := s.LoadValidatedJSON("summary_stats", "summary_stats")
	require.NoError(t, err)

	var doc model.SummaryStats
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 2, doc.TotalOrganizations)
}

func TestLoadValidatedJSONRejectsSchemaViolations(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(s.Dir(), "summary_stats_20240101_000000.json"),
		[]byte(`{"total_organizations": -1}`), 0o644))

	_, err := s.LoadValidatedJSON("summary_stats", "summary_stats")
	assert.Error(t, err)
}

func TestDuplicatePairsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	pairs := []model.DuplicatePair{
		{
			OrganizationID1: "ORG_AAAAAAAAAA",
			Name1:           "Atlas Textile",
			OrganizationID2: "ORG_BBBBBBBBBB",
			Name2:           "Atlas Textiles",
			Similarity:      0.954,
		},
	}
	require.NoError(t, s.SaveDuplicatePairs("duplicate_organizations", pairs))

	loaded, err := s.LoadDuplicatePairs("duplicate_organizations")
	require.NoError(t, err)
	assert.Equal(t, pairs, loaded)
}

func TestEmptyDuplicatePairsValidJSONArtifact(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveDuplicatePairs("duplicate_organizations", nil))

	raw, err := s.LoadValidatedJSON("duplicate_organizations", "duplicate_pairs")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
