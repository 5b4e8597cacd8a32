// Package graph exports the validated relational set to a Memgraph or
// Neo4j instance as a property graph: organizations and sites as nodes,
// links as OPERATES relationships.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

type Exporter struct {
	driver neo4j.DriverWithContext
	logger zerolog.Logger
}

func NewExporter(ctx context.Context, uri, username, password string, logger zerolog.Logger) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}
	logger.Info().Str("uri", uri).Msg("connected to graph database")
	return &Exporter{driver: driver, logger: logger}, nil
}

func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

// BuildIndices creates id indices for both node labels. Failures are logged
// and skipped since the index may already exist.
func (e *Exporter) BuildIndices(ctx context.Context) {
	for _, q := range []string{
		"CREATE INDEX ON :Organization(organization_id);",
		"CREATE INDEX ON :Site(site_id);",
	} {
		if _, err := e.run(ctx, q, nil); err != nil {
			e.logger.Warn().Str("query", q).Err(err).Msg("index creation skipped")
		}
	}
}

// Export upserts the three sets with batched UNWIND statements.
func (e *Exporter) Export(ctx context.Context, orgs []model.OrganizationRecord, sites []model.SiteRecord, links []model.Link) error {
	orgRows := make([]map[string]any, len(orgs))
	for i, o := range orgs {
		orgRows[i] = map[string]any{
			"organization_id": o.OrganizationID,
			"name":            o.Name,
			"country":         o.Country,
			"industry":        o.Industry,
		}
	}
	if _, err := e.run(ctx, `
		UNWIND $rows AS row
		MERGE (o:Organization {organization_id: row.organization_id})
		SET o.name = row.name, o.country = row.country, o.industry = row.industry
	`, map[string]any{"rows": orgRows}); err != nil {
		return fmt.Errorf("export organizations: %w", err)
	}

	siteRows := make([]map[string]any, len(sites))
	for i, s := range sites {
		siteRows[i] = map[string]any{
			"site_id": s.SiteID,
			"name":    s.Name,
			"country": s.Country,
		}
	}
	if _, err := e.run(ctx, `
		UNWIND $rows AS row
		MERGE (s:Site {site_id: row.site_id})
		SET s.name = row.name, s.country = row.country
	`, map[string]any{"rows": siteRows}); err != nil {
		return fmt.Errorf("export sites: %w", err)
	}

	linkRows := make([]map[string]any, len(links))
	for i, l := range links {
		linkRows[i] = map[string]any{
			"organization_id": l.OrganizationID,
			"site_id":         l.SiteID,
		}
	}
	if _, err := e.run(ctx, `
		UNWIND $rows AS row
		MATCH (o:Organization {organization_id: row.organization_id})
		MATCH (s:Site {site_id: row.site_id})
		MERGE (o)-[:OPERATES]->(s)
	`, map[string]any{"rows": linkRows}); err != nil {
		return fmt.Errorf("export links: %w", err)
	}

	e.logger.Info().
		Int("organizations", len(orgs)).
		Int("sites", len(sites)).
		Int("links", len(links)).
		Msg("graph export complete")
	return nil
}

func (e *Exporter) run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, e.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("execute graph query: %w", err)
	}
	return result, nil
}
