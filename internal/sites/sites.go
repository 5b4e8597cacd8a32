// Package sites expands retained organizations into site records and
// organization-site links. Each organization yields exactly its declared
// site count, with identifiers derived from the owning organization id and
// the 1-based sequence index.
package sites

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/identity"
	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

type Generator struct {
	logger zerolog.Logger
	now    func() time.Time
}

func NewGenerator(logger zerolog.Logger) *Generator {
	return &Generator{logger: logger, now: time.Now}
}

// Generate builds the site and link sets for the given organizations.
func (g *Generator) Generate(orgs []model.OrganizationRecord) ([]model.SiteRecord, []model.Link) {
	createdAt := g.now().UTC().Format("2006-01-02")

	var sites []model.SiteRecord
	var links []model.Link
	for _, org := range orgs {
		for i := 1; i <= org.DeclaredSiteCount; i++ {
			siteID := identity.SiteID(org.OrganizationID, i)
			sites = append(sites, model.SiteRecord{
				SiteID:    siteID,
				Name:      fmt.Sprintf("%s Site %d", org.Name, i),
				Country:   org.Country,
				CreatedAt: createdAt,
			})
			links = append(links, model.Link{
				OrganizationID: org.OrganizationID,
				SiteID:         siteID,
			})
		}
	}

	g.logger.Info().
		Int("organizations", len(orgs)).
		Int("sites", len(sites)).
		Int("links", len(links)).
		Msg("site generation complete")
	return sites, links
}
