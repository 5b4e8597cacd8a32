// Package stats computes summary metrics over a validated relational set.
package stats

import (
	"math"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

// Summarize counts the sets and averages sites per organization. Every
// organization in the set counts in the denominator; zero links is a valid
// per-organization count. The mean is rounded to 2 decimals.
func Summarize(orgs []model.OrganizationRecord, sites []model.SiteRecord, links []model.Link) model.SummaryStats {
	perOrg := make(map[string]int, len(orgs))
	for _, o := range orgs {
		perOrg[o.OrganizationID] = 0
	}
	for _, l := range links {
		if _, ok := perOrg[l.OrganizationID]; ok {
			perOrg[l.OrganizationID]++
		}
	}

	var mean float64
	if len(perOrg) > 0 {
		total := 0
		for _, n := range perOrg {
			total += n
		}
		mean = float64(total) / float64(len(perOrg))
	}

	return model.SummaryStats{
		TotalOrganizations: len(orgs),
		TotalSites:         len(sites),
		AverageSitesPerOrg: math.Round(mean*100) / 100,
	}
}
