// Package relcheck validates referential integrity across the organization,
// site and link sets. It is advisory by design: violations are reported in
// the result, never raised as errors, and the inputs are never mutated.
package relcheck

import (
	"sort"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

// Validate computes a ValidationReport for the three record sets. Result
// slices are sorted so repeated runs over the same data produce identical
// reports.
func Validate(orgs []model.OrganizationRecord, sites []model.SiteRecord, links []model.Link) model.ValidationReport {
	orgIDs := make(map[string]int, len(orgs))
	for _, o := range orgs {
		orgIDs[o.OrganizationID]++
	}
	siteIDs := make(map[string]int, len(sites))
	for _, s := range sites {
		siteIDs[s.SiteID]++
	}

	linkedOrgs := make(map[string]struct{}, len(links))
	linkedSites := make(map[string]struct{}, len(links))
	linkPairs := make(map[model.Link]int, len(links))
	for _, l := range links {
		linkedOrgs[l.OrganizationID] = struct{}{}
		linkedSites[l.SiteID] = struct{}{}
		linkPairs[l]++
	}

	report := model.ValidationReport{
		MissingOrganizations: missingFrom(linkedOrgs, orgIDs),
		MissingSites:         missingFrom(linkedSites, siteIDs),
		OrphanOrganizations:  unreferenced(orgIDs, linkedOrgs),
		OrphanSites:          unreferenced(siteIDs, linkedSites),
	}

	for _, count := range orgIDs {
		if count > 1 {
			report.DuplicateOrgIDs = true
			break
		}
	}
	for _, count := range siteIDs {
		if count > 1 {
			report.DuplicateSiteIDs = true
			break
		}
	}
	for _, count := range linkPairs {
		if count > 1 {
			report.DuplicateLinks = true
			break
		}
	}

	return report
}

// missingFrom returns the referenced ids absent from the entity set:
// dangling references. The result is never nil so the persisted report
// always carries JSON arrays.
func missingFrom(referenced map[string]struct{}, entities map[string]int) []string {
	out := []string{}
	for id := range referenced {
		if _, ok := entities[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// unreferenced returns the entity ids no link points at: orphans.
func unreferenced(entities map[string]int, referenced map[string]struct{}) []string {
	out := []string{}
	for id := range entities {
		if _, ok := referenced[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
