package model

// ValidationReport is the advisory output of a relational validation run.
// Violations are reported, never enforced: callers decide whether to halt.
type ValidationReport struct {
	MissingOrganizations []string `json:"missing_organizations"`
	MissingSites         []string `json:"missing_sites"`
	OrphanOrganizations  []string `json:"orphan_organizations"`
	OrphanSites          []string `json:"orphan_sites"`
	DuplicateOrgIDs      bool     `json:"duplicate_organization_ids"`
	DuplicateSiteIDs     bool     `json:"duplicate_site_ids"`
	DuplicateLinks       bool     `json:"duplicate_links"`
}

// Clean reports whether the run found no integrity violations at all.
func (r ValidationReport) Clean() bool {
	return len(r.MissingOrganizations) == 0 &&
		len(r.MissingSites) == 0 &&
		len(r.OrphanOrganizations) == 0 &&
		len(r.OrphanSites) == 0 &&
		!r.DuplicateOrgIDs && !r.DuplicateSiteIDs && !r.DuplicateLinks
}

// DuplicatePair is one semantically near-identical organization pair.
// The pair is unordered; position 1 always holds the earlier sample index
// so mirrored pairs are never emitted.
type DuplicatePair struct {
	OrganizationID1 string  `json:"organization_id_1" csv:"organization_id_1"`
	Name1           string  `json:"name_1" csv:"name_1"`
	OrganizationID2 string  `json:"organization_id_2" csv:"organization_id_2"`
	Name2           string  `json:"name_2" csv:"name_2"`
	Similarity      float64 `json:"similarity" csv:"similarity"`
}

// SummaryStats is the aggregate document exported at the end of a run.
type SummaryStats struct {
	TotalOrganizations int     `json:"total_organizations"`
	TotalSites         int     `json:"total_sites"`
	AverageSitesPerOrg float64 `json:"average_sites_per_organization"`
}
