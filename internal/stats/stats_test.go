package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

func TestSummarizeZeroLinkOrgCountsInDenominator(t *testing.T) {
	orgs := []model.OrganizationRecord{
		{OrganizationID: "A"},
		{OrganizationID: "B"},
		{OrganizationID: "C"}, // no links
	}
	sites := []model.SiteRecord{
		{SiteID: "S1"}, {SiteID: "S2"}, {SiteID: "S3"}, {SiteID: "S4"},
	}
	links := []model.Link{
		{OrganizationID: "A", SiteID: "S1"},
		{OrganizationID: "A", SiteID: "S2"},
		{OrganizationID: "A", SiteID: "S3"},
		{OrganizationID: "B", SiteID: "S4"},
	}

	summary := Summarize(orgs, sites, links)
	assert.Equal(t, 3, summary.TotalOrganizations)
	assert.Equal(t, 4, summary.TotalSites)
	// Counts [3,1,0] over 3 organizations: mean 4/3, rounded to 1.33.
	assert.Equal(t, 1.33, summary.AverageSitesPerOrg)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, nil, nil)
	assert.Equal(t, model.SummaryStats{}, summary)
}

func TestSummarizeIgnoresDanglingLinks(t *testing.T) {
	orgs := []model.OrganizationRecord{{OrganizationID: "A"}}
	links := []model.Link{
		{OrganizationID: "A", SiteID: "S1"},
		{OrganizationID: "X", SiteID: "S2"}, // dangling, not counted
	}

	summary := Summarize(orgs, nil, links)
	assert.Equal(t, 1.0, summary.AverageSitesPerOrg)
}
