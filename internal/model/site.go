package model

// SiteRecord is a physical site generated from a retained organization.
// The engine validates these but never mutates them.
type SiteRecord struct {
	SiteID    string `json:"site_id" csv:"site_id"`
	Name      string `json:"name" csv:"name"`
	Country   string `json:"country" csv:"country"`
	CreatedAt string `json:"created_at" csv:"created_at"`
}

// Link ties an organization to one of its sites. Each site has exactly one
// owning link in a well-formed set; the validator detects violations rather
// than assuming this holds.
type Link struct {
	OrganizationID string `json:"organization_id" csv:"organization_id"`
	SiteID         string `json:"site_id" csv:"site_id"`
}
