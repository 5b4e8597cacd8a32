package model

// OrganizationRecord is a resolved organization. Once it leaves the
// deduplication pass it is immutable: downstream stages filter or copy,
// never mutate.
type OrganizationRecord struct {
	OrganizationID    string `json:"organization_id" csv:"organization_id"`
	Name              string `json:"name" csv:"name"`
	Country           string `json:"country" csv:"country"`
	Industry          string `json:"industry" csv:"industry"`
	Description       string `json:"description" csv:"description"`
	Website           string `json:"website" csv:"website"`
	DeclaredSiteCount int    `json:"declared_site_count" csv:"declared_site_count"`
	FirstSeen         string `json:"first_seen" csv:"first_seen"`
}

// RawOrganization is an unresolved source-feed row, before normalization
// and identity assignment.
type RawOrganization struct {
	Name               string `json:"company_name" csv:"company_name"`
	Country            string `json:"country" csv:"country"`
	RegistrationNumber string `json:"registration_number" csv:"registration_number"`
	Industry           string `json:"industry" csv:"industry"`
	Description        string `json:"description" csv:"description"`
	Website            string `json:"website" csv:"website"`
	DeclaredSiteCount  int    `json:"facility_count" csv:"facility_count"`
	Source             string `json:"source" csv:"source"`
	ExtractedAt        string `json:"extracted_at" csv:"extracted_at"`
}
