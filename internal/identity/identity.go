// Package identity derives content-addressed identifiers for organizations
// and sites. The same canonical input always yields the same identifier;
// collisions are improbable at the volumes this system handles, not
// impossible.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	orgPrefix  = "ORG_"
	sitePrefix = "STE_"
	digestLen  = 10
)

// OrganizationID derives the identifier for a canonical (name, country)
// pair. The separator keeps ("AB","C") and ("A","BC") from colliding.
func OrganizationID(canonicalName, canonicalCountry string) string {
	return orgPrefix + digest(strings.ToLower(canonicalName)+"|"+strings.ToLower(canonicalCountry))
}

// SiteID derives the identifier for the seq-th site of an organization.
// Sequence indexes are 1-based.
func SiteID(organizationID string, seq int) string {
	return sitePrefix + digest(fmt.Sprintf("%s|%d", organizationID, seq))
}

func digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:digestLen])
}
