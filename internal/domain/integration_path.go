package domain

import "strings"

// IntegrationPath maps a named embed point on a company's site to a globally
// unique signature. Questions and ads reference paths by id.
type IntegrationPath struct {
	ID        string
	Signature string
	CompanyID string
	Type      string
	Name      string
	Path      string
	ProductID string
}

// PathSignature builds the unique signature for an integration path:
// the owning company id followed by the normalized name.
func PathSignature(companyID, name string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
	return companyID + normalized
}

// Product is a company offering that an integration path may point at.
type Product struct {
	ID        string
	CompanyID string
	Name      string
	Path      string
}
