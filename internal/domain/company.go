package domain

// Field limits shared across entities, matching the store's schema constraints.
const (
	MaxTextFieldLength      = 10000
	MaxShortTextFieldLength = 150
	MaxIntegrationRoutes    = 100
)

// IntegrationRoute is an embed point listed on a company profile, as shown to
// the widget. The authoritative mapping from route to questions/ads lives in
// IntegrationPath documents.
type IntegrationRoute struct {
	ID       string `json:"_id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Route    string `json:"route" bson:"route"`
	IsActive bool   `json:"is_active" bson:"is_active"`
}

// Company is a tenant. Sessions resolve to a company id and every per-request
// authorization check compares it against the owning document.
type Company struct {
	ID                string
	Name              string
	Country           string
	IsOnWaitlist      bool
	Domain            string
	WaitingDomain     string
	IntegrationRoutes []IntegrationRoute
	PreferredLanguage string
	PreferredColor    string
}

// Profile is the widget-facing view of a company returned by the data route.
type Profile struct {
	Name              string             `json:"name"`
	Language          string             `json:"language"`
	PreferredColor    string             `json:"preferred_color"`
	IntegrationRoutes []IntegrationRoute `json:"integration_routes"`
}

// Profile projects the fields a widget needs to render itself.
func (c *Company) Profile() Profile {
	routes := c.IntegrationRoutes
	if routes == nil {
		routes = []IntegrationRoute{}
	}
	return Profile{
		Name:              c.Name,
		Language:          c.PreferredLanguage,
		PreferredColor:    c.PreferredColor,
		IntegrationRoutes: routes,
	}
}
