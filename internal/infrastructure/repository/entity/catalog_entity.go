package entity

import (
	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompanyDoc represents a company in MongoDB
type CompanyDoc struct {
	ID                primitive.ObjectID        `bson:"_id,omitempty"`
	Name              string                    `bson:"name"`
	Country           string                    `bson:"country,omitempty"`
	IsOnWaitlist      bool                      `bson:"is_on_waitlist"`
	Domain            string                    `bson:"domain,omitempty"`
	WaitingDomain     string                    `bson:"waiting_domain,omitempty"`
	IntegrationRoutes []domain.IntegrationRoute `bson:"integration_routes"`
	PreferredLanguage string                    `bson:"preferred_language"`
	PreferredColor    string                    `bson:"preferred_color"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *CompanyDoc) ToDomain() *domain.Company {
	return &domain.Company{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Country:           d.Country,
		IsOnWaitlist:      d.IsOnWaitlist,
		Domain:            d.Domain,
		WaitingDomain:     d.WaitingDomain,
		IntegrationRoutes: d.IntegrationRoutes,
		PreferredLanguage: d.PreferredLanguage,
		PreferredColor:    d.PreferredColor,
	}
}

// ProductDoc represents a product in MongoDB
type ProductDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID primitive.ObjectID `bson:"company_id"`
	Name      string             `bson:"name"`
	Path      string             `bson:"path"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *ProductDoc) ToDomain() *domain.Product {
	return &domain.Product{
		ID:        d.ID.Hex(),
		CompanyID: d.CompanyID.Hex(),
		Name:      d.Name,
		Path:      d.Path,
	}
}

// IntegrationPathDoc represents an integration path in MongoDB
type IntegrationPathDoc struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Signature string              `bson:"signature"`
	CompanyID primitive.ObjectID  `bson:"company_id"`
	Type      string              `bson:"type"`
	Name      string              `bson:"name"`
	Path      string              `bson:"path"`
	ProductID *primitive.ObjectID `bson:"product_id,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *IntegrationPathDoc) ToDomain() *domain.IntegrationPath {
	path := &domain.IntegrationPath{
		ID:        d.ID.Hex(),
		Signature: d.Signature,
		CompanyID: d.CompanyID.Hex(),
		Type:      d.Type,
		Name:      d.Name,
		Path:      d.Path,
	}
	if d.ProductID != nil {
		path.ProductID = d.ProductID.Hex()
	}
	return path
}
