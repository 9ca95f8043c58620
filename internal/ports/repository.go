package ports

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID retrieves a company by id
	FindByID(ctx context.Context, id string) (*domain.Company, error)
}

// PersonRepository defines the interface for person persistence
type PersonRepository interface {
	// FindByID retrieves a person by id
	FindByID(ctx context.Context, id string) (*domain.Person, error)

	// FindByEmail retrieves a person by email; (nil, nil) when none exists
	FindByEmail(ctx context.Context, email string) (*domain.Person, error)

	// Create inserts a new person and returns its id. A duplicate email
	// reports domain.ErrDuplicatedUniqueField.
	Create(ctx context.Context, email string) (string, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

// IntegrationPathRepository defines the interface for integration path persistence
type IntegrationPathRepository interface {
	FindByID(ctx context.Context, id string) (*domain.IntegrationPath, error)

	// FindByCompanyAndPath returns every path of the company matching the
	// widget's location path string.
	FindByCompanyAndPath(ctx context.Context, companyID, path string) ([]*domain.IntegrationPath, error)

	// FindByProductID returns the path pointing at a product; (nil, nil)
	// when none exists.
	FindByProductID(ctx context.Context, productID string) (*domain.IntegrationPath, error)
}

// TemplateRepository defines the interface for template persistence
type TemplateRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Template, error)
}

// QuestionFilter narrows question lookups.
type QuestionFilter struct {
	CompanyID          string
	ProductID          string
	MinOrderNumber     *int
	ActiveOnly         bool
	IntegrationPathIDs []string
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Question, error)

	// FindSorted returns questions matching the filter ordered by
	// order_number descending.
	FindSorted(ctx context.Context, filter QuestionFilter) ([]*domain.Question, error)

	// SetIntegrationPaths replaces the path list a question is shown on.
	SetIntegrationPaths(ctx context.Context, id string, pathIDs []string) error
}

// AdFilter narrows ad lookups.
type AdFilter struct {
	CompanyID          string
	ActiveOnly         bool
	IntegrationPathIDs []string
}

// AdRepository defines the interface for ad persistence
type AdRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Ad, error)

	// FindSorted returns ads matching the filter ordered by order_number
	// ascending.
	FindSorted(ctx context.Context, filter AdFilter) ([]*domain.Ad, error)
}

// TargetGroupRepository defines the interface for target group persistence
type TargetGroupRepository interface {
	FindByID(ctx context.Context, id string) (*domain.TargetGroup, error)
}
