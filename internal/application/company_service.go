package application

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// CompanyService serves the widget-facing view of a tenant.
type CompanyService struct {
	companies ports.CompanyRepository
	logger    zerolog.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(companies ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{
		companies: companies,
		logger:    logger,
	}
}

// Profile returns the public projection of the company bound to the session.
func (s *CompanyService) Profile(ctx context.Context, companyID string) (*domain.Profile, error) {
	if companyID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	profile := company.Profile()
	return &profile, nil
}
