package application

import (
	"context"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// AnalyticsService records daily widget funnel outcomes. Each event lands in
// a capped per-day bucket and, for the outcomes the dashboard charts, bumps
// the aggregate people counter for (company, path, day, status).
type AnalyticsService struct {
	companies ports.CompanyRepository
	paths     ports.IntegrationPathRepository
	analytics ports.AnalyticsRepository
	analyses  ports.AnalysisRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	companies ports.CompanyRepository,
	paths ports.IntegrationPathRepository,
	analytics ports.AnalyticsRepository,
	analyses ports.AnalysisRepository,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		companies: companies,
		paths:     paths,
		analytics: analytics,
		analyses:  analyses,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordEvent counts one person reaching one outcome on one path today. A
// person already counted for the same (path, day, status) is not counted
// again, so a reloading widget cannot inflate the funnel.
func (s *AnalyticsService) RecordEvent(ctx context.Context, companyID, pathID string, status domain.AnalyticsStatus, personID string) error {
	if !status.Valid() {
		return domain.ErrBadRequest
	}
	if pathID == "" || personID == "" {
		return domain.ErrBadRequest
	}

	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	path, err := s.paths.FindByID(ctx, pathID)
	if err != nil {
		return err
	}
	if path.CompanyID != company.ID {
		return domain.ErrNotAuthenticated
	}

	day := domain.DayKey(s.now(), 0)

	counted, err := s.analytics.FindOne(ctx, ports.AnalyticsFilter{
		IntegrationPathID: path.ID,
		Day:               day,
		Statuses:          []domain.AnalyticsStatus{status},
		PersonID:          personID,
	})
	if err != nil {
		return err
	}
	if counted != nil {
		return nil
	}

	pushed, err := s.analytics.AppendPerson(ctx, path.ID, day, status, personID)
	if err != nil {
		return err
	}
	if !pushed {
		id, err := s.analytics.Create(ctx, &domain.Analytics{
			CompanyID:         company.ID,
			IntegrationPathID: path.ID,
			Day:               day,
			Status:            status,
		})
		if err != nil {
			return err
		}
		if err := s.analytics.AppendPersonByID(ctx, id, personID); err != nil {
			return err
		}
	}

	if status.ValidForAnalysis() {
		return s.analyses.Increment(ctx, company.ID, path.ID, day, status)
	}
	return nil
}

// RemoveEvent undoes RecordEvent for today: the person leaves the bucket and
// the aggregate counter steps back down, never below zero.
func (s *AnalyticsService) RemoveEvent(ctx context.Context, companyID, pathID string, status domain.AnalyticsStatus, personID string) error {
	if !status.Valid() {
		return domain.ErrBadRequest
	}
	if pathID == "" || personID == "" {
		return domain.ErrBadRequest
	}

	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	path, err := s.paths.FindByID(ctx, pathID)
	if err != nil {
		return err
	}
	if path.CompanyID != company.ID {
		return domain.ErrNotAuthenticated
	}

	day := domain.DayKey(s.now(), 0)

	counted, err := s.analytics.FindOne(ctx, ports.AnalyticsFilter{
		IntegrationPathID: path.ID,
		Day:               day,
		Statuses:          []domain.AnalyticsStatus{status},
		PersonID:          personID,
	})
	if err != nil {
		return err
	}
	if counted == nil {
		return nil
	}

	if err := s.analytics.RemovePerson(ctx, path.ID, day, status, personID); err != nil {
		return err
	}

	if status.ValidForAnalysis() {
		return s.analyses.Decrement(ctx, company.ID, path.ID, day, status)
	}
	return nil
}
