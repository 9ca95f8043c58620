package application

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// AdService picks the next ad a person is eligible for and tracks how they
// interact with it. Each (ad, status) pair keeps a capped bucket of people;
// a person sits in at most one bucket per ad, and recording a new status
// moves them.
type AdService struct {
	people       ports.PersonRepository
	paths        ports.IntegrationPathRepository
	ads          ports.AdRepository
	adData       ports.AdDataRepository
	targetGroups *TargetGroupService
	logger       zerolog.Logger
}

// NewAdService creates a new ad service
func NewAdService(
	people ports.PersonRepository,
	paths ports.IntegrationPathRepository,
	ads ports.AdRepository,
	adData ports.AdDataRepository,
	targetGroups *TargetGroupService,
	logger zerolog.Logger,
) *AdService {
	return &AdService{
		people:       people,
		paths:        paths,
		ads:          ads,
		adData:       adData,
		targetGroups: targetGroups,
		logger:       logger,
	}
}

// NextAd walks the company's active ads on the path in order and returns the
// first one the person is in the target group of and has not yet closed or
// clicked. Serving an ad immediately records a showed interaction, so a
// repeat call rotates past it only once the person closes or clicks.
// (nil, nil) means no ad is eligible.
func (s *AdService) NextAd(ctx context.Context, companyID, personID, path string) (*domain.AdView, error) {
	if personID == "" || path == "" {
		return nil, domain.ErrBadRequest
	}

	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	adPaths, err := s.paths.FindByCompanyAndPath(ctx, companyID, path)
	if err != nil {
		return nil, err
	}
	if len(adPaths) == 0 {
		return nil, nil
	}
	pathIDs := make([]string, 0, len(adPaths))
	for _, p := range adPaths {
		pathIDs = append(pathIDs, p.ID)
	}

	ads, err := s.ads.FindSorted(ctx, ports.AdFilter{
		CompanyID:          companyID,
		ActiveOnly:         true,
		IntegrationPathIDs: pathIDs,
	})
	if err != nil {
		return nil, err
	}

	for _, ad := range ads {
		eligible, err := s.targetGroups.CanPersonSee(ctx, companyID, ad.TargetGroupID, person.ID)
		if err != nil {
			return nil, err
		}
		if !eligible {
			continue
		}

		dismissed, err := s.adData.FindOne(ctx, ports.AdDataFilter{
			AdID:     ad.ID,
			Statuses: []domain.AdStatus{domain.AdStatusClosed, domain.AdStatusClicked},
			PersonID: person.ID,
		})
		if err != nil {
			return nil, err
		}
		if dismissed != nil {
			continue
		}

		if err := s.RecordStatus(ctx, companyID, person.ID, ad.ID, domain.AdStatusShowed); err != nil {
			return nil, err
		}
		return ad.View(), nil
	}

	return nil, nil
}

// RecordStatus moves the person into the ad's bucket for the given status,
// pulling them out of whichever bucket of the ad held them before. Recording
// the status they already hold is a no-op.
func (s *AdService) RecordStatus(ctx context.Context, companyID, personID, adID string, status domain.AdStatus) error {
	if !status.Valid() {
		return domain.ErrBadRequest
	}
	if personID == "" || adID == "" {
		return domain.ErrBadRequest
	}

	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		return err
	}
	ad, err := s.ads.FindByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.CompanyID != companyID {
		return domain.ErrNotAuthenticated
	}

	current, err := s.adData.FindOne(ctx, ports.AdDataFilter{
		AdID:     ad.ID,
		Statuses: []domain.AdStatus{status},
		PersonID: person.ID,
	})
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}

	if err := s.adData.RemovePerson(ctx, ad.ID, person.ID); err != nil {
		return err
	}

	pushed, err := s.adData.AppendPerson(ctx, ad.ID, status, person.ID)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}

	id, err := s.adData.Create(ctx, ad.ID, status)
	if err != nil {
		return err
	}
	return s.adData.AppendPersonByID(ctx, id, person.ID)
}
