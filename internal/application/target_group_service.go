package application

import (
	"context"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// TargetGroupService evaluates answer-based audience filters.
type TargetGroupService struct {
	targetGroups ports.TargetGroupRepository
	answers      ports.AnswerRepository
	logger       zerolog.Logger
	now          func() time.Time
}

// NewTargetGroupService creates a new target group service
func NewTargetGroupService(
	targetGroups ports.TargetGroupRepository,
	answers ports.AnswerRepository,
	logger zerolog.Logger,
) *TargetGroupService {
	return &TargetGroupService{
		targetGroups: targetGroups,
		answers:      answers,
		logger:       logger,
		now:          time.Now,
	}
}

// CanPersonSee reports whether the person satisfies every filter of the
// target group: for each filter there must be a fresh bucket naming them with
// one of the allowed answers to the filter's template. The walk stops at the
// first filter that fails.
func (s *TargetGroupService) CanPersonSee(ctx context.Context, companyID, targetGroupID, personID string) (bool, error) {
	if targetGroupID == "" || personID == "" {
		return false, domain.ErrBadRequest
	}

	group, err := s.targetGroups.FindByID(ctx, targetGroupID)
	if err != nil {
		return false, err
	}
	if group.CompanyID != companyID {
		return false, domain.ErrNotAuthenticated
	}

	week := domain.WeekKey(s.now(), 0)
	for _, filter := range group.Filters {
		matched, err := s.answers.Exists(ctx, ports.AnswerFilter{
			TemplateID: filter.TemplateID,
			Answers:    filter.AllowedAnswers,
			PersonID:   personID,
			FreshAsOf:  week,
		})
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
