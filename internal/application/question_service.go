package application

import (
	"context"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// QuestionService picks the next unanswered question for a person on an
// integration path.
type QuestionService struct {
	people    ports.PersonRepository
	companies ports.CompanyRepository
	paths     ports.IntegrationPathRepository
	questions ports.QuestionRepository
	templates ports.TemplateRepository
	answers   ports.AnswerRepository
	answerSvc *AnswerService
	logger    zerolog.Logger
	now       func() time.Time
}

// NewQuestionService creates a new question service
func NewQuestionService(
	people ports.PersonRepository,
	companies ports.CompanyRepository,
	paths ports.IntegrationPathRepository,
	questions ports.QuestionRepository,
	templates ports.TemplateRepository,
	answers ports.AnswerRepository,
	answerSvc *AnswerService,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		people:    people,
		companies: companies,
		paths:     paths,
		questions: questions,
		templates: templates,
		answers:   answers,
		answerSvc: answerSvc,
		logger:    logger,
		now:       time.Now,
	}
}

// NextQuestionInput identifies the person and widget location asking for a
// question. LastQuestionNumber, when set, restricts the walk to questions
// with a higher order number than the one the widget last rendered.
type NextQuestionInput struct {
	CompanyID          string
	PersonID           string
	Path               string
	LastQuestionNumber *int
}

// NextQuestion walks the company's active questions on the path, highest
// order number first, and returns the first one the person has no fresh
// answer for. A fresh answer found on another company's site is replayed
// into this week's buckets before the walk moves on. (nil, nil) means the
// person is fully profiled here for now.
func (s *QuestionService) NextQuestion(ctx context.Context, in NextQuestionInput) (*domain.FormattedQuestion, error) {
	if in.PersonID == "" || in.Path == "" {
		return nil, domain.ErrBadRequest
	}

	person, err := s.people.FindByID(ctx, in.PersonID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	pathIDs, err := s.pathIDsFor(ctx, company.ID, in.Path)
	if err != nil || len(pathIDs) == 0 {
		return nil, err
	}

	pending, err := s.questions.FindSorted(ctx, ports.QuestionFilter{
		CompanyID:          company.ID,
		MinOrderNumber:     in.LastQuestionNumber,
		ActiveOnly:         true,
		IntegrationPathIDs: pathIDs,
	})
	if err != nil {
		return nil, err
	}

	week := domain.WeekKey(s.now(), 0)
	for _, question := range pending {
		answered, err := s.answers.Exists(ctx, ports.AnswerFilter{
			TemplateID: question.TemplateID,
			PersonID:   person.ID,
			FreshAsOf:  week,
		})
		if err != nil {
			return nil, err
		}
		if answered {
			if err := s.answerSvc.BackfillFromSharedHistory(ctx, company.ID, question.ID, person.ID); err != nil {
				return nil, err
			}
			continue
		}

		template, err := s.templates.FindByID(ctx, question.TemplateID)
		if err != nil {
			return nil, err
		}
		return question.Format(template), nil
	}

	return nil, nil
}

// HasNextQuestion reports whether the path would serve a question. With an
// empty person id it only checks that the path carries active questions at
// all, which is what the widget probes before asking for an email.
func (s *QuestionService) HasNextQuestion(ctx context.Context, companyID, personID, path string) (bool, error) {
	if path == "" {
		return false, domain.ErrBadRequest
	}

	if personID == "" {
		pathIDs, err := s.pathIDsFor(ctx, companyID, path)
		if err != nil || len(pathIDs) == 0 {
			return false, err
		}
		pending, err := s.questions.FindSorted(ctx, ports.QuestionFilter{
			CompanyID:          companyID,
			ActiveOnly:         true,
			IntegrationPathIDs: pathIDs,
		})
		if err != nil {
			return false, err
		}
		return len(pending) > 0, nil
	}

	question, err := s.NextQuestion(ctx, NextQuestionInput{
		CompanyID: companyID,
		PersonID:  personID,
		Path:      path,
	})
	if err != nil {
		return false, err
	}
	return question != nil, nil
}

// PruneAnswers pulls the person out of every answer bucket belonging to the
// company's questions on the path, deleting buckets left empty.
func (s *QuestionService) PruneAnswers(ctx context.Context, companyID, personID, path string) error {
	if personID == "" || path == "" {
		return domain.ErrBadRequest
	}

	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		return err
	}

	pathIDs, err := s.pathIDsFor(ctx, companyID, path)
	if err != nil || len(pathIDs) == 0 {
		return err
	}

	questions, err := s.questions.FindSorted(ctx, ports.QuestionFilter{
		CompanyID:          companyID,
		IntegrationPathIDs: pathIDs,
	})
	if err != nil {
		return err
	}

	for _, question := range questions {
		if err := s.answers.RemovePersonByQuestion(ctx, question.ID, person.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuestionService) pathIDsFor(ctx context.Context, companyID, path string) ([]string, error) {
	paths, err := s.paths.FindByCompanyAndPath(ctx, companyID, path)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
