package application

import (
	"context"
	"strings"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// AnswerService writes people into weekly answer buckets. A bucket groups
// everyone who gave the same answer to the same template within one week,
// capped at domain.MaxBucketMembers; the member past the cap lands in a
// freshly created bucket for the same key.
type AnswerService struct {
	people    ports.PersonRepository
	questions ports.QuestionRepository
	templates ports.TemplateRepository
	answers   ports.AnswerRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAnswerService creates a new answer service
func NewAnswerService(
	people ports.PersonRepository,
	questions ports.QuestionRepository,
	templates ports.TemplateRepository,
	answers ports.AnswerRepository,
	logger zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		people:    people,
		questions: questions,
		templates: templates,
		answers:   answers,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmitAnswerInput carries one submission from the widget. Answers holds the
// selections of a multiple-choice question, Answer everything else.
type SubmitAnswerInput struct {
	CompanyID  string
	PersonID   string
	QuestionID string
	Answer     string
	Answers    []string
	Multiple   bool
}

// SubmitAnswer validates a submission against its template and records it.
// Multiple-choice submissions are expanded selection by selection; the first
// invalid selection aborts the rest.
func (s *AnswerService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) error {
	if in.PersonID == "" || in.QuestionID == "" {
		return domain.ErrBadRequest
	}

	person, err := s.people.FindByID(ctx, in.PersonID)
	if err != nil {
		return err
	}
	question, err := s.questions.FindByID(ctx, in.QuestionID)
	if err != nil {
		return err
	}
	if question.CompanyID != in.CompanyID {
		return domain.ErrNotAuthenticated
	}
	template, err := s.templates.FindByID(ctx, question.TemplateID)
	if err != nil {
		return err
	}

	if in.Multiple {
		if template.Subtype != domain.SubtypeMultiple {
			return domain.ErrBadRequest
		}
		for _, answer := range in.Answers {
			if err := s.recordAnswer(ctx, question, template, person.ID, answer, false); err != nil {
				return err
			}
		}
		return nil
	}

	return s.recordAnswer(ctx, question, template, person.ID, in.Answer, false)
}

// BackfillFromSharedHistory replays a person's fresh answers to a question's
// template, given on other companies' sites, into current-week buckets. This
// is what lets a returning person skip questions a newly integrated company
// never asked them.
func (s *AnswerService) BackfillFromSharedHistory(ctx context.Context, companyID, questionID, personID string) error {
	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		return err
	}
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.CompanyID != companyID {
		return domain.ErrNotAuthenticated
	}
	template, err := s.templates.FindByID(ctx, question.TemplateID)
	if err != nil {
		return err
	}

	history, err := s.answers.Find(ctx, ports.AnswerFilter{
		TemplateID: template.ID,
		PersonID:   person.ID,
		FreshAsOf:  domain.WeekKey(s.now(), 0),
	})
	if err != nil {
		return err
	}

	for _, given := range history {
		if err := s.recordAnswer(ctx, question, template, person.ID, given.AnswerGiven, true); err != nil {
			return err
		}
	}
	return nil
}

// recordAnswer places one person into the weekly bucket for
// (template, answer). Re-submitting an answer already held fresh is a no-op;
// a replay instead only skips when the person already sits in this week's
// bucket, since its whole point is materializing current-week groups from
// older ones. The capacity predicate lives in the append filter itself, so a
// full bucket simply never matches and the person rolls over into a new one.
func (s *AnswerService) recordAnswer(ctx context.Context, question *domain.Question, template *domain.Template, personID, answer string, replay bool) error {
	answer = strings.TrimSpace(answer)
	if answer == "" || len(answer) > domain.MaxTextFieldLength {
		return domain.ErrBadRequest
	}
	if err := template.Rule().Validate(answer); err != nil {
		return err
	}

	week := domain.WeekKey(s.now(), 0)

	existing := ports.AnswerFilter{
		TemplateID: template.ID,
		Answer:     answer,
		PersonID:   personID,
		FreshAsOf:  week,
	}
	if replay {
		existing.Week = week
	}
	given, err := s.answers.Exists(ctx, existing)
	if err != nil {
		return err
	}
	if given {
		return nil
	}

	pushed, err := s.answers.AppendPerson(ctx, ports.AnswerFilter{
		TemplateID: template.ID,
		Answer:     answer,
		Week:       week,
		FreshAsOf:  week,
	}, personID)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}

	id, err := s.answers.Create(ctx, &domain.Answer{
		TemplateID:  template.ID,
		QuestionID:  question.ID,
		AnswerGiven: answer,
		WeekGiven:   week,
		WeekExpires: domain.WeekKey(s.now(), template.TimeoutWeeksFor(answer)),
	})
	if err != nil {
		return err
	}
	return s.answers.AppendPersonByID(ctx, id, personID)
}
