package application

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

// PersonService resolves widget visitors to person documents. People are
// shared across companies: one document per email, created lazily on the
// first site that collects it.
type PersonService struct {
	people ports.PersonRepository
	logger zerolog.Logger
}

// NewPersonService creates a new person service
func NewPersonService(people ports.PersonRepository, logger zerolog.Logger) *PersonService {
	return &PersonService{
		people: people,
		logger: logger,
	}
}

// FindOrCreateByEmail returns the person holding an email, creating the
// document on first contact. Two concurrent first contacts race on the
// unique email index; the loser falls back to a lookup instead of failing.
func (s *PersonService) FindOrCreateByEmail(ctx context.Context, email string) (*domain.Person, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > domain.MaxShortTextFieldLength {
		return nil, domain.ErrBadRequest
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrBadRequest
	}

	person, err := s.people.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if person != nil {
		return person, nil
	}

	id, err := s.people.Create(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatedUniqueField) {
			person, err = s.people.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if person != nil {
				return person, nil
			}
			return nil, domain.ErrDuplicatedUniqueField
		}
		return nil, err
	}

	s.logger.Debug().Str("person_id", id).Msg("created person")
	return &domain.Person{ID: id, Email: email}, nil
}

// FindByID retrieves a person by id.
func (s *PersonService) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	if id == "" {
		return nil, domain.ErrBadRequest
	}
	return s.people.FindByID(ctx, id)
}
