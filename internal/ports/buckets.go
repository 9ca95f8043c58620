package ports

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
)

// AnswerFilter narrows answer-bucket lookups. FreshAsOf is the current week
// key; every lookup is scoped to buckets whose expiry week is strictly after
// it, so a bucket expires the moment the current week reaches its deadline.
type AnswerFilter struct {
	TemplateID string
	QuestionID string
	PersonID   string
	Answer     string
	Answers    []string
	Week       int64
	NotFull    bool
	FreshAsOf  int64
}

// AnswerRepository defines the interface for answer-bucket persistence
type AnswerRepository interface {
	// FindOne returns the first bucket matching the filter; (nil, nil)
	// when none exists.
	FindOne(ctx context.Context, filter AnswerFilter) (*domain.Answer, error)

	// Find returns every bucket matching the filter.
	Find(ctx context.Context, filter AnswerFilter) ([]*domain.Answer, error)

	// Exists reports whether any bucket matches the filter.
	Exists(ctx context.Context, filter AnswerFilter) (bool, error)

	// Create inserts a new empty bucket and returns its id.
	Create(ctx context.Context, answer *domain.Answer) (string, error)

	// AppendPerson atomically adds the person to one bucket matching the
	// filter that is under capacity and does not already name them. The
	// capacity predicate is part of the matched filter, not a separate
	// read. Returns false when no such bucket exists.
	AppendPerson(ctx context.Context, filter AnswerFilter, personID string) (bool, error)

	// AppendPersonByID adds the person to a specific bucket, still
	// guarded by the capacity predicate.
	AppendPersonByID(ctx context.Context, id, personID string) error

	// RemovePersonByQuestion pulls the person out of every bucket of the
	// question, pruning buckets left empty.
	RemovePersonByQuestion(ctx context.Context, questionID, personID string) error
}

// AdDataFilter narrows ad-data bucket lookups.
type AdDataFilter struct {
	AdID     string
	Statuses []domain.AdStatus
	PersonID string
}

// AdDataRepository defines the interface for ad interaction persistence
type AdDataRepository interface {
	// FindOne returns the first bucket matching the filter; (nil, nil)
	// when none exists.
	FindOne(ctx context.Context, filter AdDataFilter) (*domain.AdData, error)

	// Create inserts a new empty bucket for (ad, status).
	Create(ctx context.Context, adID string, status domain.AdStatus) (string, error)

	// AppendPerson atomically adds the person to an under-capacity bucket
	// for (ad, status). Returns false when no such bucket exists.
	AppendPerson(ctx context.Context, adID string, status domain.AdStatus, personID string) (bool, error)

	// AppendPersonByID adds the person to a specific bucket.
	AppendPersonByID(ctx context.Context, id, personID string) error

	// RemovePerson pulls the person out of whichever bucket of the ad
	// currently names them.
	RemovePerson(ctx context.Context, adID, personID string) error
}

// AnalyticsFilter narrows analytics bucket lookups.
type AnalyticsFilter struct {
	IntegrationPathID string
	Day               int64
	Statuses          []domain.AnalyticsStatus
	PersonID          string
	NotFull           bool
}

// AnalyticsRepository defines the interface for daily analytics buckets
type AnalyticsRepository interface {
	FindOne(ctx context.Context, filter AnalyticsFilter) (*domain.Analytics, error)

	Create(ctx context.Context, analytics *domain.Analytics) (string, error)

	// AppendPerson atomically adds the person to an under-capacity bucket
	// for (path, day, status). Returns false when no such bucket exists.
	AppendPerson(ctx context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) (bool, error)

	AppendPersonByID(ctx context.Context, id, personID string) error

	// RemovePerson pulls the person out of the bucket for
	// (path, day, status) when it names them.
	RemovePerson(ctx context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) error
}

// AnalysisRepository maintains the aggregate people counters. Both operations
// are single atomic store updates keyed by (company, path, day, status);
// Increment upserts the counter document on first use and Decrement never
// drives a counter below zero.
type AnalysisRepository interface {
	Increment(ctx context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error
	Decrement(ctx context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error
}
