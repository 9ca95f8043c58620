package repository

import (
	"context"
	"strings"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/infrastructure/repository/entity"
	"pulse-core-targeting-api/internal/infrastructure/store"
	"pulse-core-targeting-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAnswerRepository implements AnswerRepository using MongoDB
type MongoAnswerRepository struct {
	answers *store.Collection[entity.AnswerDoc]
}

// NewMongoAnswerRepository creates a new MongoDB answer repository
func NewMongoAnswerRepository(db *mongo.Database) ports.AnswerRepository {
	return &MongoAnswerRepository{
		answers: store.NewCollection[entity.AnswerDoc](db, "answers"),
	}
}

// answerFilters translates an AnswerFilter into a store filter. Every lookup
// is scoped to buckets that have not expired as of the given week.
func answerFilters(filter ports.AnswerFilter) (bson.M, error) {
	filters := bson.M{
		"week_answer_will_be_outdated_in_unix_time": bson.M{"$gt": filter.FreshAsOf},
	}

	if filter.TemplateID != "" {
		oid, err := store.ObjectID(filter.TemplateID)
		if err != nil {
			return nil, err
		}
		filters["template_id"] = oid
	}

	if filter.QuestionID != "" {
		oid, err := store.ObjectID(filter.QuestionID)
		if err != nil {
			return nil, err
		}
		filters["question_id"] = oid
	}

	if filter.PersonID != "" {
		filters["person_id_list"] = filter.PersonID
	}

	if filter.Answer != "" {
		filters["answer_given_to_question"] = strings.TrimSpace(filter.Answer)
	}

	if len(filter.Answers) > 0 {
		filters["answer_given_to_question"] = bson.M{"$in": filter.Answers}
	}

	if filter.Week != 0 {
		filters["week_answer_is_given_in_unix_time"] = filter.Week
	}

	if filter.NotFull {
		filters["person_id_list_length"] = bson.M{"$lt": domain.MaxBucketMembers}
	}

	return filters, nil
}

// FindOne returns the first bucket matching the filter
func (r *MongoAnswerRepository) FindOne(ctx context.Context, filter ports.AnswerFilter) (*domain.Answer, error) {
	filters, err := answerFilters(filter)
	if err != nil {
		return nil, err
	}

	doc, err := r.answers.FindOne(ctx, filters)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// Find returns every bucket matching the filter
func (r *MongoAnswerRepository) Find(ctx context.Context, filter ports.AnswerFilter) ([]*domain.Answer, error) {
	filters, err := answerFilters(filter)
	if err != nil {
		return nil, err
	}

	docs, err := r.answers.Find(ctx, filters, nil)
	if err != nil {
		return nil, err
	}

	answers := make([]*domain.Answer, 0, len(docs))
	for _, doc := range docs {
		answers = append(answers, doc.ToDomain())
	}
	return answers, nil
}

// Exists reports whether any bucket matches the filter
func (r *MongoAnswerRepository) Exists(ctx context.Context, filter ports.AnswerFilter) (bool, error) {
	filters, err := answerFilters(filter)
	if err != nil {
		return false, err
	}

	n, err := r.answers.Count(ctx, filters)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new empty bucket
func (r *MongoAnswerRepository) Create(ctx context.Context, answer *domain.Answer) (string, error) {
	templateID, err := store.ObjectID(answer.TemplateID)
	if err != nil {
		return "", err
	}
	questionID, err := store.ObjectID(answer.QuestionID)
	if err != nil {
		return "", err
	}

	return r.answers.InsertOne(ctx, entity.AnswerDoc{
		TemplateID:  templateID,
		QuestionID:  questionID,
		AnswerGiven: answer.AnswerGiven,
		WeekGiven:   answer.WeekGiven,
		WeekExpires: answer.WeekExpires,
		PersonIDs:   []string{},
		PersonCount: 0,
	})
}

// AppendPerson atomically adds the person to one matching bucket. The
// capacity bound and the membership check sit in the filter of a single
// find-and-update, so two concurrent appends cannot overfill a bucket.
func (r *MongoAnswerRepository) AppendPerson(ctx context.Context, filter ports.AnswerFilter, personID string) (bool, error) {
	filters, err := answerFilters(filter)
	if err != nil {
		return false, err
	}
	filters["person_id_list"] = bson.M{"$ne": personID}
	filters["person_id_list_length"] = bson.M{"$lt": domain.MaxBucketMembers}

	doc, err := r.answers.FindOneAndUpdate(ctx, filters, bson.M{
		"$push": bson.M{"person_id_list": personID},
		"$inc":  bson.M{"person_id_list_length": 1},
	})
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

// AppendPersonByID adds the person to a specific bucket, still guarded by the
// capacity predicate.
func (r *MongoAnswerRepository) AppendPersonByID(ctx context.Context, id, personID string) error {
	oid, err := store.ObjectID(id)
	if err != nil {
		return err
	}

	doc, err := r.answers.FindOneAndUpdate(ctx, bson.M{
		"_id":                   oid,
		"person_id_list":        bson.M{"$ne": personID},
		"person_id_list_length": bson.M{"$lt": domain.MaxBucketMembers},
	}, bson.M{
		"$push": bson.M{"person_id_list": personID},
		"$inc":  bson.M{"person_id_list_length": 1},
	})
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrBadRequest
	}
	return nil
}

// RemovePersonByQuestion pulls the person out of every bucket of the
// question, deleting buckets that end up empty.
func (r *MongoAnswerRepository) RemovePersonByQuestion(ctx context.Context, questionID, personID string) error {
	questionOID, err := store.ObjectID(questionID)
	if err != nil {
		return err
	}

	docs, err := r.answers.Find(ctx, bson.M{
		"question_id":    questionOID,
		"person_id_list": personID,
	}, nil)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		err := r.answers.UpdateByID(ctx, doc.ID.Hex(), bson.M{
			"$pull": bson.M{"person_id_list": personID},
			"$inc":  bson.M{"person_id_list_length": -1},
		})
		if err != nil {
			return err
		}

		err = r.answers.DeleteOne(ctx, bson.M{
			"_id":                   doc.ID,
			"person_id_list_length": bson.M{"$lte": 0},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
