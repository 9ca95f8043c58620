package repository

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/infrastructure/repository/entity"
	"pulse-core-targeting-api/internal/infrastructure/store"
	"pulse-core-targeting-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTemplateRepository implements TemplateRepository using MongoDB
type MongoTemplateRepository struct {
	templates *store.Collection[entity.TemplateDoc]
}

// NewMongoTemplateRepository creates a new MongoDB template repository
func NewMongoTemplateRepository(db *mongo.Database) ports.TemplateRepository {
	return &MongoTemplateRepository{
		templates: store.NewCollection[entity.TemplateDoc](db, "templates"),
	}
}

// FindByID retrieves a template by id
func (r *MongoTemplateRepository) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	doc, err := r.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// MongoQuestionRepository implements QuestionRepository using MongoDB
type MongoQuestionRepository struct {
	questions *store.Collection[entity.QuestionDoc]
}

// NewMongoQuestionRepository creates a new MongoDB question repository
func NewMongoQuestionRepository(db *mongo.Database) ports.QuestionRepository {
	return &MongoQuestionRepository{
		questions: store.NewCollection[entity.QuestionDoc](db, "questions"),
	}
}

// FindByID retrieves a question by id
func (r *MongoQuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	doc, err := r.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// FindSorted returns questions matching the filter ordered by order_number
// descending.
func (r *MongoQuestionRepository) FindSorted(ctx context.Context, filter ports.QuestionFilter) ([]*domain.Question, error) {
	filters := bson.M{}

	if filter.CompanyID != "" {
		oid, err := store.ObjectID(filter.CompanyID)
		if err != nil {
			return nil, err
		}
		filters["company_id"] = oid
	}

	if filter.ProductID != "" {
		oid, err := store.ObjectID(filter.ProductID)
		if err != nil {
			return nil, err
		}
		filters["product_id"] = oid
	}

	if filter.MinOrderNumber != nil {
		filters["order_number"] = bson.M{"$gt": *filter.MinOrderNumber}
	}

	if filter.ActiveOnly {
		filters["is_active"] = true
	}

	if len(filter.IntegrationPathIDs) > 0 {
		or := make([]bson.M, 0, len(filter.IntegrationPathIDs))
		for _, pathID := range filter.IntegrationPathIDs {
			or = append(or, bson.M{"integration_path_id_list": pathID})
		}
		filters["$or"] = or
	}

	docs, err := r.questions.Find(ctx, filters, bson.D{{Key: "order_number", Value: -1}})
	if err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, 0, len(docs))
	for _, doc := range docs {
		questions = append(questions, doc.ToDomain())
	}
	return questions, nil
}

// SetIntegrationPaths replaces the path list a question is shown on
func (r *MongoQuestionRepository) SetIntegrationPaths(ctx context.Context, id string, pathIDs []string) error {
	return r.questions.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"integration_path_id_list": pathIDs},
	})
}
