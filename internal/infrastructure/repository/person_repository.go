package repository

import (
	"context"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/infrastructure/repository/entity"
	"pulse-core-targeting-api/internal/infrastructure/store"
	"pulse-core-targeting-api/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPersonRepository implements PersonRepository using MongoDB
type MongoPersonRepository struct {
	people *store.Collection[entity.PersonDoc]
}

// NewMongoPersonRepository creates a new MongoDB person repository
func NewMongoPersonRepository(db *mongo.Database) ports.PersonRepository {
	coll := store.NewCollection[entity.PersonDoc](db, "people")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = coll.Native().Indexes().CreateOne(context.Background(), indexModel)

	return &MongoPersonRepository{people: coll}
}

// FindByID retrieves a person by id
func (r *MongoPersonRepository) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	doc, err := r.people.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// FindByEmail retrieves a person by email
func (r *MongoPersonRepository) FindByEmail(ctx context.Context, email string) (*domain.Person, error) {
	doc, err := r.people.FindOne(ctx, bson.M{"email": email})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// Create inserts a new person. The unique email index turns concurrent
// creates for one email into domain.ErrDuplicatedUniqueField.
func (r *MongoPersonRepository) Create(ctx context.Context, email string) (string, error) {
	return r.people.InsertOne(ctx, entity.PersonDoc{Email: email})
}
