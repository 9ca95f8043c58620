package entity

import (
	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonDoc represents a person in MongoDB
type PersonDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Email string             `bson:"email"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *PersonDoc) ToDomain() *domain.Person {
	return &domain.Person{
		ID:    d.ID.Hex(),
		Email: d.Email,
	}
}
