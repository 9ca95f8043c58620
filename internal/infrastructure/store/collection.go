package store

import (
	"context"
	"fmt"

	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a typed wrapper over a MongoDB collection. Entity repositories
// build on it instead of repeating cursor/decode plumbing per collection.
type Collection[D any] struct {
	coll *mongo.Collection
}

// NewCollection wraps a named collection of the database.
func NewCollection[D any](db *mongo.Database, name string) *Collection[D] {
	return &Collection[D]{coll: db.Collection(name)}
}

// Native exposes the underlying collection for index setup.
func (c *Collection[D]) Native() *mongo.Collection {
	return c.coll
}

// ObjectID parses a hex document id, reporting bad_request on malformed input.
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrBadRequest
	}
	return oid, nil
}

// InsertOne inserts a document and returns its generated hex id. Unique-index
// violations map to domain.ErrDuplicatedUniqueField.
func (c *Collection[D]) InsertOne(ctx context.Context, doc any) (string, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return "", domain.ErrDuplicatedUniqueField
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type in %s", c.coll.Name())
	}
	return oid.Hex(), nil
}

// FindByID retrieves one document by hex id. A missing document reports
// domain.ErrNotFound.
func (c *Collection[D]) FindByID(ctx context.Context, id string) (*D, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc D
	err = c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// FindOne retrieves the first document matching the filter; (nil, nil) when
// none exists.
func (c *Collection[D]) FindOne(ctx context.Context, filter bson.M) (*D, error) {
	var doc D
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// Find retrieves every document matching the filter, sorted when sort is
// non-nil.
func (c *Collection[D]) Find(ctx context.Context, filter bson.M, sort bson.D) ([]*D, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []*D
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode from %s: %w", c.coll.Name(), err)
		}
		docs = append(docs, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error in %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

// Count returns the number of documents matching the filter.
func (c *Collection[D]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

// UpdateByID applies an update document to one document by hex id.
func (c *Collection[D]) UpdateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := ObjectID(id)
	if err != nil {
		return err
	}
	if _, err := c.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}
	return nil
}

// UpdateOne applies an update to the first document matching the filter and
// returns how many documents matched. With upsert a missing document is
// created in the same store operation.
func (c *Collection[D]) UpdateOne(ctx context.Context, filter, update bson.M, upsert bool) (int64, error) {
	opts := options.Update().SetUpsert(upsert)
	res, err := c.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}
	matched := res.MatchedCount
	if res.UpsertedCount > 0 {
		matched += res.UpsertedCount
	}
	return matched, nil
}

// FindOneAndUpdate atomically applies an update to the first document
// matching the filter; (nil, nil) when nothing matched. This is the single
// operation behind every capacity-guarded bucket append.
func (c *Collection[D]) FindOneAndUpdate(ctx context.Context, filter, update bson.M) (*D, error) {
	var doc D
	err := c.coll.FindOneAndUpdate(ctx, filter, update).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

// DeleteOne removes the first document matching the filter.
func (c *Collection[D]) DeleteOne(ctx context.Context, filter bson.M) error {
	if _, err := c.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	return nil
}
