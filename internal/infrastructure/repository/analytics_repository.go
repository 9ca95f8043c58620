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

// MongoAnalyticsRepository implements AnalyticsRepository using MongoDB
type MongoAnalyticsRepository struct {
	analytics *store.Collection[entity.AnalyticsDoc]
}

// NewMongoAnalyticsRepository creates a new MongoDB analytics repository
func NewMongoAnalyticsRepository(db *mongo.Database) ports.AnalyticsRepository {
	return &MongoAnalyticsRepository{
		analytics: store.NewCollection[entity.AnalyticsDoc](db, "analytics"),
	}
}

// FindOne returns the first bucket matching the filter
func (r *MongoAnalyticsRepository) FindOne(ctx context.Context, filter ports.AnalyticsFilter) (*domain.Analytics, error) {
	filters := bson.M{}

	if filter.IntegrationPathID != "" {
		oid, err := store.ObjectID(filter.IntegrationPathID)
		if err != nil {
			return nil, err
		}
		filters["integration_path_id"] = oid
	}

	if filter.Day != 0 {
		filters["day_data_is_from_in_unix_time"] = filter.Day
	}

	if len(filter.Statuses) == 1 {
		filters["status"] = string(filter.Statuses[0])
	} else if len(filter.Statuses) > 1 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		filters["status"] = bson.M{"$in": statuses}
	}

	if filter.PersonID != "" {
		filters["person_id_list"] = filter.PersonID
	}

	if filter.NotFull {
		filters["person_id_list_length"] = bson.M{"$lt": domain.MaxBucketMembers}
	}

	doc, err := r.analytics.FindOne(ctx, filters)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// Create inserts a new empty bucket
func (r *MongoAnalyticsRepository) Create(ctx context.Context, analytics *domain.Analytics) (string, error) {
	companyID, err := store.ObjectID(analytics.CompanyID)
	if err != nil {
		return "", err
	}
	pathID, err := store.ObjectID(analytics.IntegrationPathID)
	if err != nil {
		return "", err
	}

	return r.analytics.InsertOne(ctx, entity.AnalyticsDoc{
		CompanyID:         companyID,
		IntegrationPathID: pathID,
		Day:               analytics.Day,
		Status:            string(analytics.Status),
		PersonIDs:         []string{},
		PersonCount:       0,
	})
}

// AppendPerson atomically adds the person to an under-capacity bucket for
// (path, day, status).
func (r *MongoAnalyticsRepository) AppendPerson(ctx context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) (bool, error) {
	oid, err := store.ObjectID(pathID)
	if err != nil {
		return false, err
	}

	doc, err := r.analytics.FindOneAndUpdate(ctx, bson.M{
		"integration_path_id":           oid,
		"day_data_is_from_in_unix_time": day,
		"status":                        string(status),
		"person_id_list":                bson.M{"$ne": personID},
		"person_id_list_length":         bson.M{"$lt": domain.MaxBucketMembers},
	}, bson.M{
		"$push": bson.M{"person_id_list": personID},
		"$inc":  bson.M{"person_id_list_length": 1},
	})
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

// AppendPersonByID adds the person to a specific bucket
func (r *MongoAnalyticsRepository) AppendPersonByID(ctx context.Context, id, personID string) error {
	oid, err := store.ObjectID(id)
	if err != nil {
		return err
	}

	doc, err := r.analytics.FindOneAndUpdate(ctx, bson.M{
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

// RemovePerson pulls the person out of the bucket for (path, day, status)
func (r *MongoAnalyticsRepository) RemovePerson(ctx context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) error {
	oid, err := store.ObjectID(pathID)
	if err != nil {
		return err
	}

	_, err = r.analytics.UpdateOne(ctx, bson.M{
		"integration_path_id":           oid,
		"day_data_is_from_in_unix_time": day,
		"status":                        string(status),
		"person_id_list":                personID,
	}, bson.M{
		"$pull": bson.M{"person_id_list": personID},
		"$inc":  bson.M{"person_id_list_length": -1},
	}, false)
	return err
}

// MongoAnalysisRepository implements AnalysisRepository using MongoDB
type MongoAnalysisRepository struct {
	analyses *store.Collection[entity.AnalysisDoc]
}

// NewMongoAnalysisRepository creates a new MongoDB analysis repository
func NewMongoAnalysisRepository(db *mongo.Database) ports.AnalysisRepository {
	return &MongoAnalysisRepository{
		analyses: store.NewCollection[entity.AnalysisDoc](db, "analyses"),
	}
}

func analysisKey(companyID, pathID string, day int64, status domain.AnalyticsStatus) (bson.M, error) {
	companyOID, err := store.ObjectID(companyID)
	if err != nil {
		return nil, err
	}
	pathOID, err := store.ObjectID(pathID)
	if err != nil {
		return nil, err
	}

	return bson.M{
		"company_id":                    companyOID,
		"integration_path_id":           pathOID,
		"day_data_is_from_in_unix_time": day,
		"status":                        string(status),
	}, nil
}

// Increment bumps the people counter for (company, path, day, status),
// creating the counter document in the same atomic upsert when absent.
func (r *MongoAnalysisRepository) Increment(ctx context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error {
	key, err := analysisKey(companyID, pathID, day, status)
	if err != nil {
		return err
	}

	_, err = r.analyses.UpdateOne(ctx, key, bson.M{
		"$inc": bson.M{"people_count": 1},
	}, true)
	return err
}

// Decrement lowers the people counter, clamped at zero: the guard in the
// filter means an absent or already-zero counter is left untouched rather
// than driven negative.
func (r *MongoAnalysisRepository) Decrement(ctx context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error {
	key, err := analysisKey(companyID, pathID, day, status)
	if err != nil {
		return err
	}

	// Lazy-create the counter first so a decrement on a fresh key still
	// leaves a zeroed document behind, as increments do.
	_, err = r.analyses.UpdateOne(ctx, key, bson.M{
		"$setOnInsert": bson.M{"people_count": 0},
	}, true)
	if err != nil {
		return err
	}

	guarded := bson.M{}
	for k, v := range key {
		guarded[k] = v
	}
	guarded["people_count"] = bson.M{"$gt": 0}

	_, err = r.analyses.UpdateOne(ctx, guarded, bson.M{
		"$inc": bson.M{"people_count": -1},
	}, false)
	return err
}
