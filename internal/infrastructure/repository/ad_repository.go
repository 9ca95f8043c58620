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

// MongoAdRepository implements AdRepository using MongoDB
type MongoAdRepository struct {
	ads *store.Collection[entity.AdDoc]
}

// NewMongoAdRepository creates a new MongoDB ad repository
func NewMongoAdRepository(db *mongo.Database) ports.AdRepository {
	return &MongoAdRepository{
		ads: store.NewCollection[entity.AdDoc](db, "ads"),
	}
}

// FindByID retrieves an ad by id
func (r *MongoAdRepository) FindByID(ctx context.Context, id string) (*domain.Ad, error) {
	doc, err := r.ads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// FindSorted returns ads matching the filter ordered by order_number
// ascending.
func (r *MongoAdRepository) FindSorted(ctx context.Context, filter ports.AdFilter) ([]*domain.Ad, error) {
	filters := bson.M{}

	if filter.CompanyID != "" {
		oid, err := store.ObjectID(filter.CompanyID)
		if err != nil {
			return nil, err
		}
		filters["company_id"] = oid
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

	docs, err := r.ads.Find(ctx, filters, bson.D{{Key: "order_number", Value: 1}})
	if err != nil {
		return nil, err
	}

	ads := make([]*domain.Ad, 0, len(docs))
	for _, doc := range docs {
		ads = append(ads, doc.ToDomain())
	}
	return ads, nil
}

// MongoAdDataRepository implements AdDataRepository using MongoDB
type MongoAdDataRepository struct {
	adData *store.Collection[entity.AdDataDoc]
}

// NewMongoAdDataRepository creates a new MongoDB ad data repository
func NewMongoAdDataRepository(db *mongo.Database) ports.AdDataRepository {
	return &MongoAdDataRepository{
		adData: store.NewCollection[entity.AdDataDoc](db, "ad_data"),
	}
}

// FindOne returns the first bucket matching the filter
func (r *MongoAdDataRepository) FindOne(ctx context.Context, filter ports.AdDataFilter) (*domain.AdData, error) {
	filters := bson.M{}

	if filter.AdID != "" {
		oid, err := store.ObjectID(filter.AdID)
		if err != nil {
			return nil, err
		}
		filters["ad_id"] = oid
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

	doc, err := r.adData.FindOne(ctx, filters)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// Create inserts a new empty bucket for (ad, status)
func (r *MongoAdDataRepository) Create(ctx context.Context, adID string, status domain.AdStatus) (string, error) {
	oid, err := store.ObjectID(adID)
	if err != nil {
		return "", err
	}

	return r.adData.InsertOne(ctx, entity.AdDataDoc{
		AdID:        oid,
		Status:      string(status),
		PersonIDs:   []string{},
		PersonCount: 0,
	})
}

// AppendPerson atomically adds the person to an under-capacity bucket for
// (ad, status).
func (r *MongoAdDataRepository) AppendPerson(ctx context.Context, adID string, status domain.AdStatus, personID string) (bool, error) {
	oid, err := store.ObjectID(adID)
	if err != nil {
		return false, err
	}

	doc, err := r.adData.FindOneAndUpdate(ctx, bson.M{
		"ad_id":                 oid,
		"status":                string(status),
		"person_id_list":        bson.M{"$ne": personID},
		"person_id_list_length": bson.M{"$lt": domain.MaxBucketMembers},
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
func (r *MongoAdDataRepository) AppendPersonByID(ctx context.Context, id, personID string) error {
	oid, err := store.ObjectID(id)
	if err != nil {
		return err
	}

	doc, err := r.adData.FindOneAndUpdate(ctx, bson.M{
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

// RemovePerson pulls the person out of whichever bucket of the ad currently
// names them.
func (r *MongoAdDataRepository) RemovePerson(ctx context.Context, adID, personID string) error {
	oid, err := store.ObjectID(adID)
	if err != nil {
		return err
	}

	doc, err := r.adData.FindOneAndUpdate(ctx, bson.M{
		"ad_id":          oid,
		"person_id_list": personID,
	}, bson.M{
		"$pull": bson.M{"person_id_list": personID},
		"$inc":  bson.M{"person_id_list_length": -1},
	})
	if err != nil {
		return err
	}
	_ = doc // absent bucket is fine, nothing to pull
	return nil
}

// MongoTargetGroupRepository implements TargetGroupRepository using MongoDB
type MongoTargetGroupRepository struct {
	targetGroups *store.Collection[entity.TargetGroupDoc]
}

// NewMongoTargetGroupRepository creates a new MongoDB target group repository
func NewMongoTargetGroupRepository(db *mongo.Database) ports.TargetGroupRepository {
	return &MongoTargetGroupRepository{
		targetGroups: store.NewCollection[entity.TargetGroupDoc](db, "target_groups"),
	}
}

// FindByID retrieves a target group by id
func (r *MongoTargetGroupRepository) FindByID(ctx context.Context, id string) (*domain.TargetGroup, error) {
	doc, err := r.targetGroups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}
