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

// MongoCompanyRepository implements CompanyRepository using MongoDB
type MongoCompanyRepository struct {
	companies *store.Collection[entity.CompanyDoc]
}

// NewMongoCompanyRepository creates a new MongoDB company repository
func NewMongoCompanyRepository(db *mongo.Database) ports.CompanyRepository {
	return &MongoCompanyRepository{
		companies: store.NewCollection[entity.CompanyDoc](db, "companies"),
	}
}

// FindByID retrieves a company by id
func (r *MongoCompanyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	doc, err := r.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// MongoProductRepository implements ProductRepository using MongoDB
type MongoProductRepository struct {
	products *store.Collection[entity.ProductDoc]
}

// NewMongoProductRepository creates a new MongoDB product repository
func NewMongoProductRepository(db *mongo.Database) ports.ProductRepository {
	return &MongoProductRepository{
		products: store.NewCollection[entity.ProductDoc](db, "products"),
	}
}

// FindByID retrieves a product by id
func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	doc, err := r.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// MongoIntegrationPathRepository implements IntegrationPathRepository using MongoDB
type MongoIntegrationPathRepository struct {
	paths *store.Collection[entity.IntegrationPathDoc]
}

// NewMongoIntegrationPathRepository creates a new MongoDB integration path repository
func NewMongoIntegrationPathRepository(db *mongo.Database) ports.IntegrationPathRepository {
	return &MongoIntegrationPathRepository{
		paths: store.NewCollection[entity.IntegrationPathDoc](db, "integration_paths"),
	}
}

// FindByID retrieves an integration path by id
func (r *MongoIntegrationPathRepository) FindByID(ctx context.Context, id string) (*domain.IntegrationPath, error) {
	doc, err := r.paths.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// FindByCompanyAndPath returns every path of the company matching the widget's
// location path string.
func (r *MongoIntegrationPathRepository) FindByCompanyAndPath(ctx context.Context, companyID, path string) ([]*domain.IntegrationPath, error) {
	oid, err := store.ObjectID(companyID)
	if err != nil {
		return nil, err
	}

	docs, err := r.paths.Find(ctx, bson.M{"company_id": oid, "path": path}, bson.D{{Key: "name", Value: 1}})
	if err != nil {
		return nil, err
	}

	paths := make([]*domain.IntegrationPath, 0, len(docs))
	for _, doc := range docs {
		paths = append(paths, doc.ToDomain())
	}
	return paths, nil
}

// FindByProductID returns the path pointing at a product
func (r *MongoIntegrationPathRepository) FindByProductID(ctx context.Context, productID string) (*domain.IntegrationPath, error) {
	oid, err := store.ObjectID(productID)
	if err != nil {
		return nil, err
	}

	doc, err := r.paths.FindOne(ctx, bson.M{"product_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}
