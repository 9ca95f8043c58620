package entity

import (
	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalyticsDoc represents a daily analytics bucket in MongoDB
type AnalyticsDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID         primitive.ObjectID `bson:"company_id"`
	IntegrationPathID primitive.ObjectID `bson:"integration_path_id"`
	Day               int64              `bson:"day_data_is_from_in_unix_time"`
	Status            string             `bson:"status"`
	PersonIDs         []string           `bson:"person_id_list"`
	PersonCount       int                `bson:"person_id_list_length"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *AnalyticsDoc) ToDomain() *domain.Analytics {
	return &domain.Analytics{
		ID:                d.ID.Hex(),
		CompanyID:         d.CompanyID.Hex(),
		IntegrationPathID: d.IntegrationPathID.Hex(),
		Day:               d.Day,
		Status:            domain.AnalyticsStatus(d.Status),
		PersonIDs:         d.PersonIDs,
		PersonCount:       d.PersonCount,
	}
}

// AnalysisDoc represents an aggregate people counter in MongoDB
type AnalysisDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID         primitive.ObjectID `bson:"company_id"`
	IntegrationPathID primitive.ObjectID `bson:"integration_path_id"`
	Day               int64              `bson:"day_data_is_from_in_unix_time"`
	Status            string             `bson:"status"`
	PeopleCount       int                `bson:"people_count"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *AnalysisDoc) ToDomain() *domain.Analysis {
	return &domain.Analysis{
		ID:                d.ID.Hex(),
		CompanyID:         d.CompanyID.Hex(),
		IntegrationPathID: d.IntegrationPathID.Hex(),
		Day:               d.Day,
		Status:            domain.AnalyticsStatus(d.Status),
		PeopleCount:       d.PeopleCount,
	}
}
