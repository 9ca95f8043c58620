package entity

import (
	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdDoc represents an ad in MongoDB
type AdDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID          primitive.ObjectID `bson:"company_id"`
	OrderNumber        int                `bson:"order_number"`
	Name               string             `bson:"name"`
	Title              string             `bson:"title"`
	Text               string             `bson:"text"`
	ButtonText         string             `bson:"button_text"`
	ButtonURL          string             `bson:"button_url"`
	ImageURL           string             `bson:"image_url"`
	TargetGroupID      primitive.ObjectID `bson:"target_group_id"`
	IntegrationPathIDs []string           `bson:"integration_path_id_list"`
	IsActive           bool               `bson:"is_active"`
	CreatedAt          string             `bson:"created_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *AdDoc) ToDomain() *domain.Ad {
	return &domain.Ad{
		ID:                 d.ID.Hex(),
		CompanyID:          d.CompanyID.Hex(),
		OrderNumber:        d.OrderNumber,
		Name:               d.Name,
		Title:              d.Title,
		Text:               d.Text,
		ButtonText:         d.ButtonText,
		ButtonURL:          d.ButtonURL,
		ImageURL:           d.ImageURL,
		TargetGroupID:      d.TargetGroupID.Hex(),
		IntegrationPathIDs: d.IntegrationPathIDs,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt,
	}
}

// AdDataDoc represents an ad interaction bucket in MongoDB
type AdDataDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AdID        primitive.ObjectID `bson:"ad_id"`
	Status      string             `bson:"status"`
	PersonIDs   []string           `bson:"person_id_list"`
	PersonCount int                `bson:"person_id_list_length"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *AdDataDoc) ToDomain() *domain.AdData {
	return &domain.AdData{
		ID:          d.ID.Hex(),
		AdID:        d.AdID.Hex(),
		Status:      domain.AdStatus(d.Status),
		PersonIDs:   d.PersonIDs,
		PersonCount: d.PersonCount,
	}
}

// TargetGroupDoc represents a target group in MongoDB
type TargetGroupDoc struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty"`
	CompanyID primitive.ObjectID    `bson:"company_id"`
	Name      string                `bson:"name"`
	Filters   []domain.TargetFilter `bson:"filters"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *TargetGroupDoc) ToDomain() *domain.TargetGroup {
	return &domain.TargetGroup{
		ID:        d.ID.Hex(),
		CompanyID: d.CompanyID.Hex(),
		Name:      d.Name,
		Filters:   d.Filters,
	}
}
