package entity

import (
	"pulse-core-targeting-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateDoc represents a question template in MongoDB
type TemplateDoc struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	TimeoutWeeks          int                `bson:"timeout_duration_in_week"`
	TimeoutWeeksByChoices map[string]int     `bson:"timeout_duration_in_week_by_choices,omitempty"`
	OrderNumber           int                `bson:"order_number"`
	Language              string             `bson:"language"`
	Name                  string             `bson:"name"`
	Text                  string             `bson:"text"`
	Type                  string             `bson:"type"`
	Subtype               string             `bson:"subtype"`
	Choices               []string           `bson:"choices"`
	MinValue              int                `bson:"min_value"`
	MaxValue              int                `bson:"max_value"`
	Labels                domain.Labels      `bson:"labels"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *TemplateDoc) ToDomain() *domain.Template {
	return &domain.Template{
		ID:                    d.ID.Hex(),
		TimeoutWeeks:          d.TimeoutWeeks,
		TimeoutWeeksByChoices: d.TimeoutWeeksByChoices,
		OrderNumber:           d.OrderNumber,
		Language:              d.Language,
		Name:                  d.Name,
		Text:                  d.Text,
		Type:                  d.Type,
		Subtype:               d.Subtype,
		Choices:               d.Choices,
		MinValue:              d.MinValue,
		MaxValue:              d.MaxValue,
		Labels:                d.Labels,
	}
}

// QuestionDoc represents a question in MongoDB
type QuestionDoc struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	Signature          string              `bson:"signature"`
	TemplateID         primitive.ObjectID  `bson:"template_id"`
	CompanyID          primitive.ObjectID  `bson:"company_id"`
	ProductID          *primitive.ObjectID `bson:"product_id,omitempty"`
	OrderNumber        int                 `bson:"order_number"`
	IsActive           bool                `bson:"is_active"`
	IntegrationPathIDs []string            `bson:"integration_path_id_list"`
	CreatedAt          string              `bson:"created_at"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *QuestionDoc) ToDomain() *domain.Question {
	question := &domain.Question{
		ID:                 d.ID.Hex(),
		Signature:          d.Signature,
		TemplateID:         d.TemplateID.Hex(),
		CompanyID:          d.CompanyID.Hex(),
		OrderNumber:        d.OrderNumber,
		IsActive:           d.IsActive,
		IntegrationPathIDs: d.IntegrationPathIDs,
		CreatedAt:          d.CreatedAt,
	}
	if d.ProductID != nil {
		question.ProductID = d.ProductID.Hex()
	}
	return question
}

// AnswerDoc represents a weekly answer bucket in MongoDB
type AnswerDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TemplateID  primitive.ObjectID `bson:"template_id"`
	QuestionID  primitive.ObjectID `bson:"question_id"`
	AnswerGiven string             `bson:"answer_given_to_question"`
	WeekGiven   int64              `bson:"week_answer_is_given_in_unix_time"`
	WeekExpires int64              `bson:"week_answer_will_be_outdated_in_unix_time"`
	PersonIDs   []string           `bson:"person_id_list"`
	PersonCount int                `bson:"person_id_list_length"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *AnswerDoc) ToDomain() *domain.Answer {
	return &domain.Answer{
		ID:          d.ID.Hex(),
		TemplateID:  d.TemplateID.Hex(),
		QuestionID:  d.QuestionID.Hex(),
		AnswerGiven: d.AnswerGiven,
		WeekGiven:   d.WeekGiven,
		WeekExpires: d.WeekExpires,
		PersonIDs:   d.PersonIDs,
		PersonCount: d.PersonCount,
	}
}
