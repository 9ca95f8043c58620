package domain

// MaxTargetGroupFilters caps the filter list on a target group.
const MaxTargetGroupFilters = 100

// TargetFilter requires a person to have answered one template with one of
// the allowed answers within the current freshness window.
type TargetFilter struct {
	TemplateID     string   `json:"template_id" bson:"template_id"`
	AllowedAnswers []string `json:"allowed_answers" bson:"allowed_answers"`
}

// TargetGroup is a named set of answer-based filters determining ad
// eligibility. A person must satisfy every filter.
type TargetGroup struct {
	ID        string
	CompanyID string
	Name      string
	Filters   []TargetFilter
}
