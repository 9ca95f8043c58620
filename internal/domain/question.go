package domain

// Question attaches a template to a company's integration paths at a position
// in the presentation sequence.
type Question struct {
	ID                 string
	Signature          string
	TemplateID         string
	CompanyID          string
	ProductID          string
	OrderNumber        int
	IsActive           bool
	IntegrationPathIDs []string
	CreatedAt          string
}

// FormattedQuestion is the widget-facing view of a question merged with the
// fields of its template.
type FormattedQuestion struct {
	ID          string   `json:"_id"`
	Signature   string   `json:"signature"`
	OrderNumber int      `json:"order_number"`
	Language    string   `json:"language"`
	Name        string   `json:"name"`
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Subtype     string   `json:"subtype"`
	Choices     []string `json:"choices"`
	MinValue    int      `json:"min_value"`
	MaxValue    int      `json:"max_value"`
	Labels      Labels   `json:"labels"`
}

// Format merges a question with its template for the wire.
func (q *Question) Format(t *Template) *FormattedQuestion {
	choices := t.Choices
	if choices == nil {
		choices = []string{}
	}
	return &FormattedQuestion{
		ID:          q.ID,
		Signature:   q.Signature,
		OrderNumber: q.OrderNumber,
		Language:    t.Language,
		Name:        t.Name,
		Text:        t.Text,
		Type:        t.Type,
		Subtype:     t.Subtype,
		Choices:     choices,
		MinValue:    t.MinValue,
		MaxValue:    t.MaxValue,
		Labels:      t.Labels,
	}
}
