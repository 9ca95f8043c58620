package domain

import (
	"strconv"
	"strings"
)

// Template subtypes. The subtype determines the shape of a valid answer.
const (
	SubtypeYesNo    = "yes_no"
	SubtypeSingle   = "single"
	SubtypeMultiple = "multiple"
	SubtypeList     = "list"
	SubtypeScale    = "scale"
	SubtypeNumber   = "number"
	SubtypeTime     = "time"
)

// Labels annotate the ends and middle of a scale template.
type Labels struct {
	Left   string `json:"left" bson:"left"`
	Middle string `json:"middle" bson:"middle"`
	Right  string `json:"right" bson:"right"`
}

// Template is a reusable question definition shared across companies. Answers
// are grouped by template, which is what lets a person's profile carry over to
// a newly integrated company.
type Template struct {
	ID                    string
	TimeoutWeeks          int
	TimeoutWeeksByChoices map[string]int
	OrderNumber           int
	Language              string
	Name                  string
	Text                  string
	Type                  string
	Subtype               string
	Choices               []string
	MinValue              int
	MaxValue              int
	Labels                Labels
}

// AnswerRule validates an answer against the constraints of one template
// subtype.
type AnswerRule interface {
	Validate(answer string) error
}

type yesNoRule struct{}

func (yesNoRule) Validate(answer string) error {
	if answer != "yes" && answer != "no" {
		return ErrBadRequest
	}
	return nil
}

type choiceRule struct {
	choices []string
}

func (r choiceRule) Validate(answer string) error {
	for _, choice := range r.choices {
		if choice == answer {
			return nil
		}
	}
	return ErrBadRequest
}

type rangeRule struct {
	min, max int
}

func (r rangeRule) Validate(answer string) error {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < r.min || n > r.max {
		return ErrBadRequest
	}
	return nil
}

type freeTextRule struct{}

func (freeTextRule) Validate(answer string) error {
	if answer == "" || len(answer) > MaxTextFieldLength {
		return ErrBadRequest
	}
	return nil
}

// Rule returns the validation rule for this template's subtype. Unknown
// subtypes fall back to free text, like the time subtype.
func (t *Template) Rule() AnswerRule {
	switch t.Subtype {
	case SubtypeYesNo:
		return yesNoRule{}
	case SubtypeSingle, SubtypeMultiple, SubtypeList:
		return choiceRule{choices: t.Choices}
	case SubtypeScale, SubtypeNumber:
		return rangeRule{min: t.MinValue, max: t.MaxValue}
	default:
		return freeTextRule{}
	}
}

// TimeoutWeeksFor returns how many weeks an answer bucket stays fresh.
// Time templates may override the default per choice.
func (t *Template) TimeoutWeeksFor(answer string) int {
	if t.Subtype == SubtypeTime && t.TimeoutWeeksByChoices != nil {
		if weeks, ok := t.TimeoutWeeksByChoices[answer]; ok && weeks > 0 {
			return weeks
		}
	}
	if t.TimeoutWeeks < 1 {
		return 1
	}
	return t.TimeoutWeeks
}
