package domain

import "testing"

func TestRuleYesNo(t *testing.T) {
	rule := (&Template{Subtype: SubtypeYesNo}).Rule()

	for _, answer := range []string{"yes", "no"} {
		if err := rule.Validate(answer); err != nil {
			t.Errorf("%q rejected: %v", answer, err)
		}
	}
	for _, answer := range []string{"maybe", "YES", ""} {
		if err := rule.Validate(answer); err == nil {
			t.Errorf("%q accepted", answer)
		}
	}
}

func TestRuleChoices(t *testing.T) {
	for _, subtype := range []string{SubtypeSingle, SubtypeMultiple, SubtypeList} {
		rule := (&Template{Subtype: subtype, Choices: []string{"red", "green"}}).Rule()

		if err := rule.Validate("green"); err != nil {
			t.Errorf("%s: listed choice rejected: %v", subtype, err)
		}
		if err := rule.Validate("purple"); err == nil {
			t.Errorf("%s: unlisted choice accepted", subtype)
		}
	}
}

func TestRuleRange(t *testing.T) {
	rule := (&Template{Subtype: SubtypeScale, MinValue: 1, MaxValue: 5}).Rule()

	for _, answer := range []string{"1", "3", "5", " 4 "} {
		if err := rule.Validate(answer); err != nil {
			t.Errorf("%q rejected: %v", answer, err)
		}
	}
	for _, answer := range []string{"0", "6", "three", ""} {
		if err := rule.Validate(answer); err == nil {
			t.Errorf("%q accepted", answer)
		}
	}
}

func TestRuleFreeText(t *testing.T) {
	rule := (&Template{Subtype: SubtypeTime}).Rule()

	if err := rule.Validate("last year"); err != nil {
		t.Errorf("free text rejected: %v", err)
	}
	if err := rule.Validate(""); err == nil {
		t.Errorf("empty answer accepted")
	}
}

func TestTimeoutWeeksFor(t *testing.T) {
	template := &Template{
		Subtype:      SubtypeTime,
		TimeoutWeeks: 4,
		TimeoutWeeksByChoices: map[string]int{
			"this week": 1,
		},
	}

	if got := template.TimeoutWeeksFor("this week"); got != 1 {
		t.Errorf("per-choice override = %d, want 1", got)
	}
	if got := template.TimeoutWeeksFor("last year"); got != 4 {
		t.Errorf("default = %d, want 4", got)
	}

	unset := &Template{Subtype: SubtypeYesNo}
	if got := unset.TimeoutWeeksFor("yes"); got != 1 {
		t.Errorf("unset timeout = %d, want 1", got)
	}
}

func TestFormatMergesTemplate(t *testing.T) {
	question := &Question{ID: "question-1", Signature: "sig", OrderNumber: 7}
	template := &Template{
		Language: "en",
		Name:     "drinks_coffee",
		Text:     "Do you drink coffee?",
		Type:     "profile",
		Subtype:  SubtypeYesNo,
	}

	formatted := question.Format(template)
	if formatted.ID != "question-1" || formatted.OrderNumber != 7 {
		t.Errorf("question fields lost: %+v", formatted)
	}
	if formatted.Text != template.Text || formatted.Subtype != SubtypeYesNo {
		t.Errorf("template fields lost: %+v", formatted)
	}
	if formatted.Choices == nil {
		t.Errorf("choices must marshal as [], not null")
	}
}
