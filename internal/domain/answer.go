package domain

// MaxBucketMembers caps the person_id_list of any aggregate bucket document
// (answers, ad data, analytics). The next distinct member past the cap lands
// in a freshly created bucket for the same key.
const MaxBucketMembers = 1000

// Answer is a weekly bucket grouping every person who gave the same answer to
// the same template. Buckets expire WeekExpires seconds into the future and
// are ignored by all freshness-scoped queries after that.
type Answer struct {
	ID          string
	TemplateID  string
	QuestionID  string
	AnswerGiven string
	WeekGiven   int64
	WeekExpires int64
	PersonIDs   []string
	PersonCount int
}

// Contains reports whether the bucket already names the person.
func (a *Answer) Contains(personID string) bool {
	for _, id := range a.PersonIDs {
		if id == personID {
			return true
		}
	}
	return false
}
