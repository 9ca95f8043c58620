package application

import (
	"context"
	"fmt"
	"sort"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"
)

// In-memory repository fakes mirroring the store semantics the services rely
// on: freshness scoping, capacity predicates and membership checks.

type fakePersonRepo struct {
	people map[string]*domain.Person
	nextID int
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: make(map[string]*domain.Person)}
}

func (r *fakePersonRepo) add(person *domain.Person) {
	r.people[person.ID] = person
}

func (r *fakePersonRepo) FindByID(_ context.Context, id string) (*domain.Person, error) {
	person, ok := r.people[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return person, nil
}

func (r *fakePersonRepo) FindByEmail(_ context.Context, email string) (*domain.Person, error) {
	for _, person := range r.people {
		if person.Email == email {
			return person, nil
		}
	}
	return nil, nil
}

func (r *fakePersonRepo) Create(_ context.Context, email string) (string, error) {
	for _, person := range r.people {
		if person.Email == email {
			return "", domain.ErrDuplicatedUniqueField
		}
	}
	r.nextID++
	id := fmt.Sprintf("person-%d", r.nextID)
	r.people[id] = &domain.Person{ID: id, Email: email}
	return id, nil
}

type fakeCompanyRepo struct {
	companies map[string]*domain.Company
}

func newFakeCompanyRepo(companies ...*domain.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[string]*domain.Company)}
	for _, company := range companies {
		r.companies[company.ID] = company
	}
	return r
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

type fakePathRepo struct {
	paths []*domain.IntegrationPath
}

func (r *fakePathRepo) FindByID(_ context.Context, id string) (*domain.IntegrationPath, error) {
	for _, path := range r.paths {
		if path.ID == id {
			return path, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePathRepo) FindByCompanyAndPath(_ context.Context, companyID, path string) ([]*domain.IntegrationPath, error) {
	var found []*domain.IntegrationPath
	for _, p := range r.paths {
		if p.CompanyID == companyID && p.Path == path {
			found = append(found, p)
		}
	}
	return found, nil
}

func (r *fakePathRepo) FindByProductID(_ context.Context, productID string) (*domain.IntegrationPath, error) {
	for _, p := range r.paths {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return nil, nil
}

type fakeTemplateRepo struct {
	templates map[string]*domain.Template
}

func newFakeTemplateRepo(templates ...*domain.Template) *fakeTemplateRepo {
	r := &fakeTemplateRepo{templates: make(map[string]*domain.Template)}
	for _, template := range templates {
		r.templates[template.ID] = template
	}
	return r
}

func (r *fakeTemplateRepo) FindByID(_ context.Context, id string) (*domain.Template, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return template, nil
}

type fakeQuestionRepo struct {
	questions []*domain.Question
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	for _, question := range r.questions {
		if question.ID == id {
			return question, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeQuestionRepo) FindSorted(_ context.Context, filter ports.QuestionFilter) ([]*domain.Question, error) {
	var found []*domain.Question
	for _, question := range r.questions {
		if filter.CompanyID != "" && question.CompanyID != filter.CompanyID {
			continue
		}
		if filter.ProductID != "" && question.ProductID != filter.ProductID {
			continue
		}
		if filter.ActiveOnly && !question.IsActive {
			continue
		}
		if filter.MinOrderNumber != nil && question.OrderNumber <= *filter.MinOrderNumber {
			continue
		}
		if len(filter.IntegrationPathIDs) > 0 && !intersects(question.IntegrationPathIDs, filter.IntegrationPathIDs) {
			continue
		}
		found = append(found, question)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].OrderNumber > found[j].OrderNumber
	})
	return found, nil
}

func (r *fakeQuestionRepo) SetIntegrationPaths(_ context.Context, id string, pathIDs []string) error {
	for _, question := range r.questions {
		if question.ID == id {
			question.IntegrationPathIDs = pathIDs
			return nil
		}
	}
	return domain.ErrNotFound
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type fakeAnswerRepo struct {
	buckets []*domain.Answer
	nextID  int
}

func (r *fakeAnswerRepo) matches(filter ports.AnswerFilter, bucket *domain.Answer) bool {
	if filter.FreshAsOf != 0 && bucket.WeekExpires <= filter.FreshAsOf {
		return false
	}
	if filter.TemplateID != "" && bucket.TemplateID != filter.TemplateID {
		return false
	}
	if filter.QuestionID != "" && bucket.QuestionID != filter.QuestionID {
		return false
	}
	if filter.PersonID != "" && !bucket.Contains(filter.PersonID) {
		return false
	}
	if filter.Answer != "" && bucket.AnswerGiven != filter.Answer {
		return false
	}
	if len(filter.Answers) > 0 {
		allowed := false
		for _, answer := range filter.Answers {
			if bucket.AnswerGiven == answer {
				allowed = true
			}
		}
		if !allowed {
			return false
		}
	}
	if filter.Week != 0 && bucket.WeekGiven != filter.Week {
		return false
	}
	if filter.NotFull && bucket.PersonCount >= domain.MaxBucketMembers {
		return false
	}
	return true
}

func (r *fakeAnswerRepo) FindOne(_ context.Context, filter ports.AnswerFilter) (*domain.Answer, error) {
	for _, bucket := range r.buckets {
		if r.matches(filter, bucket) {
			return bucket, nil
		}
	}
	return nil, nil
}

func (r *fakeAnswerRepo) Find(_ context.Context, filter ports.AnswerFilter) ([]*domain.Answer, error) {
	var found []*domain.Answer
	for _, bucket := range r.buckets {
		if r.matches(filter, bucket) {
			found = append(found, bucket)
		}
	}
	return found, nil
}

func (r *fakeAnswerRepo) Exists(ctx context.Context, filter ports.AnswerFilter) (bool, error) {
	bucket, err := r.FindOne(ctx, filter)
	return bucket != nil, err
}

func (r *fakeAnswerRepo) Create(_ context.Context, answer *domain.Answer) (string, error) {
	r.nextID++
	created := *answer
	created.ID = fmt.Sprintf("answer-%d", r.nextID)
	created.PersonIDs = []string{}
	created.PersonCount = 0
	r.buckets = append(r.buckets, &created)
	return created.ID, nil
}

func (r *fakeAnswerRepo) AppendPerson(_ context.Context, filter ports.AnswerFilter, personID string) (bool, error) {
	for _, bucket := range r.buckets {
		if !r.matches(filter, bucket) {
			continue
		}
		if bucket.Contains(personID) || bucket.PersonCount >= domain.MaxBucketMembers {
			continue
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return true, nil
	}
	return false, nil
}

func (r *fakeAnswerRepo) AppendPersonByID(_ context.Context, id, personID string) error {
	for _, bucket := range r.buckets {
		if bucket.ID != id {
			continue
		}
		if bucket.Contains(personID) || bucket.PersonCount >= domain.MaxBucketMembers {
			return domain.ErrBadRequest
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeAnswerRepo) RemovePersonByQuestion(_ context.Context, questionID, personID string) error {
	var kept []*domain.Answer
	for _, bucket := range r.buckets {
		if bucket.QuestionID == questionID && bucket.Contains(personID) {
			var members []string
			for _, member := range bucket.PersonIDs {
				if member != personID {
					members = append(members, member)
				}
			}
			bucket.PersonIDs = members
			bucket.PersonCount--
		}
		if bucket.QuestionID == questionID && bucket.PersonCount <= 0 {
			continue
		}
		kept = append(kept, bucket)
	}
	r.buckets = kept
	return nil
}

type fakeAdRepo struct {
	ads []*domain.Ad
}

func (r *fakeAdRepo) FindByID(_ context.Context, id string) (*domain.Ad, error) {
	for _, ad := range r.ads {
		if ad.ID == id {
			return ad, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeAdRepo) FindSorted(_ context.Context, filter ports.AdFilter) ([]*domain.Ad, error) {
	var found []*domain.Ad
	for _, ad := range r.ads {
		if filter.CompanyID != "" && ad.CompanyID != filter.CompanyID {
			continue
		}
		if filter.ActiveOnly && !ad.IsActive {
			continue
		}
		if len(filter.IntegrationPathIDs) > 0 && !intersects(ad.IntegrationPathIDs, filter.IntegrationPathIDs) {
			continue
		}
		found = append(found, ad)
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].OrderNumber < found[j].OrderNumber
	})
	return found, nil
}

type fakeAdDataRepo struct {
	buckets []*domain.AdData
	nextID  int
}

func (r *fakeAdDataRepo) FindOne(_ context.Context, filter ports.AdDataFilter) (*domain.AdData, error) {
	for _, bucket := range r.buckets {
		if filter.AdID != "" && bucket.AdID != filter.AdID {
			continue
		}
		if len(filter.Statuses) > 0 {
			allowed := false
			for _, status := range filter.Statuses {
				if bucket.Status == status {
					allowed = true
				}
			}
			if !allowed {
				continue
			}
		}
		if filter.PersonID != "" && !containsString(bucket.PersonIDs, filter.PersonID) {
			continue
		}
		return bucket, nil
	}
	return nil, nil
}

func (r *fakeAdDataRepo) Create(_ context.Context, adID string, status domain.AdStatus) (string, error) {
	r.nextID++
	bucket := &domain.AdData{
		ID:        fmt.Sprintf("addata-%d", r.nextID),
		AdID:      adID,
		Status:    status,
		PersonIDs: []string{},
	}
	r.buckets = append(r.buckets, bucket)
	return bucket.ID, nil
}

func (r *fakeAdDataRepo) AppendPerson(_ context.Context, adID string, status domain.AdStatus, personID string) (bool, error) {
	for _, bucket := range r.buckets {
		if bucket.AdID != adID || bucket.Status != status {
			continue
		}
		if containsString(bucket.PersonIDs, personID) || bucket.PersonCount >= domain.MaxBucketMembers {
			continue
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return true, nil
	}
	return false, nil
}

func (r *fakeAdDataRepo) AppendPersonByID(_ context.Context, id, personID string) error {
	for _, bucket := range r.buckets {
		if bucket.ID != id {
			continue
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeAdDataRepo) RemovePerson(_ context.Context, adID, personID string) error {
	for _, bucket := range r.buckets {
		if bucket.AdID != adID || !containsString(bucket.PersonIDs, personID) {
			continue
		}
		var members []string
		for _, member := range bucket.PersonIDs {
			if member != personID {
				members = append(members, member)
			}
		}
		bucket.PersonIDs = members
		bucket.PersonCount--
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

type fakeTargetGroupRepo struct {
	groups map[string]*domain.TargetGroup
}

func newFakeTargetGroupRepo(groups ...*domain.TargetGroup) *fakeTargetGroupRepo {
	r := &fakeTargetGroupRepo{groups: make(map[string]*domain.TargetGroup)}
	for _, group := range groups {
		r.groups[group.ID] = group
	}
	return r
}

func (r *fakeTargetGroupRepo) FindByID(_ context.Context, id string) (*domain.TargetGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

type fakeAnalyticsRepo struct {
	buckets []*domain.Analytics
	nextID  int
}

func (r *fakeAnalyticsRepo) FindOne(_ context.Context, filter ports.AnalyticsFilter) (*domain.Analytics, error) {
	for _, bucket := range r.buckets {
		if filter.IntegrationPathID != "" && bucket.IntegrationPathID != filter.IntegrationPathID {
			continue
		}
		if filter.Day != 0 && bucket.Day != filter.Day {
			continue
		}
		if len(filter.Statuses) > 0 {
			allowed := false
			for _, status := range filter.Statuses {
				if bucket.Status == status {
					allowed = true
				}
			}
			if !allowed {
				continue
			}
		}
		if filter.PersonID != "" && !containsString(bucket.PersonIDs, filter.PersonID) {
			continue
		}
		if filter.NotFull && bucket.PersonCount >= domain.MaxBucketMembers {
			continue
		}
		return bucket, nil
	}
	return nil, nil
}

func (r *fakeAnalyticsRepo) Create(_ context.Context, analytics *domain.Analytics) (string, error) {
	r.nextID++
	created := *analytics
	created.ID = fmt.Sprintf("analytics-%d", r.nextID)
	created.PersonIDs = []string{}
	created.PersonCount = 0
	r.buckets = append(r.buckets, &created)
	return created.ID, nil
}

func (r *fakeAnalyticsRepo) AppendPerson(_ context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) (bool, error) {
	for _, bucket := range r.buckets {
		if bucket.IntegrationPathID != pathID || bucket.Day != day || bucket.Status != status {
			continue
		}
		if containsString(bucket.PersonIDs, personID) || bucket.PersonCount >= domain.MaxBucketMembers {
			continue
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return true, nil
	}
	return false, nil
}

func (r *fakeAnalyticsRepo) AppendPersonByID(_ context.Context, id, personID string) error {
	for _, bucket := range r.buckets {
		if bucket.ID != id {
			continue
		}
		bucket.PersonIDs = append(bucket.PersonIDs, personID)
		bucket.PersonCount++
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeAnalyticsRepo) RemovePerson(_ context.Context, pathID string, day int64, status domain.AnalyticsStatus, personID string) error {
	for _, bucket := range r.buckets {
		if bucket.IntegrationPathID != pathID || bucket.Day != day || bucket.Status != status {
			continue
		}
		if !containsString(bucket.PersonIDs, personID) {
			continue
		}
		var members []string
		for _, member := range bucket.PersonIDs {
			if member != personID {
				members = append(members, member)
			}
		}
		bucket.PersonIDs = members
		bucket.PersonCount--
	}
	return nil
}

type fakeAnalysisRepo struct {
	counts map[string]int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{counts: make(map[string]int)}
}

func analysisCountKey(companyID, pathID string, day int64, status domain.AnalyticsStatus) string {
	return fmt.Sprintf("%s/%s/%d/%s", companyID, pathID, day, status)
}

func (r *fakeAnalysisRepo) Increment(_ context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error {
	r.counts[analysisCountKey(companyID, pathID, day, status)]++
	return nil
}

func (r *fakeAnalysisRepo) Decrement(_ context.Context, companyID, pathID string, day int64, status domain.AnalyticsStatus) error {
	key := analysisCountKey(companyID, pathID, day, status)
	if r.counts[key] > 0 {
		r.counts[key]--
	}
	return nil
}
