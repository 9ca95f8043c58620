package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"pulse-core-targeting-api/internal/domain"
	"pulse-core-targeting-api/internal/ports"

	"github.com/rs/zerolog"
)

func adDataFilterFor(adID string, status domain.AdStatus, personID string) ports.AdDataFilter {
	return ports.AdDataFilter{AdID: adID, Statuses: []domain.AdStatus{status}, PersonID: personID}
}

type adFixture struct {
	people  *fakePersonRepo
	paths   *fakePathRepo
	ads     *fakeAdRepo
	adData  *fakeAdDataRepo
	answers *fakeAnswerRepo
	groups  *fakeTargetGroupRepo
	service *AdService
}

func newAdFixture() *adFixture {
	f := &adFixture{
		people: newFakePersonRepo(),
		paths: &fakePathRepo{paths: []*domain.IntegrationPath{
			{ID: "path-1", CompanyID: "company-1", Path: "/home"},
		}},
		ads: &fakeAdRepo{ads: []*domain.Ad{
			{ID: "ad-1", CompanyID: "company-1", OrderNumber: 1, Title: "First", TargetGroupID: "group-1", IntegrationPathIDs: []string{"path-1"}, IsActive: true},
			{ID: "ad-2", CompanyID: "company-1", OrderNumber: 2, Title: "Second", TargetGroupID: "group-1", IntegrationPathIDs: []string{"path-1"}, IsActive: true},
		}},
		adData:  &fakeAdDataRepo{},
		answers: &fakeAnswerRepo{},
		groups: newFakeTargetGroupRepo(&domain.TargetGroup{
			ID: "group-1", CompanyID: "company-1", Name: "everyone",
		}),
	}
	f.people.add(&domain.Person{ID: "person-1", Email: "ada@example.com"})

	targetGroups := NewTargetGroupService(f.groups, f.answers, zerolog.Nop())
	targetGroups.now = func() time.Time { return testBase }
	f.service = NewAdService(f.people, f.paths, f.ads, f.adData, targetGroups, zerolog.Nop())
	return f
}

func TestNextAdServesFirstAndRecordsShowed(t *testing.T) {
	f := newAdFixture()

	ad, err := f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
	if err != nil {
		t.Fatalf("NextAd: %v", err)
	}
	if ad == nil || ad.ID != "ad-1" {
		t.Fatalf("got %+v, want ad-1", ad)
	}

	shown, err := f.adData.FindOne(context.Background(), adDataFilterFor("ad-1", domain.AdStatusShowed, "person-1"))
	if err != nil || shown == nil {
		t.Fatalf("showed bucket missing: %v %v", shown, err)
	}
}

func TestNextAdRepeatsUntilDismissed(t *testing.T) {
	f := newAdFixture()

	for i := 0; i < 2; i++ {
		ad, err := f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
		if err != nil {
			t.Fatalf("NextAd #%d: %v", i+1, err)
		}
		if ad == nil || ad.ID != "ad-1" {
			t.Fatalf("serve #%d: got %+v, want ad-1", i+1, ad)
		}
	}
}

func TestNextAdRotatesAfterClose(t *testing.T) {
	f := newAdFixture()

	if _, err := f.service.NextAd(context.Background(), "company-1", "person-1", "/home"); err != nil {
		t.Fatalf("NextAd: %v", err)
	}
	if err := f.service.RecordStatus(context.Background(), "company-1", "person-1", "ad-1", domain.AdStatusClosed); err != nil {
		t.Fatalf("RecordStatus: %v", err)
	}

	ad, err := f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
	if err != nil {
		t.Fatalf("NextAd after close: %v", err)
	}
	if ad == nil || ad.ID != "ad-2" {
		t.Fatalf("got %+v, want ad-2", ad)
	}

	if err := f.service.RecordStatus(context.Background(), "company-1", "person-1", "ad-2", domain.AdStatusClicked); err != nil {
		t.Fatalf("RecordStatus: %v", err)
	}
	ad, err = f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
	if err != nil {
		t.Fatalf("NextAd after click: %v", err)
	}
	if ad != nil {
		t.Fatalf("got %+v, want nil once every ad is dismissed", ad)
	}
}

func TestRecordStatusMovesBetweenBuckets(t *testing.T) {
	f := newAdFixture()

	if err := f.service.RecordStatus(context.Background(), "company-1", "person-1", "ad-1", domain.AdStatusShowed); err != nil {
		t.Fatalf("RecordStatus showed: %v", err)
	}
	if err := f.service.RecordStatus(context.Background(), "company-1", "person-1", "ad-1", domain.AdStatusClicked); err != nil {
		t.Fatalf("RecordStatus clicked: %v", err)
	}

	shown, _ := f.adData.FindOne(context.Background(), adDataFilterFor("ad-1", domain.AdStatusShowed, "person-1"))
	if shown != nil {
		t.Errorf("person still in showed bucket after click")
	}
	clicked, _ := f.adData.FindOne(context.Background(), adDataFilterFor("ad-1", domain.AdStatusClicked, "person-1"))
	if clicked == nil {
		t.Errorf("person missing from clicked bucket")
	}
}

func TestRecordStatusRejectsUnknownStatus(t *testing.T) {
	f := newAdFixture()

	err := f.service.RecordStatus(context.Background(), "company-1", "person-1", "ad-1", domain.AdStatus("liked"))
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("got %v, want bad_request", err)
	}
}

func TestRecordStatusCrossTenant(t *testing.T) {
	f := newAdFixture()

	err := f.service.RecordStatus(context.Background(), "company-2", "person-1", "ad-1", domain.AdStatusClosed)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("got %v, want not_authenticated_request", err)
	}
}

func TestNextAdFiltersByTargetGroup(t *testing.T) {
	f := newAdFixture()

	// ad-1 now requires a fresh "yes" to template-1.
	f.groups.groups["group-1"].Filters = []domain.TargetFilter{
		{TemplateID: "template-1", AllowedAnswers: []string{"yes"}},
	}

	ad, err := f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
	if err != nil {
		t.Fatalf("NextAd: %v", err)
	}
	if ad != nil {
		t.Fatalf("got %+v, want nil while filter unmet", ad)
	}

	f.answers.buckets = append(f.answers.buckets, &domain.Answer{
		ID: "answer-1", TemplateID: "template-1", AnswerGiven: "yes",
		WeekGiven: domain.WeekKey(testBase, 0), WeekExpires: domain.WeekKey(testBase, 4),
		PersonIDs: []string{"person-1"}, PersonCount: 1,
	})

	ad, err = f.service.NextAd(context.Background(), "company-1", "person-1", "/home")
	if err != nil {
		t.Fatalf("NextAd with filter met: %v", err)
	}
	if ad == nil || ad.ID != "ad-1" {
		t.Fatalf("got %+v, want ad-1", ad)
	}
}
