package domain

// AdStatus records how a person interacted with an ad.
type AdStatus string

const (
	AdStatusShowed  AdStatus = "showed"
	AdStatusClosed  AdStatus = "closed"
	AdStatusClicked AdStatus = "clicked"
)

// Valid reports whether the status is one of the known interaction kinds.
func (s AdStatus) Valid() bool {
	return s == AdStatusShowed || s == AdStatusClosed || s == AdStatusClicked
}

// Ad is a targeted banner shown on a company's integration paths to persons
// matching its target group.
type Ad struct {
	ID                 string
	CompanyID          string
	OrderNumber        int
	Name               string
	Title              string
	Text               string
	ButtonText         string
	ButtonURL          string
	ImageURL           string
	TargetGroupID      string
	IntegrationPathIDs []string
	IsActive           bool
	CreatedAt          string
}

// View is the widget-facing projection of an ad.
type AdView struct {
	ID         string `json:"_id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	ButtonText string `json:"button_text"`
	ButtonURL  string `json:"button_url"`
	ImageURL   string `json:"image_url"`
}

// View projects the fields a widget renders.
func (a *Ad) View() *AdView {
	return &AdView{
		ID:         a.ID,
		Title:      a.Title,
		Text:       a.Text,
		ButtonText: a.ButtonText,
		ButtonURL:  a.ButtonURL,
		ImageURL:   a.ImageURL,
	}
}

// AdData is a bucket of persons sharing one interaction status for one ad,
// capped at MaxBucketMembers like every other bucket.
type AdData struct {
	ID          string
	AdID        string
	Status      AdStatus
	PersonIDs   []string
	PersonCount int
}
