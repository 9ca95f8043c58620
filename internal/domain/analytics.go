package domain

// AnalyticsStatus classifies a widget session outcome for daily funnels.
//
//	showed:   opened the banner, nothing else happened
//	closed:   clicked close immediately
//	email:    gave their email, then closed
//	question: answered questions, saw no banner
//	ad:       was shown an ad
type AnalyticsStatus string

const (
	AnalyticsShowed   AnalyticsStatus = "showed"
	AnalyticsClosed   AnalyticsStatus = "closed"
	AnalyticsEmail    AnalyticsStatus = "email"
	AnalyticsQuestion AnalyticsStatus = "question"
	AnalyticsAd       AnalyticsStatus = "ad"
)

// Valid reports whether the status belongs to the analytics vocabulary.
func (s AnalyticsStatus) Valid() bool {
	switch s {
	case AnalyticsShowed, AnalyticsClosed, AnalyticsEmail, AnalyticsQuestion, AnalyticsAd:
		return true
	}
	return false
}

// ValidForAnalysis reports whether the status is counted by the aggregate
// analysis counters, which do not track the ad outcome.
func (s AnalyticsStatus) ValidForAnalysis() bool {
	return s.Valid() && s != AnalyticsAd
}

// Analytics is a daily bucket of persons who reached one outcome on one
// integration path, capped at MaxBucketMembers.
type Analytics struct {
	ID                string
	CompanyID         string
	IntegrationPathID string
	Day               int64
	Status            AnalyticsStatus
	PersonIDs         []string
	PersonCount       int
}

// Analysis is the aggregate counter companion of Analytics: one people_count
// per (company, path, day, status), maintained by atomic increments.
type Analysis struct {
	ID                string
	CompanyID         string
	IntegrationPathID string
	Day               int64
	Status            AnalyticsStatus
	PeopleCount       int
}
