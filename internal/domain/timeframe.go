package domain

import "time"

// Answer freshness and analytics grouping are keyed by unix timestamps
// truncated to the start of the local day or week. Buckets created in the same
// week share one key regardless of the hour a person answered.

// DayKey returns the unix timestamp of local midnight, offset by the given
// number of days.
func DayKey(t time.Time, offsetDays int) int64 {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, offsetDays).Unix()
}

// WeekKey returns the unix timestamp of the local week start (Monday,
// midnight), offset by the given number of weeks.
func WeekKey(t time.Time, offsetWeeks int) int64 {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

	// time.Weekday counts Sunday as 0; shift so Monday opens the week.
	back := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -back+offsetWeeks*7).Unix()
}
