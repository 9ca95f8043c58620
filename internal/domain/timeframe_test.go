package domain

import (
	"testing"
	"time"
)

func TestDayKeyTruncatesToMidnight(t *testing.T) {
	morning := time.Date(2026, time.March, 4, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 4, 23, 59, 59, 0, time.UTC)

	if DayKey(morning, 0) != DayKey(evening, 0) {
		t.Errorf("same day produced different keys")
	}

	midnight := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got, want := DayKey(morning, 0), midnight.Unix(); got != want {
		t.Errorf("DayKey = %d, want %d", got, want)
	}
	if got, want := DayKey(morning, 3), midnight.AddDate(0, 0, 3).Unix(); got != want {
		t.Errorf("DayKey offset 3 = %d, want %d", got, want)
	}
}

func TestWeekKeyStartsMonday(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	// Every day of that week maps onto the same Monday.
	for days := 0; days < 7; days++ {
		moment := monday.Add(time.Duration(days*24+13) * time.Hour)
		if got := WeekKey(moment, 0); got != monday.Unix() {
			t.Errorf("day %d: WeekKey = %d, want %d", days, got, monday.Unix())
		}
	}

	if got, want := WeekKey(monday, 4), monday.AddDate(0, 0, 28).Unix(); got != want {
		t.Errorf("WeekKey offset 4 = %d, want %d", got, want)
	}
	if got, want := WeekKey(monday, -1), monday.AddDate(0, 0, -7).Unix(); got != want {
		t.Errorf("WeekKey offset -1 = %d, want %d", got, want)
	}
}

func TestWeekKeySundayBelongsToPreviousMonday(t *testing.T) {
	sunday := time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	if got := WeekKey(sunday, 0); got != monday.Unix() {
		t.Errorf("WeekKey(sunday) = %d, want %d", got, monday.Unix())
	}
}
