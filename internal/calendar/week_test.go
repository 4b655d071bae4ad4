package calendar

import (
	"testing"
	"time"
)

func TestWeekOf_WindowProperties(t *testing.T) {
	// One date per weekday.
	base := time.Date(2026, time.August, 24, 15, 30, 0, 0, time.UTC) // a Monday
	for i := 0; i < 7; i++ {
		d := base.AddDate(0, 0, i)
		w := WeekOf(d)

		if w.Start.After(d) {
			t.Errorf("%s: start %s is after the input date", d.Weekday(), w.Start)
		}
		offset := d.Truncate(24 * time.Hour).Sub(w.Start)
		if offset < 0 || offset >= 7*24*time.Hour {
			t.Errorf("%s: offset %v out of [0,7) days", d.Weekday(), offset)
		}
		if got := w.Start.AddDate(0, 0, 7); !got.Equal(w.End) {
			t.Errorf("%s: end %s is not start+7d", d.Weekday(), w.End)
		}
		if w.Start.Weekday() != time.Friday {
			t.Errorf("%s: window starts on %s, want Friday", d.Weekday(), w.Start.Weekday())
		}
	}
}

func TestWeekOf_WednesdayMapsToPrecedingFriday(t *testing.T) {
	wed := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	w := WeekOf(wed)

	if got := w.StartLabel(); got != "August 21" {
		t.Errorf("start label: got %q, want %q", got, "August 21")
	}
	if got := w.EndLabel(); got != "August 28, 2026" {
		t.Errorf("end label: got %q, want %q", got, "August 28, 2026")
	}
	if got := w.Label(); got != "August 21 – August 28, 2026" {
		t.Errorf("label: got %q", got)
	}
}

func TestWeekOf_AnchorDayMapsToItself(t *testing.T) {
	fri := time.Date(2026, time.August, 21, 23, 59, 0, 0, time.UTC)
	w := WeekOf(fri)
	if w.Start.Day() != 21 || w.Start.Month() != time.August {
		t.Errorf("a Friday should start its own window, got start %s", w.Start)
	}
}

func TestWeekOf_NoLeadingZeroInDayLabel(t *testing.T) {
	// Window starting Friday September 4.
	wed := time.Date(2026, time.September, 9, 12, 0, 0, 0, time.UTC)
	w := WeekOf(wed)
	if got := w.StartLabel(); got != "September 4" {
		t.Errorf("start label: got %q, want %q", got, "September 4")
	}
}
