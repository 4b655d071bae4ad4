package calendar

import (
	"time"

	"CryptoIntel/internal/model"
)

// Issues run Friday to Friday.
const anchorWeekday = time.Friday

// WeekOf returns the publication window containing t: from the most recent
// anchor weekday on or before t through the following anchor weekday. The
// offset from t back to the window start is always in [0,6] days.
func WeekOf(t time.Time) model.WeekRange {
	offset := (int(t.Weekday()) - int(anchorWeekday) + 7) % 7
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -offset)
	return model.WeekRange{
		Start: start,
		End:   start.AddDate(0, 0, 7),
	}
}
