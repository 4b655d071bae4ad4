package model

import "time"

// WeekRange is the publication window for one newsletter issue.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// StartLabel formats the window start as "Month Day" with no leading zero.
func (w WeekRange) StartLabel() string {
	return w.Start.Format("January 2")
}

// EndLabel formats the window end as "Month Day, Year".
func (w WeekRange) EndLabel() string {
	return w.End.Format("January 2, 2006")
}

// Label joins both ends with an en dash, the form used in the newsletter
// header and all social posts.
func (w WeekRange) Label() string {
	return w.StartLabel() + " – " + w.EndLabel()
}
