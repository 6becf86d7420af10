package planner

import (
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/timeofday"
)

// Materialize places blocks back to back starting at start. Times wrap past
// midnight.
func Materialize(blocks []model.RawBlock, start timeofday.Time) []model.ScheduleBlock {
	out := make([]model.ScheduleBlock, 0, len(blocks))
	cursor := start
	for _, b := range blocks {
		end := cursor.Add(b.Minutes)
		out = append(out, model.ScheduleBlock{
			Start:   cursor,
			End:     end,
			Subject: b.Subject,
			Minutes: b.Minutes,
		})
		cursor = end
	}
	return out
}
