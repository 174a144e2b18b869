package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"synctracker-backend/internal/cycle"
)

// Event is a task projected into the exported calendar.
type Event struct {
	ID          int
	Title       string
	Description string
	TaskType    cycle.TaskType
	Priority    int
	DurationMin int
	ScheduledAt *time.Time
}

// ExportICal renders the user's tasks as an iCalendar feed. Scheduled
// tasks keep their slot; unscheduled ones go to their next optimal date.
func ExportICal(events []Event, data cycle.Data, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId("-//SyncTracker//Cycle Task Optimizer//EN")
	cal.SetVersion("2.0")

	for _, ev := range events {
		start := ev.ScheduledAt
		if start == nil {
			optimal := cycle.NextOptimalDates(ev.TaskType, ev.Priority, data, now, 30)
			if len(optimal) == 0 {
				continue
			}
			best := optimal[0].Date
			start = &best
		}

		e := cal.AddEvent(fmt.Sprintf("task-%d@synctracker", ev.ID))
		e.SetCreatedTime(now)
		e.SetDtStampTime(now)
		e.SetStartAt(*start)
		e.SetEndAt(start.Add(time.Duration(ev.DurationMin) * time.Minute))
		e.SetSummary(ev.Title)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}

		phase := cycle.PhaseForDate(data, *start)
		e.SetProperty(ics.ComponentProperty("CATEGORIES"), fmt.Sprintf("%s,%s", ev.TaskType, phase))
	}

	return cal.Serialize()
}
