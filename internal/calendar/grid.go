package calendar

import (
	"time"

	"synctracker-backend/internal/cycle"
)

// Cell is one day in the rendered month view.
type Cell struct {
	Date         time.Time   `json:"date"`
	Day          int         `json:"day"`
	InMonth      bool        `json:"in_month"`
	CycleDay     int         `json:"cycle_day"`
	Phase        cycle.Phase `json:"phase"`
	IsToday      bool        `json:"is_today"`
	PeriodDay    bool        `json:"period_day"`
	PredictedDay bool        `json:"predicted_period"`
}

// GridSize is fixed: six weeks of seven days, enough for any month
// regardless of which weekday the 1st lands on.
const GridSize = 42

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthGrid builds the 42-cell grid for a month. The grid starts on the
// Sunday on or before the 1st. Each cell carries the cycle day and phase
// for the user's cycle data; IsToday is true for at most one cell.
func MonthGrid(year int, month time.Month, data cycle.Data, now time.Time) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Cell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		date := start.AddDate(0, 0, i)
		day := cycle.DayInCycle(data, date)

		cells = append(cells, Cell{
			Date:      date,
			Day:       date.Day(),
			InMonth:   date.Month() == month,
			CycleDay:  day,
			Phase:     cycle.PhaseForDay(day),
			IsToday:   sameDay(date, now),
			PeriodDay: day <= data.PeriodLength,
		})
	}

	// Days of the next expected period, so the view can mark them
	// differently from the logged one.
	for i := range cells {
		if cells[i].PeriodDay && cells[i].Date.After(midnight(data.LastPeriodStart).AddDate(0, 0, data.CycleLength-1)) {
			cells[i].PredictedDay = true
		}
	}

	return cells
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
