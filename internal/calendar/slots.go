package calendar

import (
	"fmt"
	"time"

	"synctracker-backend/internal/cycle"
)

// Interval is a busy window taken from already-scheduled tasks.
type Interval struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Summary string    `json:"summary"`
}

// Slot is a free window a task could go into.
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"`
}

// WorkingHours bounds slot search to [From, To) o'clock.
type WorkingHours struct {
	From int `json:"from"`
	To   int `json:"to"`
}

var DefaultWorkingHours = WorkingHours{From: 9, To: 17}

func (wh WorkingHours) valid() bool {
	return wh.From >= 0 && wh.To <= 24 && wh.From < wh.To
}

// AvailableSlots walks hour starts inside working hours between from and
// to, skipping weekends and anything overlapping a busy interval.
func AvailableSlots(busy []Interval, from, to time.Time, durationMin int, wh WorkingHours) []Slot {
	if !wh.valid() {
		wh = DefaultWorkingHours
	}

	var slots []Slot
	day := midnight(from)
	last := midnight(to)

	for !day.After(last) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			day = day.AddDate(0, 0, 1)
			continue
		}

		for hour := wh.From; hour < wh.To; hour++ {
			start := day.Add(time.Duration(hour) * time.Hour)
			end := start.Add(time.Duration(durationMin) * time.Minute)

			if start.Before(from) || end.After(to) {
				continue
			}

			free := true
			for _, b := range busy {
				if start.Before(b.End) && end.After(b.Start) {
					free = false
					break
				}
			}
			if free {
				slots = append(slots, Slot{Start: start, End: end, Duration: durationMin})
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// Placement is the result of optimal scheduling.
type Placement struct {
	ScheduledTime time.Time   `json:"scheduled_time"`
	EndTime       time.Time   `json:"end_time"`
	CycleScore    float64     `json:"cycle_score"`
	Phase         cycle.Phase `json:"hormonal_phase"`
	Reasoning     string      `json:"reasoning"`
}

// ScheduleOptimally walks the cycle-optimal dates for a task and takes
// the first free slot on the best-scoring day. Nil when every candidate
// day is fully booked.
func ScheduleOptimally(taskType cycle.TaskType, priority, durationMin int, data cycle.Data, busy []Interval, now time.Time, daysAhead int, wh WorkingHours) *Placement {
	if !wh.valid() {
		wh = DefaultWorkingHours
	}

	for _, cand := range cycle.NextOptimalDates(taskType, priority, data, now, daysAhead) {
		dayStart := midnight(cand.Date).Add(time.Duration(wh.From) * time.Hour)
		dayEnd := midnight(cand.Date).Add(time.Duration(wh.To) * time.Hour)
		if dayEnd.Before(now) {
			continue
		}
		if dayStart.Before(now) {
			dayStart = now
		}

		slots := AvailableSlots(busy, dayStart, dayEnd, durationMin, wh)
		if len(slots) == 0 {
			continue
		}

		phase := cycle.PhaseForDate(data, cand.Date)
		return &Placement{
			ScheduledTime: slots[0].Start,
			EndTime:       slots[0].End,
			CycleScore:    cand.Score,
			Phase:         phase,
			Reasoning:     fmt.Sprintf("Scheduled during %s phase for optimal %s performance", phase, taskType),
		}
	}

	return nil
}
