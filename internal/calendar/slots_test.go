package calendar

import (
	"testing"
	"time"

	"synctracker-backend/internal/cycle"
)

// Monday 2026-08-24 through Friday, a clean working week.
var weekStart = time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)

func TestAvailableSlotsSkipsWeekends(t *testing.T) {
	// saturday + sunday only
	from := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)

	slots := AvailableSlots(nil, from, to, 60, DefaultWorkingHours)
	if len(slots) != 0 {
		t.Fatalf("expected no weekend slots, got %d", len(slots))
	}
}

func TestAvailableSlotsWorkingHours(t *testing.T) {
	to := weekStart.AddDate(0, 0, 1)
	slots := AvailableSlots(nil, weekStart, to, 60, WorkingHours{From: 9, To: 17})

	if len(slots) != 8 {
		t.Fatalf("expected 8 hourly slots in a 9-17 day, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Start.Hour() < 9 || s.Start.Hour() >= 17 {
			t.Fatalf("slot at %s outside working hours", s.Start)
		}
		if s.End.Sub(s.Start) != 60*time.Minute {
			t.Fatalf("slot length %s, want 1h", s.End.Sub(s.Start))
		}
	}
}

func TestAvailableSlotsExcludesBusy(t *testing.T) {
	busy := []Interval{
		{Start: weekStart.Add(10 * time.Hour), End: weekStart.Add(11*time.Hour + 30*time.Minute)},
	}
	to := weekStart.AddDate(0, 0, 1)
	slots := AvailableSlots(busy, weekStart, to, 60, WorkingHours{From: 9, To: 17})

	for _, s := range slots {
		if s.Start.Before(busy[0].End) && s.End.After(busy[0].Start) {
			t.Fatalf("slot %s-%s overlaps busy window", s.Start, s.End)
		}
	}
	// 9:00 free, 10:00 and 11:00 blocked, 12:00..16:00 free => 6
	if len(slots) != 6 {
		t.Fatalf("expected 6 free slots, got %d", len(slots))
	}
}

func TestAvailableSlotsLongDuration(t *testing.T) {
	to := weekStart.AddDate(0, 0, 1)
	slots := AvailableSlots(nil, weekStart, to, 480, WorkingHours{From: 9, To: 17})
	if len(slots) != 1 {
		t.Fatalf("a 8h task fits exactly once in a 9-17 day, got %d slots", len(slots))
	}
	if slots[0].Start.Hour() != 9 {
		t.Fatalf("expected the 9:00 slot, got %s", slots[0].Start)
	}
}

func TestScheduleOptimallyPicksOptimalPhase(t *testing.T) {
	data := cycle.Data{
		LastPeriodStart: weekStart, // cycle day 1 on monday
		CycleLength:     28,
		PeriodLength:    5,
	}

	p := ScheduleOptimally(cycle.Social, 3, 60, data, nil, weekStart, 28, DefaultWorkingHours)
	if p == nil {
		t.Fatal("expected a placement")
	}
	if p.Phase != cycle.Ovulatory {
		t.Fatalf("social task should land in ovulatory phase, got %s", p.Phase)
	}
	if p.CycleScore <= 0 || p.CycleScore > 1 {
		t.Fatalf("cycle score %f out of range", p.CycleScore)
	}
	if !p.EndTime.After(p.ScheduledTime) {
		t.Fatal("end time must follow start time")
	}
}

func TestScheduleOptimallyNilWhenBooked(t *testing.T) {
	data := cycle.Data{LastPeriodStart: weekStart, CycleLength: 28, PeriodLength: 5}

	// every day for the horizon is solid busy
	var busy []Interval
	for i := 0; i < 40; i++ {
		d := weekStart.AddDate(0, 0, i)
		busy = append(busy, Interval{Start: d, End: d.AddDate(0, 0, 1)})
	}

	if p := ScheduleOptimally(cycle.Creative, 3, 60, data, busy, weekStart, 14, DefaultWorkingHours); p != nil {
		t.Fatalf("expected no placement, got %+v", p)
	}
}
