package cycle

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayInCycleBounds(t *testing.T) {
	for cycleLen := 21; cycleLen <= 35; cycleLen++ {
		data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: cycleLen, PeriodLength: 5}
		for offset := -80; offset <= 80; offset++ {
			got := DayInCycle(data, data.LastPeriodStart.AddDate(0, 0, offset))
			if got < 1 || got > cycleLen {
				t.Fatalf("cycleLen=%d offset=%d: day %d out of [1,%d]", cycleLen, offset, got, cycleLen)
			}
		}
	}
}

func TestDayInCyclePeriodic(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.January, 10), CycleLength: 29, PeriodLength: 4}
	for offset := 0; offset < 60; offset++ {
		date := data.LastPeriodStart.AddDate(0, 0, offset)
		a := DayInCycle(data, date)
		b := DayInCycle(data, date.AddDate(0, 0, data.CycleLength))
		if a != b {
			t.Fatalf("offset %d: expected same day, got %d and %d", offset, a, b)
		}
	}
}

func TestDayInCycleFirstDay(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.May, 3), CycleLength: 28, PeriodLength: 5}
	if got := DayInCycle(data, data.LastPeriodStart); got != 1 {
		t.Fatalf("expected day 1 on period start, got %d", got)
	}
}

func TestDayInCycleBeforeStart(t *testing.T) {
	// Dates before the logged period normalize into an earlier cycle.
	data := Data{LastPeriodStart: day(2026, time.May, 10), CycleLength: 28, PeriodLength: 5}
	if got := DayInCycle(data, day(2026, time.May, 9)); got != 28 {
		t.Fatalf("expected day 28 the day before period start, got %d", got)
	}
	if got := DayInCycle(data, day(2026, time.April, 12)); got != 28 {
		t.Fatalf("expected day 28 one cycle earlier, got %d", got)
	}
}

func TestDayInCycleAcrossDSTShift(t *testing.T) {
	// US clocks spring forward on 2026-03-08; local days around the
	// shift are 23 hours long and must still count as whole days.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	data := Data{
		LastPeriodStart: time.Date(2026, time.March, 1, 0, 0, 0, 0, loc),
		CycleLength:     28,
		PeriodLength:    5,
	}

	if got := DayInCycle(data, time.Date(2026, time.March, 15, 0, 0, 0, 0, loc)); got != 15 {
		t.Fatalf("expected day 15 on march 15, got %d", got)
	}

	for offset := 0; offset < 40; offset++ {
		date := data.LastPeriodStart.AddDate(0, 0, offset)
		a := DayInCycle(data, date)
		b := DayInCycle(data, date.AddDate(0, 0, data.CycleLength))
		if a != b {
			t.Fatalf("offset %d: periodicity broken across DST, got %d and %d", offset, a, b)
		}
	}
}

func TestPhaseWindowsFixed(t *testing.T) {
	tests := []struct {
		name     string
		cycleLen int
		offset   int
		want     Phase
	}{
		{name: "day 1 menstrual", cycleLen: 28, offset: 0, want: Menstrual},
		{name: "day 5 menstrual", cycleLen: 28, offset: 4, want: Menstrual},
		{name: "day 6 follicular", cycleLen: 28, offset: 5, want: Follicular},
		{name: "day 13 follicular", cycleLen: 28, offset: 12, want: Follicular},
		{name: "day 14 ovulatory", cycleLen: 28, offset: 13, want: Ovulatory},
		{name: "day 16 ovulatory", cycleLen: 28, offset: 15, want: Ovulatory},
		{name: "day 17 luteal", cycleLen: 28, offset: 16, want: Luteal},
		{name: "day 28 luteal", cycleLen: 28, offset: 27, want: Luteal},
		{name: "long cycle day 20 still luteal", cycleLen: 35, offset: 19, want: Luteal},
		{name: "long cycle day 35 luteal", cycleLen: 35, offset: 34, want: Luteal},
		{name: "short cycle day 21 luteal", cycleLen: 21, offset: 20, want: Luteal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Data{LastPeriodStart: day(2026, time.February, 1), CycleLength: tt.cycleLen, PeriodLength: 5}
			got := PhaseForDate(data, data.LastPeriodStart.AddDate(0, 0, tt.offset))
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := Data{LastPeriodStart: day(2026, time.June, 1), CycleLength: 28, PeriodLength: 5}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid data rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Data)
		want error
	}{
		{"cycle too short", func(d *Data) { d.CycleLength = 20 }, ErrCycleLength},
		{"cycle too long", func(d *Data) { d.CycleLength = 36 }, ErrCycleLength},
		{"period too short", func(d *Data) { d.PeriodLength = 2 }, ErrPeriodLength},
		{"period too long", func(d *Data) { d.PeriodLength = 9 }, ErrPeriodLength},
		{"missing start", func(d *Data) { d.LastPeriodStart = time.Time{} }, ErrPeriodStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mut(&d)
			if err := d.Validate(); err != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: 28, PeriodLength: 5}
	for _, opt := range Optimizations {
		for prio := 1; prio <= 5; prio++ {
			for offset := 0; offset < 28; offset++ {
				s := Score(opt.TaskType, prio, data, data.LastPeriodStart.AddDate(0, 0, offset))
				if s < 0 || s > 1 {
					t.Fatalf("%s prio=%d offset=%d: score %f out of [0,1]", opt.TaskType, prio, offset, s)
				}
			}
		}
	}
}

func TestScorePrefersOptimalPhase(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: 28, PeriodLength: 5}

	// social tasks belong in the ovulatory window (day 14-16)
	ovulatory := data.LastPeriodStart.AddDate(0, 0, 14)
	menstrual := data.LastPeriodStart.AddDate(0, 0, 2)

	hi := Score(Social, 3, data, ovulatory)
	lo := Score(Social, 3, data, menstrual)
	if hi <= lo {
		t.Fatalf("expected ovulatory score (%f) above menstrual (%f) for social task", hi, lo)
	}
}

func TestScoreUnknownTypeNeutral(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: 28, PeriodLength: 5}
	if got := Score(TaskType("gardening"), 3, data, data.LastPeriodStart); got != 0.5 {
		t.Fatalf("expected neutral 0.5 for unknown type, got %f", got)
	}
}

func TestNextOptimalDates(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: 28, PeriodLength: 5}
	now := day(2026, time.March, 2)

	dates := NextOptimalDates(Creative, 3, data, now, 30)
	if len(dates) != 10 {
		t.Fatalf("expected 10 dates, got %d", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Score > dates[i-1].Score {
			t.Fatalf("dates not sorted by score: %f before %f", dates[i-1].Score, dates[i].Score)
		}
	}

	// best day for a creative task should be follicular or ovulatory
	best := PhaseForDate(data, dates[0].Date)
	if best != Follicular && best != Ovulatory {
		t.Fatalf("expected creative task to land in follicular/ovulatory, got %s", best)
	}
}

func TestNextOptimalDatesShortHorizon(t *testing.T) {
	data := Data{LastPeriodStart: day(2026, time.March, 1), CycleLength: 28, PeriodLength: 5}
	dates := NextOptimalDates(Creative, 3, data, day(2026, time.March, 2), 4)
	if len(dates) != 4 {
		t.Fatalf("expected 4 dates for 4-day horizon, got %d", len(dates))
	}
}
