package cycle

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrCycleLength  = errors.New("cycle_length must be between 21 and 35")
	ErrPeriodLength = errors.New("period_length must be between 3 and 8")
	ErrPeriodStart  = errors.New("last_period_start is required")
)

// Data is one user's cycle configuration.
type Data struct {
	UserID          int       `json:"user_id"`
	LastPeriodStart time.Time `json:"last_period_start"`
	CycleLength     int       `json:"cycle_length"`
	PeriodLength    int       `json:"period_length"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (d Data) Validate() error {
	if d.LastPeriodStart.IsZero() {
		return ErrPeriodStart
	}
	if d.CycleLength < 21 || d.CycleLength > 35 {
		return ErrCycleLength
	}
	if d.PeriodLength < 3 || d.PeriodLength > 8 {
		return ErrPeriodLength
	}
	return nil
}

// utcDate strips a timestamp down to its calendar date. Re-anchoring in
// UTC keeps day counting exact across DST transitions, where a local day
// is 23 or 25 hours long.
func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayInCycle returns the 1-based cycle day for a date. Dates before the
// last period start are normalized into an earlier cycle, so the result
// is always in [1, CycleLength] and periodic with period CycleLength.
func DayInCycle(d Data, date time.Time) int {
	days := int(utcDate(date).Sub(utcDate(d.LastPeriodStart)).Hours() / 24)
	day := days % d.CycleLength
	if day < 0 {
		day += d.CycleLength
	}
	return day + 1
}

// PhaseForDate returns the phase a given date falls in.
func PhaseForDate(d Data, date time.Time) Phase {
	return PhaseForDay(DayInCycle(d, date))
}

// CurrentPhase returns the phase for now.
func CurrentPhase(d Data, now time.Time) Phase {
	return PhaseForDate(d, now)
}

// Score weights for optimal-date ranking.
const (
	phaseWeight  = 0.5
	energyWeight = 0.3
	focusWeight  = 0.2
)

// Score rates how well a task type fits a date, 0..1. Unknown task types
// get a neutral 0.5. Priority (1..5) adds up to +0.4.
func Score(taskType TaskType, priority int, d Data, date time.Time) float64 {
	opt, ok := OptimizationFor(taskType)
	if !ok {
		return 0.5
	}

	phase := PhaseForDate(d, date)
	profile := Profiles[phase]

	base := 0.3
	for _, p := range opt.OptimalPhases {
		if p == phase {
			base = 0.8
			break
		}
	}

	score := base*phaseWeight +
		float64(profile.EnergyLevel)/10*energyWeight +
		float64(profile.FocusLevel)/10*focusWeight

	score += float64(priority-1) * 0.1
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ScoredDate is a candidate scheduling day.
type ScoredDate struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// NextOptimalDates scores each of the next daysAhead days for a task and
// returns the ten best, highest score first.
func NextOptimalDates(taskType TaskType, priority int, d Data, now time.Time, daysAhead int) []ScoredDate {
	dates := make([]ScoredDate, 0, daysAhead)
	for i := 0; i < daysAhead; i++ {
		t := now.AddDate(0, 0, i)
		dates = append(dates, ScoredDate{Date: t, Score: Score(taskType, priority, d, t)})
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].Score > dates[j].Score
	})

	if len(dates) > 10 {
		dates = dates[:10]
	}
	return dates
}
