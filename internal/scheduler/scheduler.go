package scheduler

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Service rolls stale cycle windows forward once a day, so day-in-cycle
// math always works against the current window even when the user stops
// logging periods.
type Service struct {
	DB *sql.DB
}

func (s *Service) Start() *cron.Cron {
	c := cron.New()
	// daily, shortly after midnight UTC
	_, _ = c.AddFunc("5 0 * * *", func() {
		s.RunDaily(context.Background())
	})
	c.Start()
	return c
}

func (s *Service) RunDaily(ctx context.Context) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT user_id, last_period_start, cycle_length
		FROM cycles
	`)
	if err != nil {
		log.Printf("[WARN] cycle roll query failed: %v", err)
		return
	}
	defer rows.Close()

	now := time.Now()
	for rows.Next() {
		var (
			uid       int
			lastStart time.Time
			cycleLen  int
		)
		if err := rows.Scan(&uid, &lastStart, &cycleLen); err != nil {
			continue
		}

		rolled := RollForward(lastStart, cycleLen, now)
		if rolled.Equal(lastStart) {
			continue
		}

		if _, err := s.DB.ExecContext(ctx, `
			UPDATE cycles SET last_period_start = $1, updated_at = NOW()
			WHERE user_id = $2
		`, rolled, uid); err != nil {
			log.Printf("[WARN] cycle roll update failed for user %d: %v", uid, err)
		}
	}
}

// RollForward advances lastStart by whole cycles until the window
// contains now. Advancing by whole cycles keeps DayInCycle unchanged.
func RollForward(lastStart time.Time, cycleLen int, now time.Time) time.Time {
	if cycleLen <= 0 {
		return lastStart
	}
	next := lastStart.AddDate(0, 0, cycleLen)
	for !next.After(now) {
		lastStart = next
		next = lastStart.AddDate(0, 0, cycleLen)
	}
	return lastStart
}
