package cycle

import (
	"context"
	"database/sql"
)

// Upsert writes the user's cycle row, replacing any previous one.
func Upsert(ctx context.Context, dbx *sql.DB, d Data) error {
	_, err := dbx.ExecContext(ctx, `
		INSERT INTO cycles (user_id, last_period_start, cycle_length, period_length)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET
			last_period_start = EXCLUDED.last_period_start,
			cycle_length      = EXCLUDED.cycle_length,
			period_length     = EXCLUDED.period_length,
			updated_at        = NOW()
	`, d.UserID, d.LastPeriodStart, d.CycleLength, d.PeriodLength)
	return err
}

// Get loads the user's cycle row. sql.ErrNoRows when the setup wizard
// was never completed.
func Get(ctx context.Context, dbx *sql.DB, userID int) (Data, error) {
	var d Data
	d.UserID = userID
	err := dbx.QueryRowContext(ctx, `
		SELECT last_period_start, cycle_length, period_length, updated_at
		FROM cycles
		WHERE user_id = $1
	`, userID).Scan(&d.LastPeriodStart, &d.CycleLength, &d.PeriodLength, &d.UpdatedAt)
	return d, err
}
