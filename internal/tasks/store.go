package tasks

import (
	"context"
	"database/sql"
	"time"

	"synctracker-backend/internal/cycle"
)

func insertTask(ctx context.Context, dbx *sql.DB, userID int, in Input, scheduledAt *time.Time, phase string) (Task, error) {
	t := Task{
		Title:             in.Title,
		Description:       in.Description,
		TaskType:          in.TaskType,
		EstimatedDuration: in.EstimatedDuration,
		Priority:          in.Priority,
		Deadline:          in.Deadline,
		ScheduledAt:       scheduledAt,
	}

	err := dbx.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, description, task_type,
		                   estimated_duration, priority, deadline,
		                   scheduled_at, phase)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, userID, in.Title, in.Description, in.TaskType,
		in.EstimatedDuration, in.Priority, in.Deadline,
		scheduledAt, phase,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return Task{}, err
	}

	if phase != "" {
		t.Phase = cycle.Phase(phase)
	}
	return t, nil
}

func listTasks(ctx context.Context, dbx *sql.DB, userID int) ([]Task, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), task_type,
		       estimated_duration, priority, deadline, created_at,
		       scheduled_at, completed, COALESCE(phase, '')
		FROM tasks
		WHERE user_id = $1
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func upcomingTasks(ctx context.Context, dbx *sql.DB, userID, days int) ([]Task, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), task_type,
		       estimated_duration, priority, deadline, created_at,
		       scheduled_at, completed, COALESCE(phase, '')
		FROM tasks
		WHERE user_id = $1
		  AND completed = FALSE
		  AND scheduled_at IS NOT NULL
		  AND scheduled_at >= NOW()
		  AND scheduled_at < NOW() + make_interval(days => $2)
		ORDER BY scheduled_at
	`, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	var result []Task
	for rows.Next() {
		var (
			t     Task
			phase string
		)
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.TaskType,
			&t.EstimatedDuration,
			&t.Priority,
			&t.Deadline,
			&t.CreatedAt,
			&t.ScheduledAt,
			&t.Completed,
			&phase,
		); err != nil {
			return nil, err
		}
		t.Phase = cycle.Phase(phase)
		result = append(result, t)
	}
	return result, rows.Err()
}

func completeTask(ctx context.Context, dbx *sql.DB, userID, taskID int) (bool, error) {
	res, err := dbx.ExecContext(ctx, `
		UPDATE tasks SET completed = TRUE
		WHERE user_id = $1 AND id = $2
	`, userID, taskID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func deleteTask(ctx context.Context, dbx *sql.DB, userID, taskID int) (bool, error) {
	res, err := dbx.ExecContext(ctx, `
		DELETE FROM tasks WHERE user_id = $1 AND id = $2
	`, userID, taskID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
