package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"synctracker-backend/internal/auth"
	"synctracker-backend/internal/cycle"
)

// BusyTimes loads the scheduled, uncompleted tasks in a window as busy
// intervals. This is the availability source instead of an external
// calendar: everything the app schedules is in the tasks table.
func BusyTimes(ctx context.Context, dbx *sql.DB, userID int, from, to time.Time) ([]Interval, error) {
	rows, err := dbx.QueryContext(ctx, `
		SELECT title, scheduled_at, estimated_duration
		FROM tasks
		WHERE user_id = $1
		  AND completed = FALSE
		  AND scheduled_at IS NOT NULL
		  AND scheduled_at < $3
		  AND scheduled_at + (estimated_duration || ' minutes')::interval > $2
		ORDER BY scheduled_at
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var busy []Interval
	for rows.Next() {
		var (
			title    string
			start    time.Time
			duration int
		)
		if err := rows.Scan(&title, &start, &duration); err != nil {
			return nil, err
		}
		busy = append(busy, Interval{
			Start:   start,
			End:     start.Add(time.Duration(duration) * time.Minute),
			Summary: title,
		})
	}
	return busy, rows.Err()
}

// maxAvailabilityWindow bounds the slot search so a huge requested range
// does not walk years of calendar days.
const maxAvailabilityWindow = 90 * 24 * time.Hour

// GridHandler renders the month view: GET /api/calendar/grid?year=&month=
func GridHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		year, month := now.Year(), now.Month()
		if v := r.URL.Query().Get("year"); v != "" {
			y, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "bad year", http.StatusBadRequest)
				return
			}
			year = y
		}
		if v := r.URL.Query().Get("month"); v != "" {
			m, err := strconv.Atoi(v)
			if err != nil || m < 1 || m > 12 {
				http.Error(w, "bad month", http.StatusBadRequest)
				return
			}
			month = time.Month(m)
		}

		data, err := cycle.Get(r.Context(), dbx, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		cells := MonthGrid(year, month, data, now)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"year":  year,
			"month": int(month),
			"cells": cells,
		})
	}
}

// AvailabilityHandler: GET /api/calendar/availability?start=&end=&duration=
func AvailabilityHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		start, err := time.Parse(time.RFC3339, q.Get("start"))
		if err != nil {
			http.Error(w, "bad start", http.StatusBadRequest)
			return
		}
		end, err := time.Parse(time.RFC3339, q.Get("end"))
		if err != nil || !end.After(start) {
			http.Error(w, "bad end", http.StatusBadRequest)
			return
		}
		if end.Sub(start) > maxAvailabilityWindow {
			http.Error(w, "range too large", http.StatusBadRequest)
			return
		}

		duration := 60
		if v := q.Get("duration"); v != "" {
			duration, err = strconv.Atoi(v)
			if err != nil || duration <= 0 {
				http.Error(w, "bad duration", http.StatusBadRequest)
				return
			}
		}

		busy, err := BusyTimes(r.Context(), dbx, uid, start, end)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		slots := AvailableSlots(busy, start, end, duration, DefaultWorkingHours)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"busy":  busy,
			"slots": slots,
			"period": map[string]any{
				"start": start,
				"end":   end,
			},
		})
	}
}

// ExportHandler: GET /api/calendar/export — tasks as a .ics download.
func ExportHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		data, err := cycle.Get(r.Context(), dbx, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		rows, err := dbx.QueryContext(r.Context(), `
			SELECT id, title, COALESCE(description, ''), task_type,
			       priority, estimated_duration, scheduled_at
			FROM tasks
			WHERE user_id = $1 AND completed = FALSE
			ORDER BY id
		`, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var events []Event
		for rows.Next() {
			var ev Event
			if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.TaskType,
				&ev.Priority, &ev.DurationMin, &ev.ScheduledAt); err != nil {
				http.Error(w, "scan error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			events = append(events, ev)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, "db rows error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=synctracker_%d.ics", uid))
		_, _ = w.Write([]byte(ExportICal(events, data, time.Now())))
	}
}
