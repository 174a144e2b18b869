package tasks

import (
	"errors"
	"strings"
	"time"

	"synctracker-backend/internal/cycle"
)

type Task struct {
	ID                int            `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	TaskType          cycle.TaskType `json:"task_type"`
	EstimatedDuration int            `json:"estimated_duration"`
	Priority          int            `json:"priority"`
	Deadline          *time.Time     `json:"deadline,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	ScheduledAt       *time.Time     `json:"scheduled_at,omitempty"`
	Completed         bool           `json:"completed"`
	Phase             cycle.Phase    `json:"phase,omitempty"`
}

// Input is what the client (or the analyzer) supplies for a new task.
type Input struct {
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	TaskType          cycle.TaskType `json:"task_type"`
	EstimatedDuration int            `json:"estimated_duration"`
	Priority          int            `json:"priority"`
	Deadline          *time.Time     `json:"deadline"`
}

var (
	ErrEmptyTitle  = errors.New("title is required")
	ErrDuration    = errors.New("estimated_duration must be between 15 and 480 minutes")
	ErrPriority    = errors.New("priority must be between 1 and 5")
	ErrBadTaskType = errors.New("unknown task_type")
)

// Normalize fills defaults and checks bounds. Matches the form limits the
// client enforces, so a well-behaved client never sees these errors.
func (in *Input) Normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrEmptyTitle
	}

	if in.TaskType == "" {
		in.TaskType = cycle.Administrative
	}
	if !cycle.ValidTaskType(in.TaskType) {
		return ErrBadTaskType
	}

	if in.EstimatedDuration == 0 {
		in.EstimatedDuration = 60
	}
	if in.EstimatedDuration < 15 || in.EstimatedDuration > 480 {
		return ErrDuration
	}

	if in.Priority == 0 {
		in.Priority = 3
	}
	if in.Priority < 1 || in.Priority > 5 {
		return ErrPriority
	}

	return nil
}
