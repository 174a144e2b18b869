package calendar

import (
	"strings"
	"testing"
	"time"

	"synctracker-backend/internal/cycle"
)

func TestExportICal(t *testing.T) {
	now := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)
	data := cycle.Data{LastPeriodStart: now.AddDate(0, 0, -3), CycleLength: 28, PeriodLength: 5}

	scheduled := now.AddDate(0, 0, 2)
	events := []Event{
		{ID: 1, Title: "Quarterly review", TaskType: cycle.Analytical, Priority: 4, DurationMin: 90, ScheduledAt: &scheduled},
		{ID: 2, Title: "Brainstorm launch ideas", Description: "whiteboard session", TaskType: cycle.Creative, Priority: 3, DurationMin: 60},
	}

	out := ExportICal(events, data, now)

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatal("missing calendar envelope")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	if !strings.Contains(out, "Quarterly review") {
		t.Fatal("missing scheduled task summary")
	}
	if !strings.Contains(out, "Brainstorm launch ideas") {
		t.Fatal("missing unscheduled task summary")
	}
	if !strings.Contains(out, "task-1@synctracker") {
		t.Fatal("missing stable event uid")
	}
}

func TestExportICalEmpty(t *testing.T) {
	now := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)
	data := cycle.Data{LastPeriodStart: now, CycleLength: 28, PeriodLength: 5}

	out := ExportICal(nil, data, now)
	if strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatal("empty export should contain no events")
	}
}
