package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"synctracker-backend/internal/ai"
	"synctracker-backend/internal/analytics"
	"synctracker-backend/internal/auth"
	"synctracker-backend/internal/calendar"
	"synctracker-backend/internal/cycle"
)

// Invoker is the slice of the AI client the handlers need. Tests swap in
// a stub.
type Invoker interface {
	Available() bool
	Invoke(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type Handler struct {
	DB *sql.DB
	AI Invoker
}

func New(dbx *sql.DB, aiClient Invoker) *Handler {
	return &Handler{DB: dbx, AI: aiClient}
}

// Analysis is the structured result of breaking free text into tasks.
type Analysis struct {
	Tasks  []Input `json:"tasks"`
	Intent string  `json:"intent"`
}

// fallbackAnalysis is what the client gets when AI is off or misbehaves.
// Deterministic so the add-task form can always prefill something.
func fallbackAnalysis(text string) Analysis {
	title := text
	if r := []rune(title); len(r) > 100 {
		title = string(r[:100])
	}
	if title == "" {
		title = "New Task"
	}
	return Analysis{
		Tasks: []Input{{
			Title:             title,
			Description:       text,
			TaskType:          cycle.Administrative,
			EstimatedDuration: 30,
			Priority:          3,
		}},
		Intent: "schedule",
	}
}

// Analyze runs the AI extraction over free text, with the user's current
// phase as context when cycle data exists.
func (h *Handler) Analyze(ctx context.Context, userID int, text string) Analysis {
	phase := ""
	if data, err := cycle.Get(ctx, h.DB, userID); err == nil {
		phase = string(cycle.CurrentPhase(data, time.Now()))
	}

	if !h.AI.Available() {
		return fallbackAnalysis(text)
	}

	resp, err := h.AI.Invoke(ctx, ai.BuildAnalysisPrompt(text, phase), 1000)
	if err != nil {
		log.Printf("[WARN] task analysis failed: %v", err)
		return fallbackAnalysis(text)
	}

	return parseAnalysis(resp, text)
}

// parseAnalysis turns a model answer into an Analysis, falling back to
// the deterministic single-task shape on anything malformed.
func parseAnalysis(resp, text string) Analysis {
	raw := ai.ExtractJSON(resp)
	if raw == "" {
		return fallbackAnalysis(text)
	}

	var out Analysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil || len(out.Tasks) == 0 {
		return fallbackAnalysis(text)
	}
	for i := range out.Tasks {
		if err := out.Tasks[i].Normalize(); err != nil {
			return fallbackAnalysis(text)
		}
	}
	if out.Intent == "" {
		out.Intent = "schedule"
	}
	return out
}

// ------------------------------------------------------------------
// POST /api/tasks/analyze
// ------------------------------------------------------------------

func (h *Handler) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			http.Error(w, "no text provided", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.Analyze(r.Context(), uid, body.Text))
	}
}

// ------------------------------------------------------------------
// POST /api/tasks/voice  (multipart: audio)
// ------------------------------------------------------------------

func (h *Handler) VoiceHandler(client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		file, header, err := r.FormFile("audio")
		if err != nil {
			http.Error(w, "audio file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if !client.Available() {
			http.Error(w, "transcription not configured", http.StatusServiceUnavailable)
			return
		}

		text, err := client.Transcribe(r.Context(), header.Filename, file)
		if err != nil {
			http.Error(w, "could not understand audio", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transcribed_text": text,
			"analysis":         h.Analyze(r.Context(), uid, text),
		})
	}
}

// ------------------------------------------------------------------
// POST /api/tasks/schedule
// ------------------------------------------------------------------

func (h *Handler) ScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Task         Input                  `json:"task"`
			WorkingHours *calendar.WorkingHours `json:"working_hours"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := body.Task.Normalize(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := cycle.Get(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		wh := calendar.DefaultWorkingHours
		if body.WorkingHours != nil {
			wh = *body.WorkingHours
		}

		now := time.Now()
		busy, err := calendar.BusyTimes(r.Context(), h.DB, uid, now, now.AddDate(0, 0, 14))
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		placement := calendar.ScheduleOptimally(
			body.Task.TaskType, body.Task.Priority, body.Task.EstimatedDuration,
			data, busy, now, 14, wh)
		if placement == nil {
			http.Error(w, "could not find optimal scheduling slot", http.StatusBadRequest)
			return
		}

		task, err := insertTask(r.Context(), h.DB, uid, body.Task,
			&placement.ScheduledTime, string(placement.Phase))
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// analytics: task_scheduled
		{
			env := analytics.FromRequest(r)
			env.UserID = uid

			props := map[string]any{
				"task_id":      task.ID,
				"task_type":    task.TaskType,
				"phase":        placement.Phase,
				"cycle_score":  placement.CycleScore,
				"scheduled_at": placement.ScheduledTime,
				"has_deadline": task.Deadline != nil,
			}
			_ = analytics.Log(r.Context(), h.DB, env, "task_scheduled", props,
				analytics.SourceEventKeyFromRequest(r))
		}

		explanation := h.explain(r.Context(), task, placement)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task":        task,
			"scheduling":  placement,
			"explanation": explanation,
		})
	}
}

func (h *Handler) explain(ctx context.Context, task Task, p *calendar.Placement) string {
	canned := fmt.Sprintf("Scheduled your %s task for %s during your %s phase!",
		task.TaskType, p.ScheduledTime.Format("Monday, Jan 2"), p.Phase)

	if !h.AI.Available() {
		return canned
	}
	out, err := h.AI.Invoke(ctx,
		ai.BuildExplanationPrompt(task.Title, string(task.TaskType), p.ScheduledTime, string(p.Phase)), 200)
	if err != nil {
		log.Printf("[WARN] scheduling explanation failed: %v", err)
		return canned
	}
	if out == "" {
		return canned
	}
	return out
}

// ------------------------------------------------------------------
// POST /api/tasks/batch-schedule
// ------------------------------------------------------------------

func (h *Handler) BatchScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Tasks []Input `json:"tasks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Tasks) == 0 {
			http.Error(w, "no tasks provided", http.StatusBadRequest)
			return
		}

		data, err := cycle.Get(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		now := time.Now()
		var scheduled []map[string]any
		for _, in := range body.Tasks {
			if err := in.Normalize(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			dates := cycle.NextOptimalDates(in.TaskType, in.Priority, data, now, 21)
			if len(dates) == 0 {
				continue
			}
			best := dates[0]

			scheduled = append(scheduled, map[string]any{
				"task":         in,
				"optimal_date": best.Date,
				"cycle_score":  best.Score,
				"phase":        cycle.PhaseForDate(data, best.Date),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scheduled_tasks": scheduled,
			"total_tasks":     len(scheduled),
		})
	}
}

// ------------------------------------------------------------------
// GET /api/tasks, GET /api/tasks/upcoming
// ------------------------------------------------------------------

func (h *Handler) ListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		result, err := listTasks(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tasks": result,
			"count": len(result),
		})
	}
}

func (h *Handler) UpcomingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			d, err := strconv.Atoi(v)
			if err != nil || d < 1 || d > 90 {
				http.Error(w, "bad days", http.StatusBadRequest)
				return
			}
			days = d
		}

		result, err := upcomingTasks(r.Context(), h.DB, uid, days)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"upcoming_tasks": result,
			"count":          len(result),
		})
	}
}

// ------------------------------------------------------------------
// PUT /api/tasks/:id/complete, DELETE /api/tasks/:id
// ------------------------------------------------------------------

func (h *Handler) CompleteHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID, err := strconv.Atoi(p.ByName("id"))
		if err != nil {
			http.Error(w, "bad task id", http.StatusBadRequest)
			return
		}

		done, err := completeTask(r.Context(), h.DB, uid, taskID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !done {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), h.DB, env, "task_completed",
			map[string]any{"task_id": taskID}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *Handler) DeleteHandler() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID, err := strconv.Atoi(p.ByName("id"))
		if err != nil {
			http.Error(w, "bad task id", http.StatusBadRequest)
			return
		}

		done, err := deleteTask(r.Context(), h.DB, uid, taskID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !done {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
