package cycle

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"synctracker-backend/internal/ai"
	"synctracker-backend/internal/analytics"
	"synctracker-backend/internal/auth"
)

type Handler struct {
	DB *sql.DB
	AI *ai.Client
}

func NewHandler(dbx *sql.DB, aiClient *ai.Client) *Handler {
	return &Handler{DB: dbx, AI: aiClient}
}

func phaseBlock(p Phase) map[string]any {
	profile := Profiles[p]
	return map[string]any{
		"phase":           p,
		"characteristics": profile.Characteristics,
		"energy_level":    profile.EnergyLevel,
		"focus_level":     profile.FocusLevel,
	}
}

// ------------------------------------------------------------------
// POST /api/cycle/setup
// ------------------------------------------------------------------

func (h *Handler) SetupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			LastPeriodStart time.Time `json:"last_period_start"`
			CycleLength     int       `json:"cycle_length"`
			PeriodLength    int       `json:"period_length"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if body.CycleLength == 0 {
			body.CycleLength = 28
		}
		if body.PeriodLength == 0 {
			body.PeriodLength = 5
		}

		data := Data{
			UserID:          uid,
			LastPeriodStart: body.LastPeriodStart,
			CycleLength:     body.CycleLength,
			PeriodLength:    body.PeriodLength,
		}
		if err := data.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := Upsert(r.Context(), h.DB, data); err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// analytics: cycle_setup
		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"cycle_length":  data.CycleLength,
				"period_length": data.PeriodLength,
			}
			_ = analytics.Log(r.Context(), h.DB, env, "cycle_setup", props,
				analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":       "Cycle data updated successfully",
			"current_phase": phaseBlock(CurrentPhase(data, time.Now())),
		})
	}
}

// ------------------------------------------------------------------
// GET /api/cycle/current
// ------------------------------------------------------------------

func (h *Handler) CurrentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		data, err := Get(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		now := time.Now()
		phase := CurrentPhase(data, now)
		profile := Profiles[phase]

		optimal := make([]TaskType, 0, 4)
		for _, opt := range OptimalTaskTypes(phase) {
			optimal = append(optimal, opt.TaskType)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"phase":               phase,
			"day_in_cycle":        DayInCycle(data, now),
			"cycle_length":        data.CycleLength,
			"energy_level":        profile.EnergyLevel,
			"focus_level":         profile.FocusLevel,
			"creativity_level":    profile.CreativityLevel,
			"social_energy":       profile.SocialEnergy,
			"analytical_thinking": profile.Analytical,
			"characteristics":     profile.Characteristics,
			"optimal_tasks":       optimal,
		})
	}
}

// ------------------------------------------------------------------
// GET /api/cycle/insights
// ------------------------------------------------------------------

func (h *Handler) InsightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		data, err := Get(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		now := time.Now()
		phase := CurrentPhase(data, now)
		profile := Profiles[phase]

		// upcoming task titles feed the prompt and the response
		var titles []string
		upcoming := []map[string]any{}
		rows, err := h.DB.QueryContext(r.Context(), `
			SELECT title, scheduled_at
			FROM tasks
			WHERE user_id = $1
			  AND completed = FALSE
			  AND scheduled_at IS NOT NULL
			  AND scheduled_at >= NOW()
			  AND scheduled_at < NOW() + interval '7 days'
			ORDER BY scheduled_at
		`, uid)
		if err == nil {
			defer rows.Close()
			for rows.Next() {
				var (
					title string
					at    time.Time
				)
				if err := rows.Scan(&title, &at); err != nil {
					break
				}
				titles = append(titles, title)
				upcoming = append(upcoming, map[string]any{
					"title":        title,
					"scheduled_at": at,
				})
			}
		}

		insights := fmt.Sprintf("You're in your %s phase. This is a great time for %s.",
			phase, strings.ToLower(strings.Join(profile.Characteristics[:2], "; ")))

		if h.AI.Available() {
			out, err := h.AI.Invoke(r.Context(),
				ai.BuildInsightsPrompt(string(phase), profile.EnergyLevel, titles), 300)
			if err != nil {
				log.Printf("[WARN] insights generation failed: %v", err)
			} else if out != "" {
				insights = out
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"insights":       insights,
			"upcoming_tasks": upcoming,
		})
	}
}

// ------------------------------------------------------------------
// GET /api/cycle/recommendations
// ------------------------------------------------------------------

func (h *Handler) RecommendationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		data, err := Get(r.Context(), h.DB, uid)
		if err != nil {
			http.Error(w, "cycle data not found", http.StatusNotFound)
			return
		}

		phase := CurrentPhase(data, time.Now())
		profile := Profiles[phase]

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"current_phase":         phase,
			"phase_characteristics": profile.Characteristics,
			"energy_level":          profile.EnergyLevel,
			"focus_level":           profile.FocusLevel,
			"recommended_tasks":     OptimalTaskTypes(phase),
		})
	}
}
