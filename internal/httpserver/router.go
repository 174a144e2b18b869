package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"synctracker-backend/internal/ai"
	"synctracker-backend/internal/auth"
	"synctracker-backend/internal/calendar"
	"synctracker-backend/internal/chat"
	"synctracker-backend/internal/cycle"
	"synctracker-backend/internal/tasks"
)

// New wires the routing table. Everything under /api requires a bearer
// token; /health and /auth/{register,login} are public.
func New(dbx *sql.DB, secret []byte, aiClient *ai.Client) http.Handler {
	r := httprouter.New()

	mw := auth.NewMiddleware(secret)
	cycleH := cycle.NewHandler(dbx, aiClient)
	taskH := tasks.New(dbx, aiClient)

	wrap := func(h http.HandlerFunc) httprouter.Handle {
		return func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
			h(w, req)
		}
	}
	protected := func(h http.HandlerFunc) httprouter.Handle {
		return wrap(mw.Wrap(h))
	}
	protectedP := func(h httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, req *http.Request, p httprouter.Params) {
			mw.Wrap(func(w http.ResponseWriter, req *http.Request) {
				h(w, req, p)
			})(w, req)
		}
	}

	// Health (public)
	r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       "healthy",
			"timestamp":    time.Now().UTC(),
			"ai_available": aiClient.Available(),
		})
	})

	// Auth
	r.POST("/auth/register", wrap(auth.RegisterHandler(dbx, secret)))
	r.POST("/auth/login", wrap(auth.LoginHandler(dbx, secret)))
	r.GET("/auth/me", protected(auth.MeHandler(dbx)))
	r.POST("/auth/logout", protected(auth.LogoutHandler()))
	r.DELETE("/auth/account", protected(auth.DeleteAccountHandler(dbx)))

	// Cycle
	r.POST("/api/cycle/setup", protected(cycleH.SetupHandler()))
	r.GET("/api/cycle/current", protected(cycleH.CurrentHandler()))
	r.GET("/api/cycle/insights", protected(cycleH.InsightsHandler()))
	r.GET("/api/cycle/recommendations", protected(cycleH.RecommendationsHandler()))

	// Tasks
	r.POST("/api/tasks/analyze", protected(taskH.AnalyzeHandler()))
	r.POST("/api/tasks/voice", protected(taskH.VoiceHandler(aiClient)))
	r.POST("/api/tasks/schedule", protected(taskH.ScheduleHandler()))
	r.POST("/api/tasks/batch-schedule", protected(taskH.BatchScheduleHandler()))
	r.GET("/api/tasks", protected(taskH.ListHandler()))
	r.GET("/api/tasks/upcoming", protected(taskH.UpcomingHandler()))
	r.PUT("/api/tasks/:id/complete", protectedP(taskH.CompleteHandler()))
	r.DELETE("/api/tasks/:id", protectedP(taskH.DeleteHandler()))

	// Calendar
	r.GET("/api/calendar/grid", protected(calendar.GridHandler(dbx)))
	r.GET("/api/calendar/availability", protected(calendar.AvailabilityHandler(dbx)))
	r.GET("/api/calendar/export", protected(calendar.ExportHandler(dbx)))

	// Chat
	r.POST("/api/chat", protected(chat.Handler(dbx, aiClient)))

	return r
}
