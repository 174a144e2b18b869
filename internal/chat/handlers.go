package chat

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"synctracker-backend/internal/ai"
	"synctracker-backend/internal/analytics"
	"synctracker-backend/internal/auth"
	"synctracker-backend/internal/cycle"
)

const fallbackReply = "I'm here to help with your cycle-aware productivity! (AI features are not configured right now.)"

// Handler answers POST /api/chat: one message in, one assistant reply out.
func Handler(dbx *sql.DB, aiClient *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}

		phase := ""
		if data, err := cycle.Get(r.Context(), dbx, uid); err == nil {
			phase = string(cycle.CurrentPhase(data, time.Now()))
		}

		response := fallbackReply
		if aiClient.Available() {
			out, err := aiClient.Invoke(r.Context(), ai.BuildChatPrompt(body.Message, phase), 1000)
			if err != nil {
				log.Printf("[WARN] chat completion failed: %v", err)
			} else if out != "" {
				response = out
			}
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		_ = analytics.Log(r.Context(), dbx, env, "chat_message",
			map[string]any{"message_len": len(body.Message), "phase": phase},
			analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":  response,
			"timestamp": time.Now().UTC(),
		})
	}
}
