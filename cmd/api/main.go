package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"synctracker-backend/internal/ai"
	"synctracker-backend/internal/config"
	"synctracker-backend/internal/db"
	"synctracker-backend/internal/httpserver"
	"synctracker-backend/internal/scheduler"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	log.Println("✅ Connected to PostgreSQL!")

	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.TranscriptionModel)
	if aiClient.Available() {
		log.Println("✅ AI client configured, model:", cfg.OpenAIModel)
	} else {
		log.Println("⚠️ OPENAI_API_KEY not set — AI endpoints run in fallback mode")
	}

	// cycle window roll-forward job
	s := &scheduler.Service{DB: database}
	c := s.Start()
	defer c.Stop()

	router := httpserver.New(database, []byte(cfg.JWTSecret), aiClient)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Platform", "X-App-Version", "X-Session-Id", "Idempotency-Key"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(router)

	log.Println("🚀 API server is running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
