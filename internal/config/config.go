package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	OpenAIKey          string
	OpenAIModel        string
	TranscriptionModel string

	AllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432 // fallback
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	trModel := os.Getenv("OPENAI_TRANSCRIPTION_MODEL")
	if trModel == "" {
		trModel = "whisper-1"
	}

	return &Config{
		Port: get("PORT", "8080"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: get("JWT_SECRET", "dev-secret-change-me"),

		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        model,
		TranscriptionModel: trModel,

		AllowedOrigins: []string{get("ALLOWED_ORIGIN", "*")},
	}
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
