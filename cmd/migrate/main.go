package main

import (
	"log"
	"os"

	"synctracker-backend/internal/config"
	"synctracker-backend/internal/db"
)

func main() {
	path := "migrations/001_init.sql"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	sqlBytes, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	d, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	if _, err := d.Exec(string(sqlBytes)); err != nil {
		log.Fatal(err)
	}

	log.Println("Migration OK")
}
