package main

import (
	"context"
	"log"
	"time"

	"serenityspa/internal/config"
	"serenityspa/internal/database"
	"serenityspa/internal/storage"
)

// Removes session slots that have not been touched within the session
// TTL. Meant to run from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	kv := storage.NewGormKV(db)
	if err := kv.Migrate(); err != nil {
		log.Fatal("migration failed:", err)
	}

	cutoff := time.Now().Add(-cfg.SessionTTL)
	n, err := kv.DeleteStale(context.Background(), "session:", cutoff)
	if err != nil {
		log.Fatal("cleanup failed:", err)
	}
	log.Printf("removed %d stale sessions (older than %s)", n, cfg.SessionTTL)
}
