package main

import (
	"log"
	"net/http"

	"github.com/josetomecore/P6-Quiz/internal/config"
	"github.com/josetomecore/P6-Quiz/internal/database"
	"github.com/josetomecore/P6-Quiz/internal/services"
	"github.com/josetomecore/P6-Quiz/internal/session"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	if _, err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	store, err := session.NewStore(cfg.SessionStore, []byte(cfg.SessionSecret))
	if err != nil {
		log.Fatalf("failed to create session store: %v", err)
	}

	handler := newServer(cfg, db, store)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
