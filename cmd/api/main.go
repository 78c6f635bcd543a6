package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"talkspot/api/internal/app"
	"talkspot/api/internal/config"
	"talkspot/api/internal/email"
	"talkspot/api/internal/search"
	"talkspot/api/internal/session"
	"talkspot/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// The engine runs entirely in memory. When a database URL is set the
	// snapshot is loaded from Postgres, otherwise the built-in seed is
	// used.
	snapshot := store.Seed()
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()
		loaded, err := store.LoadSnapshot(ctx, db)
		if err != nil {
			log.Fatalf("snapshot load failed: %v", err)
		}
		snapshot = loaded
		log.Printf("Loaded snapshot from Postgres: %d users, %d posts, %d events, %d messages",
			len(snapshot.Users), len(snapshot.Posts), len(snapshot.Events), len(snapshot.Messages))
	} else {
		log.Printf("No DATABASE_URL set, using built-in seed data")
	}
	dataStore := store.NewMemory(snapshot)

	memorySearch := search.NewMemory(dataStore)
	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, memorySearch)

	var sessions session.Store
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis for refresh token storage")
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	} else {
		log.Printf("Using in-memory refresh token storage")
		sessions = session.NewMemoryStore()
	}

	mailer := email.NewService(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	})

	service, err := app.New(cfg, dataStore, searchService, sessions, mailer)
	if err != nil {
		log.Fatalf("service init failed: %v", err)
	}
	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (will retry on next restart): %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("TalkSpot API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
