package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"choreboard/internal/database"
	"choreboard/internal/logging"
	"choreboard/internal/model"
	"choreboard/internal/schedule"
	"choreboard/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("CHOREBOARD_LOG_LEVEL"))

	port := os.Getenv("CHOREBOARD_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CHOREBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "choreboard.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, logger)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Maintenance jobs
	sched := schedule.New(time.Local, logger.With("component", "schedule"))
	err = sched.Every(time.Hour, "session_cleanup", func() {
		if n, err := srv.SessionStore().DeleteExpired(); err != nil {
			slog.Error("cleanup expired sessions", "error", err)
		} else if n > 0 {
			slog.Info("cleaned up expired sessions", "count", n)
		}
		srv.RateLimiter().Cleanup()
	})
	if err != nil {
		slog.Error("schedule session cleanup", "error", err)
		os.Exit(1)
	}
	err = sched.Daily("00:05", "completion_digest", func() {
		yesterday := model.Day(time.Now().AddDate(0, 0, -1))
		digest, err := srv.StatusStore().Digest(yesterday)
		if err != nil {
			slog.Error("completion digest", "error", err)
			return
		}
		for _, d := range digest {
			slog.Info("completion digest", "date", yesterday, "user", d.Username, "completed", d.Completed, "points", d.Points)
		}
	})
	if err != nil {
		slog.Error("schedule completion digest", "error", err)
		os.Exit(1)
	}
	sched.Start()

	go func() {
		slog.Info("choreboard starting", "addr", ":"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	sched.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
