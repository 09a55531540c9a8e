package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hearth/internal/database"
	"hearth/internal/logging"
	"hearth/internal/server"
)

func main() {
	seedDemo := flag.Bool("seed-demo", false, "seed the demo family and exit")
	flag.Parse()

	logger := logging.Setup(os.Getenv("HEARTH_LOG_LEVEL"))

	port := os.Getenv("HEARTH_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("HEARTH_DB_PATH")
	if dbPath == "" {
		dbPath = "hearth.db"
	}

	tokenSecret := os.Getenv("HEARTH_TOKEN_SECRET")
	if tokenSecret == "" {
		logger.Error("HEARTH_TOKEN_SECRET is required")
		os.Exit(1)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *seedDemo {
		if err := database.SeedDemo(db); err != nil {
			logger.Error("seed demo data", "error", err)
			os.Exit(1)
		}
		logger.Info("demo data seeded", "path", dbPath)
		return
	}

	srv := server.New(db, tokenSecret, logger)

	// Periodic cleanup of expired sessions and stale rate limit buckets.
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	cleanupDone := make(chan struct{})
	go func() {
		defer close(cleanupDone)
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Hearth running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	cancelCleanup()
	<-cleanupDone

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
