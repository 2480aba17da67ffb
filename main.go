package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskstore/config"
	"taskstore/database"
	"taskstore/handlers"
	"taskstore/middleware"
	"taskstore/store"
)

func main() {
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(conf)
	defer logger.Sync()

	db, err := database.InitDB(conf.DBPath)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	logger.Infow("database ready", "path", conf.DBPath)

	taskStore := store.NewTaskStore(db)
	h := handlers.NewHandlers(taskStore, logger)

	var handler http.Handler = handlers.NewRouter(h)
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.Recover(logger)(handler)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: handler,
	}

	go func() {
		logger.Infow("server listening", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}

	logger.Info("server stopped")
}
