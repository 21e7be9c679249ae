package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/semsolhan1/todo-api202306/internal/cache"
	"github.com/semsolhan1/todo-api202306/internal/config"
	"github.com/semsolhan1/todo-api202306/internal/controller"
	"github.com/semsolhan1/todo-api202306/internal/database"
	"github.com/semsolhan1/todo-api202306/internal/queue"
	"github.com/semsolhan1/todo-api202306/internal/repository"
	"github.com/semsolhan1/todo-api202306/internal/routes"
	"github.com/semsolhan1/todo-api202306/internal/service"
	"github.com/semsolhan1/todo-api202306/internal/worker"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Get()

	db := database.InitDB(ctx)
	if db == nil {
		logger.Error(ctx, "Database not available; exiting")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	// Pre-warm Redis (optional; cache works lazily)
	cache.Client(ctx)

	// Pre-warm Kafka producer and ensure topic exists
	queue.Producer(ctx)
	queue.EnsureTopic(ctx)

	// Cache invalidation consumer (no-op without brokers)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Run(workerCtx)

	todoRepo := repository.NewPostgresTodoRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	todoSvc := service.NewTodoService(todoRepo, userRepo, cache.NewListCache(), queue.NewEventPublisher())
	userSvc := service.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.UploadPath)

	router := routes.Router(
		controller.NewTodoController(todoSvc),
		controller.NewAuthController(userSvc),
		cfg.JWTSecret,
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	stopWorker()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}
