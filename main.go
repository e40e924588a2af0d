package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projecthub-io/api/cache"
	"github.com/projecthub-io/api/config"
	"github.com/projecthub-io/api/controller"
	"github.com/projecthub-io/api/dao"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/middleware"
	"github.com/projecthub-io/api/router"
	"github.com/projecthub-io/api/service"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	cfg := config.GetConfig()

	// Initialize the cache backend. A connection failure downgrades to the
	// disabled backend; it never prevents startup.
	// Identity-token auth needs a TokenCredential from the platform identity
	// SDK; key-based auth needs none.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backend := cache.New(ctx, cfg.Cache, nil)
	defer func() {
		if err := backend.Disconnect(); err != nil {
			logger.Error("Error disconnecting cache backend", zap.Error(err))
		}
	}()
	accessCache := cache.NewAccessCache(backend, cfg.Cache)

	// Initialize the store
	store := dao.NewMemoryStore()

	// Initialize services and controllers
	services := service.InitializeServices(store, store, accessCache)
	controllers := controller.InitializeControllers(services, accessCache)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	verifier := middleware.NewHMACVerifier(cfg.Auth.JWTSecret)
	engine := router.SetupRouter(controllers, verifier)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
