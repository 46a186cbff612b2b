package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/application/reconstruct"
	"github.com/nibzard/beautiful-mermaid/application/services"
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/infrastructure/config"
	"github.com/nibzard/beautiful-mermaid/infrastructure/persistence/sqlite"
	"github.com/nibzard/beautiful-mermaid/infrastructure/svg"
	"github.com/nibzard/beautiful-mermaid/infrastructure/watcher"
	"github.com/nibzard/beautiful-mermaid/interfaces/http/rest"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Classification contract and thresholds, with optional file
	// overrides
	contract := primitives.DefaultContract()
	if cfg.ContractFile != "" {
		if contract, err = primitives.LoadContract(cfg.ContractFile); err != nil {
			logger.Warn("contract override not loaded", zap.Error(err))
		}
	}
	thresholds := reconstruct.DefaultThresholds()
	if cfg.ThresholdsFile != "" {
		if thresholds, err = reconstruct.LoadThresholds(cfg.ThresholdsFile); err != nil {
			logger.Warn("threshold override not loaded", zap.Error(err))
		}
	}

	// Layout store
	store, err := sqlite.NewLayoutStore(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("Failed to open layout store", zap.Error(err))
	}
	defer store.Close()

	scenes := services.NewSceneService(contract, thresholds, svg.Codec{}, store, logger)

	// Preview mode: keep one session live over a watched file
	if cfg.WatchFile != "" {
		if err := startPreview(ctx, cfg, scenes, logger); err != nil {
			logger.Fatal("Failed to start preview session", zap.Error(err))
		}
	}

	// Create router
	router := rest.NewRouter(scenes, logger, cfg.EnableCORS)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// startPreview creates a session over the watched document and reloads
// it on every write.
func startPreview(ctx context.Context, cfg *config.Config, scenes *services.SceneService, logger *zap.Logger) error {
	data, err := os.ReadFile(cfg.WatchFile)
	if err != nil {
		return err
	}
	sess, err := scenes.CreateScene(ctx, string(data), cfg.WatchNamespace)
	if err != nil {
		return err
	}
	logger.Info("preview session ready",
		zap.String("session", sess.ID),
		zap.String("file", cfg.WatchFile),
	)

	fw := watcher.New(cfg.WatchFile, func(document string) {
		if err := sess.Reload(document); err != nil {
			logger.Warn("preview reload failed", zap.Error(err))
		}
	}, logger)
	go func() {
		if err := fw.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("document watcher stopped", zap.Error(err))
		}
	}()
	return nil
}
