package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcq-generator/internal/config"
	"mcq-generator/internal/handler"
	"mcq-generator/internal/infra/tesseract"

	"github.com/joho/godotenv"
)

const uploadBurst = 2

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		log.Printf("Failed to initialize: %v", err)
		os.Exit(1)
	}
	cfg := container.Config
	container.Logger.Info("OCR engine", "tesseract", tesseract.Version(), "language", cfg.GetOCRLanguage(), "workers", cfg.GetOCRWorkers())

	// Handlers
	mcqHandler := handler.NewMCQHandler(
		container.MCQService,
		container.Logger,
		cfg.GetMaxFileSize(),
		cfg.GetProcessTimeout(),
	)
	sessionMiddleware := handler.NewSessionMiddleware(
		container.AuthService,
		container.Logger,
	)
	uploadLimiter := handler.NewUploadLimiter(cfg.GetUploadRatePerMinute(), uploadBurst)

	// Router
	router := handler.NewRouter(
		mcqHandler,
		sessionMiddleware.Middleware,
		uploadLimiter.Middleware,
		cfg.GetCORSAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	container.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
