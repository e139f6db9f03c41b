package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pubmed-research-api/internal/config"
	"pubmed-research-api/internal/handler"
	"pubmed-research-api/internal/logger"
	"pubmed-research-api/internal/middleware"
	"pubmed-research-api/internal/pubmed"
	"pubmed-research-api/internal/service"
)

// main is the single entry-point for the REST API.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer log.Sync()

	log.Info("configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("base_url", cfg.BaseURL),
		zap.String("tool", cfg.ToolName),
		zap.Bool("api_key_set", cfg.APIKey != ""),
		zap.Duration("upstream_timeout", cfg.UpstreamTimeout),
	)

	// Upstream client and gateway service.
	client := pubmed.NewClient(pubmed.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Email:   cfg.Email,
		Tool:    cfg.ToolName,
		Timeout: cfg.UpstreamTimeout,
	})
	researchSvc := service.NewResearchService(client, log)

	app := fiber.New(fiber.Config{
		AppName:      handler.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: handler.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))

	handler.RegisterRoutes(app, researchSvc)

	// Serve until interrupted, then drain within the shutdown bound.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}
