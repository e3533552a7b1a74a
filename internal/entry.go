// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/saborlab/sabor/internal/api"
	"github.com/saborlab/sabor/internal/category"
	"github.com/saborlab/sabor/internal/gateway"
	"github.com/saborlab/sabor/internal/images"
	"github.com/saborlab/sabor/internal/importer"
	"github.com/saborlab/sabor/internal/models"
	"github.com/saborlab/sabor/internal/sse"
	"github.com/saborlab/sabor/internal/storage"
	"github.com/saborlab/sabor/internal/store"
	"github.com/saborlab/sabor/internal/translate"
	"github.com/saborlab/sabor/internal/view"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("store_backend", cfg.Store.Backend),
		slog.String("store_path", cfg.Store.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Durable storage backend.
	var (
		provider    storage.Provider
		fileBackend *storage.File
	)
	switch cfg.Store.Backend {
	case StoreBackendSQLite:
		db, err := storage.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("init sqlite storage: %w", err)
		}
		provider = db
	default:
		if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		fb, err := storage.NewFile(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("init file storage: %w", err)
		}
		provider = fb
		fileBackend = fb
	}
	defer provider.Close()

	// Collections: load or seed, then write back.
	st, err := store.Open(provider, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// Image directory.
	imageDir, err := images.NewDir(cfg.Images.Path)
	if err != nil {
		return fmt.Errorf("init image store: %w", err)
	}

	// External gateways; options override, config wires the real services.
	translator, imageGen, err := app.buildGenAI(ctx, cfg, imageDir)
	if err != nil {
		return err
	}
	scraper := app.scraper
	if scraper == nil {
		scraper = gateway.NewCollyScraper(cfg.Gateway.Scraper.UserAgent)
	}
	exporter := app.exporter
	if exporter == nil {
		exporter = gateway.NewHTTPExporter(cfg.Gateway.Exporter.Endpoint)
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)

	// Domain services.
	coordinator := translate.New(st, translator, logger)
	coordinator.SetNotify(func(recipeID string, _ models.Language) {
		broker.PublishRecipeEvent("translated", recipeID)
	})
	viewMgr := view.NewManager(st, coordinator, logger)
	categoryMgr := category.NewManager(st)
	imp := importer.New(st, scraper, imageGen, logger)

	st.OnChange(broker.PublishCatalogUpdated)

	// Build API service and router.
	svc := api.NewService(st, categoryMgr, imp, coordinator, viewMgr, exporter, imageGen, imageDir, broker, logger)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP))

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Serve stored recipe illustrations.
	r.Get("/images/{filename}", api.NewImageHandler(imageDir).ServeFile)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory for external edits (file backend only).
	if fileBackend != nil {
		g.Go(func() error {
			return store.Watch(gCtx, st, fileBackend, logger)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		viewMgr.CloseAll()
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// buildGenAI wires the Gemini-backed translator and image generator, honoring
// option overrides. Without an API key both gateways stay nil and the catalog
// runs untranslated.
func (a *application) buildGenAI(ctx context.Context, cfg *Config, imageDir *images.Dir) (gateway.Translator, gateway.ImageGenerator, error) {
	translator := a.translator
	imageGen := a.imageGen
	if translator != nil && imageGen != nil {
		return translator, imageGen, nil
	}
	if cfg.Gateway.GenAI.APIKey == "" {
		slog.Warn("GenAI API key not configured; translation and image generation disabled")
		return translator, imageGen, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gateway.GenAI.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init genai client: %w", err)
	}
	g := gateway.NewGenAI(client, cfg.Gateway.GenAI.TextModel, cfg.Gateway.GenAI.ImageModel, imageDir)
	if translator == nil {
		translator = g
	}
	if imageGen == nil {
		imageGen = g
	}
	return translator, imageGen, nil
}
