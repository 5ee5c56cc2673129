package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"seelikeme/internal/api"
	"seelikeme/internal/config"
	"seelikeme/internal/detect"
	"seelikeme/internal/model"
	"seelikeme/internal/store"
	"seelikeme/internal/websocket"
	"seelikeme/pkg/interfaces"
)

// Application coordinates all system components.
// ARCHITECTURAL DISCOVERY: Models and registry are explicit objects
// constructed once at process start and passed by reference to request
// handling code - no ambient globals, teardown happens in Stop
type Application struct {
	config     *config.Config
	store      interfaces.Store
	models     *model.Bundle
	detector   *detect.Detector
	registry   *websocket.Registry
	apiServer  *api.Server
	httpServer *http.Server
}

// NewApplication creates a new application instance with all components initialized.
// Component initialization follows strict dependency order:
// Store → Models → Detector → Registry → WebSocket handler → API → HTTP
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Validate configuration before component initialization
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// STEP 1: Select the persistence collaborator by configuration
	var sessionStore interfaces.Store
	if cfg.Store.Enabled {
		sqlStore, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store: %w", err)
		}
		sessionStore = sqlStore
		log.Printf("Session store enabled: path=%s", cfg.Store.Path)
	} else {
		sessionStore = store.NewNoop()
		log.Println("Session store disabled - running without caching")
	}

	// STEP 2: Load model artifacts once at boot
	// FUNCTIONAL DISCOVERY: A missing artifact degrades that domain to its
	// fallback outcome instead of aborting startup
	models := model.LoadBundle(cfg.Models.Dir, model.Cutoffs{
		Dyslexia: cfg.Models.DyslexiaHighConfidence,
		ADHD:     cfg.Models.ADHDHighConfidence,
		Autism:   cfg.Models.AutismHighConfidence,
	})
	if !models.AllLoaded() {
		log.Printf("Running with partial model availability: %v", models.LoadedDomains())
	}

	// STEP 3: Detection orchestrator over a bounded worker pool
	detector := detect.NewDetector(models, cfg.Models.Workers)

	// STEP 4: Session registry for live-channel tracking
	registry := websocket.NewRegistry()

	// STEP 5: WebSocket handler for the live channel
	wsHandler := websocket.NewHandler(registry, sessionStore, cfg.WebSocket.WriteTimeout, cfg.WebSocket.BufferSize)

	// STEP 6: API server with all business dependencies
	apiServer := api.NewServer(detector, sessionStore, registry)

	// STEP 7: HTTP server exposing API and live-channel endpoints
	mux := http.NewServeMux()
	mux.Handle("/api/", apiServer)
	mux.Handle("/health", apiServer)
	mux.HandleFunc("/ws/", wsHandler.HandleWebSocket)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &Application{
		config:     cfg,
		store:      sessionStore,
		models:     models,
		detector:   detector,
		registry:   registry,
		apiServer:  apiServer,
		httpServer: httpServer,
	}, nil
}

// Start begins application execution.
// FUNCTIONAL DISCOVERY: Startup verifies the server is accepting connections
// before returning so callers can rely on readiness
func (app *Application) Start(ctx context.Context) error {
	log.Printf("Starting See Like Me backend on %s", app.httpServer.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-time.After(100 * time.Millisecond):
		log.Printf("See Like Me backend started successfully")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts down the application.
// Reverse dependency order: HTTP → live channels → store
func (app *Application) Stop(ctx context.Context) error {
	log.Printf("Shutting down See Like Me backend")

	// STEP 1: Stop accepting new connections
	if err := app.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// STEP 2: Drop all live channels
	app.registry.CloseAll()

	// STEP 3: Close the persistence collaborator
	if err := app.store.Close(); err != nil {
		log.Printf("Store shutdown error: %v", err)
	}

	log.Printf("See Like Me backend shutdown complete")
	return nil
}

// GetAddr returns the server address for external connections
func (app *Application) GetAddr() string {
	return app.httpServer.Addr
}
