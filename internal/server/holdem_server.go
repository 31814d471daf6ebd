package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"

	"github.com/pokertown/holdem/internal/agent"
	"github.com/pokertown/holdem/internal/config"
	"github.com/pokertown/holdem/internal/database"
	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/handlers"
	custommiddleware "github.com/pokertown/holdem/internal/middleware"
	"github.com/pokertown/holdem/internal/services"
	"github.com/pokertown/holdem/internal/table"
	ws "github.com/pokertown/holdem/server"
)

type HoldemServer struct {
	config         *config.Config
	db             *database.DB
	rdb            *redis.Client
	lobbyService   *services.LobbyService
	registry       *table.Registry
	gateway        *agent.Gateway
	hub            *ws.Hub
	newTable       handlers.TableFactory
	apiRateLimiter *custommiddleware.RateLimiter
	server         *http.Server
}

func NewHoldemServer() (*HoldemServer, error) {
	// Load configuration
	cfg := config.Load()

	// Setup database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Setup Redis for cross-instance event fanout. The server still
	// runs without it; events then only reach local connections.
	rdb, err := newRedisClient(cfg)
	if err != nil {
		slog.Warn("redis unavailable, websocket fanout is process-local", "error", err)
		rdb = nil
	}

	// Setup the action provider gateway for automated seats
	var provider agent.Provider
	if cfg.AgentURL != "" {
		provider = agent.NewRemoteProvider(cfg.AgentURL, cfg.AgentTimeout)
	}
	gateway := agent.NewGateway(agent.GatewayConfig{
		Provider:          provider,
		Timeout:           cfg.AgentTimeout,
		RequestsPerMinute: cfg.AgentRequestsPerMinute,
		Burst:             cfg.AgentBurst,
		ThinkDelay:        cfg.AgentThinkDelay,
	})

	s := &HoldemServer{
		config:         cfg,
		db:             db,
		rdb:            rdb,
		lobbyService:   services.NewLobbyService(db),
		registry:       table.NewRegistry(),
		gateway:        gateway,
		apiRateLimiter: custommiddleware.NewAPIRateLimiter(),
	}

	s.newTable = func(g *game.Game) *table.Table {
		return table.New(g, s.gateway, s.hub, s.lobbyService,
			table.WithCooldown(cfg.ShowdownCooldown))
	}
	s.hub = ws.NewHub(rdb, func(ctx context.Context, lobbyID string) (*table.Table, error) {
		return handlers.ResolveTable(ctx, s.lobbyService, s.registry, s.newTable, lobbyID)
	})

	return s, nil
}

func (s *HoldemServer) Start() error {
	router := s.setupRouter()

	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Starting holdem server", "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	return s.Shutdown()
}

func (s *HoldemServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Cancel pending next-hand timers
	s.registry.Close()

	// Close database connection
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}

	s.apiRateLimiter.Close()

	slog.Info("Server shutdown complete")
	return nil
}

func (s *HoldemServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.apiRateLimiter.RateLimit)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint
	r.Get("/ws/{lobbyID}/{playerID}", s.serveWebSocket)

	// API routes
	r.Route("/api", func(r chi.Router) {
		lobbyHandler := handlers.NewLobbyHandler(s.lobbyService, s.registry, s.newTable)
		r.Mount("/lobby", lobbyHandler.Routes())

		gameHandler := handlers.NewGameHandler(s.lobbyService, s.registry, s.newTable)
		r.Mount("/game", gameHandler.Routes())
	})

	return r
}

func (s *HoldemServer) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	lobbyID := chi.URLParam(r, "lobbyID")
	playerID := chi.URLParam(r, "playerID")
	if lobbyID == "" || playerID == "" {
		http.Error(w, "lobby and player are required", http.StatusBadRequest)
		return
	}
	ws.ServeWs(s.hub, w, r, lobbyID, playerID)
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
