// Package api exposes the analysis core and the scanner over HTTP and
// websocket.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pattern-analyzer/internal/binance"
	"pattern-analyzer/internal/cache"
	"pattern-analyzer/internal/database"
	"pattern-analyzer/internal/events"
	"pattern-analyzer/internal/scanner"
)

// Config holds HTTP server settings.
type Config struct {
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	ProductionMode bool     `json:"production_mode"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// Server is the HTTP API server.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     Config
	logger     zerolog.Logger

	source  binance.CandleSource
	cache   *cache.AnalysisCache
	repo    *database.Repository
	scanner *scanner.Scanner
	hub     *WSHub
}

// NewServer wires the router. The repository may be nil when persistence is
// disabled; history endpoints then return 503.
func NewServer(
	config Config,
	source binance.CandleSource,
	analysisCache *cache.AnalysisCache,
	repo *database.Repository,
	sc *scanner.Scanner,
	bus *events.Bus,
	logger zerolog.Logger,
) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		router:  router,
		config:  config,
		logger:  logger.With().Str("component", "api").Logger(),
		source:  source,
		cache:   analysisCache,
		repo:    repo,
		scanner: sc,
		hub:     NewWSHub(bus, logger),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/analysis/:symbol", s.handleSymbolAnalysis)
		api.GET("/scan", s.handleScan)
		api.GET("/signals/:symbol/history", s.handleSignalHistory)
		api.GET("/strategies", s.handleStrategies)
	}
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("HTTP server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "healthy"}

	if s.repo != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.repo.HealthCheck(ctx); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "healthy"
	}

	resp["ws_clients"] = s.hub.ClientCount()
	c.JSON(http.StatusOK, resp)
}
