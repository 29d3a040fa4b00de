// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"craftmarket_backend/internal/auth"
	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/favorite"
	"craftmarket_backend/internal/jobs"
	"craftmarket_backend/internal/listing"
	"craftmarket_backend/internal/middleware"
	"craftmarket_backend/internal/stats"
	"craftmarket_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler     *auth.Handler
	userHandler     *user.Handler
	listingHandler  *listing.Handler
	favoriteHandler *favorite.Handler
	statsHandler    *stats.Handler

	// Jobs
	favoriteSweepJob *jobs.FavoriteSweepJob

	// Middleware instances
	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService auth.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	listingHandler *listing.Handler,
	favoriteHandler *favorite.Handler,
	statsHandler *stats.Handler,
	favoriteSweepJob *jobs.FavoriteSweepJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "CraftMarket API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW)
	listingHandler.RegisterRoutes(v1, authMW)
	favoriteHandler.RegisterRoutes(v1, authMW)

	// Moderation surface. Every route in this group requires an
	// authenticated admin.
	adminGroup := v1.Group("/admin", authMW, adminRoleMW)
	listingHandler.RegisterAdminRoutes(adminGroup)
	statsHandler.RegisterAdminRoutes(adminGroup)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		authHandler:      authHandler,
		userHandler:      userHandler,
		listingHandler:   listingHandler,
		favoriteHandler:  favoriteHandler,
		statsHandler:     statsHandler,
		favoriteSweepJob: favoriteSweepJob,
		authMW:           authMW,
		adminRoleMW:      adminRoleMW,
	}, nil
}

func (s *Server) Start() error {
	if s.favoriteSweepJob != nil {
		if err := s.favoriteSweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start favorite sweep job", zap.Error(err))
		}
	} else {
		s.logger.Info("Favorite sweep job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.favoriteSweepJob != nil {
		s.favoriteSweepJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
