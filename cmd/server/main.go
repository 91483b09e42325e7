package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/poslite/backend/internal/application/identity"
	"github.com/poslite/backend/internal/infrastructure/auth"
	"github.com/poslite/backend/internal/infrastructure/config"
	"github.com/poslite/backend/internal/infrastructure/docstore"
	"github.com/poslite/backend/internal/infrastructure/logger"
	"github.com/poslite/backend/internal/infrastructure/persistence"
	"github.com/poslite/backend/internal/interfaces/http/handler"
	"github.com/poslite/backend/internal/interfaces/http/middleware"
	"github.com/poslite/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	store, err := docstore.NewMongoStore(connectCtx, cfg.Mongo.URI(), cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("Error closing document store", zap.Error(err))
		}
	}()
	log.Info("Document store connected",
		zap.String("database", cfg.Mongo.Database),
	)

	// Token blacklist: Redis when configured, in-process otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token blacklist is in-process only; revocations do not survive restarts")
	}

	// Repositories
	userRepo := persistence.NewDocUserRepository(store)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	outletHandler := handler.NewOutletHandler(store)
	categoryHandler := handler.NewCategoryHandler(store)
	productHandler := handler.NewProductHandler(store)
	customerHandler := handler.NewCustomerHandler(store)
	systemHandler := handler.NewSystemHandler(store)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithLegacyRoutes(cfg.HTTP.LegacyRoutes),
	)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes (register/login/refresh are public via JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)

	// Outlet routes
	outletRoutes := router.NewDomainGroup("outlets", "/outlets")
	outletRoutes.GET("", outletHandler.List)
	outletRoutes.GET("/:id", outletHandler.GetByID)
	outletRoutes.POST("", outletHandler.Create)
	outletRoutes.PUT("/:id", outletHandler.Update)
	outletRoutes.DELETE("/:id", outletHandler.Delete)

	// Category routes
	categoryRoutes := router.NewDomainGroup("categories", "/categories")
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.GET("/:id", categoryHandler.GetByID)
	categoryRoutes.POST("", categoryHandler.Create)
	categoryRoutes.PUT("/:id", categoryHandler.Update)
	categoryRoutes.DELETE("/:id", categoryHandler.Delete)

	// Product routes
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.POST("", productHandler.Create)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Delete)

	// Customer routes
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)

	r.Register(authRoutes).
		Register(outletRoutes).
		Register(categoryRoutes).
		Register(productRoutes).
		Register(customerRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
