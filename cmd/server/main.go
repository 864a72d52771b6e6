package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "snipurl-platform/docs"
	"snipurl-platform/internal/alias"
	"snipurl-platform/internal/config"
	"snipurl-platform/internal/geoip"
	"snipurl-platform/internal/handler"
	"snipurl-platform/internal/middleware"
	"snipurl-platform/internal/service"
	"snipurl-platform/internal/store"
	"snipurl-platform/pkg/database"
	"snipurl-platform/pkg/logger"
	"snipurl-platform/pkg/redis"
	"snipurl-platform/pkg/token"
)

// @title SnipURL API
// @version 1.0
// @description URL shortening service with click analytics
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("loading config failed: %v", err))
	}

	logger.Init(cfg.App.Mode)
	defer func() {
		_ = logger.Logger.Sync()
	}()
	log := zap.S()

	production := cfg.App.Mode == "production"

	db, err := openDatabase(cfg, production)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	log.Info("✅ database ready")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			log.Warnf("cache unavailable, continuing without it: %v", err)
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Errorf("closing redis failed: %v", err)
				}
			}()
			log.Info("✅ cache connected")
		}
	}

	linkStore := store.NewLinkStore(db)
	clickStore := store.NewClickStore(db)

	resolver := geoip.NewHTTPResolver(
		cfg.Geo.Endpoint,
		time.Duration(cfg.Geo.TimeoutSeconds)*time.Second,
		rdb,
		time.Duration(cfg.Geo.CacheTTLHours)*time.Hour,
		log,
	)

	recorder := service.NewClickRecorder(clickStore, resolver, log)
	recorder.Start()
	defer recorder.Stop()
	log.Info("✅ click recorder started")

	linkService := service.NewLinkService(linkStore, alias.NewGenerator(linkStore), production)
	redirectService := service.NewRedirectService(linkStore, recorder, rdb, log)
	analyticsService := service.NewAnalyticsService(linkStore, clickStore)

	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(&cfg.RateLimit))

	linkHandler := handler.NewLinkHandler(linkService, redirectService, analyticsService, cfg.App.BaseURL)
	registerRoutes(router, linkHandler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	log.Infof("🚀 %s listening on :%d", cfg.App.Name, cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server exited: %v", err)
	}
}

func openDatabase(cfg *config.Config, production bool) (*gorm.DB, error) {
	if cfg.Database.Driver == "mysql" || production {
		return database.OpenMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	}
	return database.OpenSQLite(cfg.Database.DSN)
}

func registerRoutes(router *gin.Engine, linkHandler *handler.LinkHandler, cfg *config.Config) {
	router.GET("/health", linkHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/redirect/:alias", linkHandler.ResolveAlias)

	// Mutating and dashboard routes sit behind the auth boundary when a token
	// secret is configured; tokens themselves come from the auth service.
	protected := api.Group("")
	if cfg.Auth.Secret != "" {
		manager := token.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
		protected.Use(middleware.Auth(manager))
	}
	{
		protected.POST("/links", linkHandler.CreateLink)
		protected.GET("/links", linkHandler.ListLinks)
		protected.PUT("/links/:id", linkHandler.UpdateLink)
		protected.DELETE("/links/:id", linkHandler.DeleteLink)
		protected.GET("/analytics", linkHandler.Analytics)
		protected.GET("/stats", linkHandler.Stats)
	}

	// Registered last; gin still routes the static paths above first.
	router.GET("/:alias", linkHandler.Redirect)
}
