package main

import (
	"context"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fundhub/crowdfunding/internal/campaigns"
	"github.com/fundhub/crowdfunding/internal/fraud"
	"github.com/fundhub/crowdfunding/internal/media"
	"github.com/fundhub/crowdfunding/pkg/common"
	"github.com/fundhub/crowdfunding/pkg/config"
	"github.com/fundhub/crowdfunding/pkg/database"
	"github.com/fundhub/crowdfunding/pkg/health"
	"github.com/fundhub/crowdfunding/pkg/logger"
	"github.com/fundhub/crowdfunding/pkg/middleware"
	"github.com/fundhub/crowdfunding/pkg/redis"
	"github.com/fundhub/crowdfunding/pkg/storage"
)

func main() {
	cfg, err := config.Load("fraud-api")
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Connect to PostgreSQL
	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to PostgreSQL database")

	// Redis backs the analysis result cache. The service degrades to
	// uncached analyses when it is unavailable.
	var resultCache *fraud.ResultCache
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, fraud results will not be cached", zap.Error(err))
	} else {
		defer redisClient.Close()
		resultCache = fraud.NewResultCache(redisClient, cfg.Fraud.ResultCacheTTL)
		logger.Info("Connected to Redis")
	}

	// Object storage backs bucket-internal image keys.
	var mediaStore storage.Storage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			BaseURL:   cfg.Storage.BaseURL,
		})
		if err != nil {
			logger.Warn("Object storage unavailable, only image URLs will be analyzed", zap.Error(err))
		} else {
			mediaStore = s3Store
		}
	}

	fetcher := media.NewFetcher(mediaStore, cfg.Fraud.MediaFetchTimeout, cfg.Fraud.MaxImageBytes)
	imageAnalyzer := fraud.NewImageAnalyzer(fetcher, cfg.Fraud.ImageWorkers, cfg.Fraud.MediaFetchTimeout)

	campaignRepo := campaigns.NewRepository(db)
	fraudService := fraud.NewService(campaignRepo, imageAnalyzer,
		fraud.WithStoreTimeout(cfg.Fraud.StoreQueryTimeout),
	)
	fraudHandler := fraud.NewHandler(fraudService, campaignRepo, resultCache)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	checks := map[string]func() error{
		"postgres": health.DatabaseChecker(db),
	}
	if redisClient != nil {
		checks["redis"] = health.RedisChecker(redisClient)
	}
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, "1.0.0", checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := router.Group("/api/v1/admin",
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.RequireRole("admin", "reviewer"),
	)
	fraudHandler.RegisterRoutes(admin)

	logger.Info("Starting fraud analysis API",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Environment),
	)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
