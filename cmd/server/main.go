package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"stockwatch-system/config"
	"stockwatch-system/internal/alerts"
	"stockwatch-system/internal/alerts/handler"
	"stockwatch-system/internal/alerts/store"
	"stockwatch-system/internal/database"
	"stockwatch-system/internal/gateway/middleware"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	redisClient := config.NewRedisClient(cfg.Redis)

	gateway := store.NewCachedGateway(store.NewGormGateway(db), redisClient)
	service := alerts.NewService(gateway)
	alertsHandler := handler.NewAlertsHTTPHandler(service, cfg.Server.RequestTimeout)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.Server.RateLimit))

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth([]byte(cfg.Auth.JWTSecret)))
	{
		companies := api.Group("/companies/:company_id")
		{
			companies.GET("/alerts/low-stock", alertsHandler.GetLowStockAlerts)
			companies.GET("/alerts/low-stock/summary", alertsHandler.GetLowStockSummary)
		}
	}

	r.GET("/health", healthCheckHandler(db, redisClient))

	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func healthCheckHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		httpStatus := http.StatusOK
		unavailableServices := []string{}

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			unavailableServices = append(unavailableServices, "database")
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			unavailableServices = append(unavailableServices, "redis")
		}

		if len(unavailableServices) > 0 {
			status = "degraded"
			httpStatus = http.StatusPartialContent
		}

		c.JSON(httpStatus, gin.H{
			"status":               status,
			"message":              "Server is running",
			"unavailable_services": unavailableServices,
			"timestamp":            time.Now(),
		})
	}
}
