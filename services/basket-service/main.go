package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	awspkg "github.com/swnshop/microservices/pkg/aws"

	"github.com/swnshop/microservices/common/logger"
	"github.com/swnshop/microservices/services/basket-service/config"
	"github.com/swnshop/microservices/services/basket-service/controllers"
	"github.com/swnshop/microservices/services/basket-service/repository"
	"github.com/swnshop/microservices/services/basket-service/routes"
	"github.com/swnshop/microservices/services/basket-service/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx := context.Background()
	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}

	ddb := dynamodb.NewFromConfig(awsCfg)
	repo := repository.NewBasketRepository(ddb, cfg.BasketTable)

	bus := awspkg.NewEventBridgeClient(awsCfg, cfg.EventBusName, cfg.EventSource)
	metrics := awspkg.NewMetricsClient(awsCfg, cfg.MetricNamespace, cfg.MetricsEnabled)
	checkout := services.NewCheckoutService(repo, bus, cfg.EventDetailType, metrics)

	controller := controllers.NewBasketController(repo, checkout)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	routes.RegisterBasketRoutes(r, controller)

	logger.Log.Info("basket service listening",
		zap.String("port", cfg.Port),
		zap.String("table", cfg.BasketTable),
		zap.String("event_bus", cfg.EventBusName))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
