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
	"github.com/swnshop/microservices/services/order-service/config"
	"github.com/swnshop/microservices/services/order-service/controllers"
	"github.com/swnshop/microservices/services/order-service/repository"
	"github.com/swnshop/microservices/services/order-service/routes"
	"github.com/swnshop/microservices/services/order-service/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := awspkg.LoadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}

	ddb := dynamodb.NewFromConfig(awsCfg)
	repo := repository.NewOrderRepository(ddb, cfg.OrderTable)
	metrics := awspkg.NewMetricsClient(awsCfg, cfg.MetricNamespace, cfg.MetricsEnabled)

	// Checkout events arrive on an SQS queue fed by the event bus rule.
	queueURL, err := awspkg.GetQueueURL(ctx, awsCfg, cfg.CheckoutQueue)
	if err != nil {
		log.Fatalf("failed to resolve checkout queue: %v", err)
	}
	consumer := services.NewCheckoutConsumer(repo, cfg.EventDetailType, metrics)
	sqsConsumer := awspkg.NewSQSConsumer(awsCfg, queueURL)
	go func() {
		if err := sqsConsumer.StartPolling(ctx, consumer.HandleMessage); err != nil && err != context.Canceled {
			logger.Log.Error("checkout queue polling stopped", zap.Error(err))
		}
	}()

	controller := controllers.NewOrderController(repo)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	routes.RegisterOrderRoutes(r, controller)

	logger.Log.Info("order service listening",
		zap.String("port", cfg.Port),
		zap.String("table", cfg.OrderTable),
		zap.String("queue", cfg.CheckoutQueue))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
