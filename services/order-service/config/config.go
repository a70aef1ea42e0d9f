package config

import "os"

// Config carries everything the order service reads from the environment.
// Built once in main and passed by reference.
type Config struct {
	Port            string
	Env             string
	OrderTable      string
	CheckoutQueue   string
	EventDetailType string
	MetricNamespace string
	MetricsEnabled  bool
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8082"),
		Env:             getEnv("APP_ENV", "development"),
		OrderTable:      getEnv("DYNAMODB_TABLE_NAME", "order"),
		CheckoutQueue:   getEnv("CHECKOUT_QUEUE_NAME", "checkout-basket-queue"),
		EventDetailType: getEnv("EVENT_DETAILTYPE", "CheckoutBasket"),
		MetricNamespace: getEnv("CLOUDWATCH_NAMESPACE", "SwnShop"),
		MetricsEnabled:  os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
