package config

import "os"

// Config carries everything the basket service reads from the
// environment. It is built once in main and passed by reference; handlers
// never reach for env vars themselves.
type Config struct {
	Port            string
	Env             string
	BasketTable     string
	EventBusName    string
	EventSource     string
	EventDetailType string
	MetricNamespace string
	MetricsEnabled  bool
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8081"),
		Env:             getEnv("APP_ENV", "development"),
		BasketTable:     getEnv("DYNAMODB_TABLE_NAME", "basket"),
		EventBusName:    getEnv("EVENT_BUSNAME", "SwnEventBus"),
		EventSource:     getEnv("EVENT_SOURCE", "com.swn.basket.checkoutbasket"),
		EventDetailType: getEnv("EVENT_DETAILTYPE", "CheckoutBasket"),
		MetricNamespace: getEnv("CLOUDWATCH_NAMESPACE", "SwnShop"),
		MetricsEnabled:  os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
