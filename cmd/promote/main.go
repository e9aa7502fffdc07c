package main

import (
	"context"
	"os"

	"foodcart-service/config"
	"foodcart-service/internal/geocoder"
	"foodcart-service/internal/repository"
	"foodcart-service/internal/scheduler"
	"foodcart-service/internal/service"
	"foodcart-service/pkg/database"
	"foodcart-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Одноразовый прогон перевода назначенных заказов в cooking, для cron.
func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	g := geocoder.NewYandexClient(geocoder.Config{
		BaseURL: cfg.Geocoder.URL,
		APIKey:  cfg.Geocoder.APIKey,
		Timeout: cfg.Geocoder.Timeout,
	})
	locator := service.NewRestaurantLocator(g, cfg.Geocoder.Concurrency, log)
	matcher := service.NewCandidateMatcher(g, locator, cfg.Matching.MaxRadiusMeters, log)
	orderSvc := service.NewOrderService(repository.New(db), matcher, nil, log)

	n := scheduler.NewScheduler(orderSvc, 0, log).RunOnceNow(context.Background())
	log.Info("promotion completed", zap.Int("promoted", n))
}
