package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart-service/config"
	_ "foodcart-service/docs"
	"foodcart-service/internal/cache"
	"foodcart-service/internal/geocoder"
	"foodcart-service/internal/producer"
	"foodcart-service/internal/repository"
	"foodcart-service/internal/router"
	"foodcart-service/internal/scheduler"
	"foodcart-service/internal/service"
	"foodcart-service/pkg/database"
	"foodcart-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title FoodCart API
// @Version 1.0
// @Description API для управления заказами доставки еды
// @BasePath /
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

	repos := repository.New(db)

	var g geocoder.Geocoder = geocoder.NewYandexClient(geocoder.Config{
		BaseURL: cfg.Geocoder.URL,
		APIKey:  cfg.Geocoder.APIKey,
		Timeout: cfg.Geocoder.Timeout,
	})

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		g = geocoder.NewCachedGeocoder(g, redisClient, cfg.Redis.TTL, log)
		log.Info("Redis geocode cache enabled")
	} else {
		log.Info("Redis geocode cache disabled")
	}

	// nil-интерфейс, а не typed nil: сервис проверяет events != nil
	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer p.Close()
		events = p
		log.Info("Kafka order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))
	} else {
		log.Info("Kafka order events disabled")
	}

	locator := service.NewRestaurantLocator(g, cfg.Geocoder.Concurrency, log)
	matcher := service.NewCandidateMatcher(g, locator, cfg.Matching.MaxRadiusMeters, log)

	orderSvc := service.NewOrderService(repos, matcher, events, log)
	catalogSvc := service.NewCatalogService(repos, log)
	restaurantSvc := service.NewRestaurantService(repos, log)

	promoter := scheduler.NewScheduler(orderSvc, cfg.StatusPromoteInterval, log)
	promoteCtx, promoteCancel := context.WithCancel(context.Background())
	defer promoteCancel()
	promoter.Start(promoteCtx)

	r := router.Router(router.Services{
		Orders:      orderSvc,
		Catalog:     catalogSvc,
		Restaurants: restaurantSvc,
	}, cfg.CORSOrigins, log)

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	// Останавливаем планировщик
	promoter.Stop()
	promoteCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
		return
	}
	log.Info("HTTP server stopped gracefully")
}
