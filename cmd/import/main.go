package main

import (
	"context"
	"fmt"
	"os"

	"foodcart-service/config"
	"foodcart-service/internal/importer"
	"foodcart-service/internal/repository"
	"foodcart-service/internal/service"
	"foodcart-service/pkg/database"
	"foodcart-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func usage() {
	fmt.Println("Usage: go run cmd/import/main.go [products|restaurants] <file.json>")
	fmt.Println("  products    - import products (categories are created on demand)")
	fmt.Println("  restaurants - import restaurants")
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	if len(os.Args) < 3 {
		usage()
	}
	kind, path := os.Args[1], os.Args[2]

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	imp := importer.New(service.NewCatalogService(repos, log), service.NewRestaurantService(repos, log), log)

	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open import file", zap.String("path", path), zap.Error(err))
	}
	defer f.Close()

	ctx := context.Background()

	var res importer.Result
	switch kind {
	case "products":
		log.Info("importing products", zap.String("path", path))
		res, err = imp.ImportProducts(ctx, f)
	case "restaurants":
		log.Info("importing restaurants", zap.String("path", path))
		res, err = imp.ImportRestaurants(ctx, f)
	default:
		usage()
	}
	if err != nil {
		log.Fatal("import failed", append(res.LogFields(), zap.Error(err))...)
	}

	log.Info("import completed successfully", res.LogFields()...)
}
