package router

import (
	"foodcart-service/internal/handlers"
	"foodcart-service/internal/service"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Orders      service.OrderService
	Catalog     service.CatalogService
	Restaurants service.RestaurantService
}

func Router(svc Services, corsOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	// "*" несовместим с AllowCredentials
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = corsOrigins
		cfg.AllowCredentials = true
	}
	r.Use(cors.New(cfg))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, svc.Restaurants, log)

	api := r.Group("/api")
	{
		api.POST("/order", orderHandler.CreateOrder)
		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PATCH("/orders/:id/address", orderHandler.UpdateAddress)
		api.GET("/orders/:id/candidates", orderHandler.ListCandidates)
		api.POST("/orders/:id/candidates/recompute", orderHandler.RecomputeCandidates)
		api.PUT("/orders/:id/restaurant", orderHandler.AssignRestaurant)
		api.POST("/orders/:id/status", orderHandler.AdvanceStatus)

		api.GET("/products", catalogHandler.ListProducts)
		api.POST("/products", catalogHandler.CreateProduct)
		api.PATCH("/products/:id", catalogHandler.UpdateProductPrice)
		api.POST("/categories", catalogHandler.CreateCategory)

		api.GET("/restaurants", catalogHandler.ListRestaurants)
		api.POST("/restaurants", catalogHandler.CreateRestaurant)
		api.PATCH("/restaurants/:id", catalogHandler.UpdateRestaurant)
		api.GET("/restaurants/:id/menu", catalogHandler.ListMenu)
		api.PUT("/restaurants/:id/menu/:product_id", catalogHandler.SetMenuAvailability)
	}

	return r
}
