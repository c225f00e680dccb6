package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"petstore/pkg/logger"
	"petstore/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Store Service с использованием Gin
func SetupRoutes(
	itemHandler *ItemHandler,
	cartHandler *CartHandler,
	purchaseHandler *PurchaseHandler,
	clientHandler *ClientHandler,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("store-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "store-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Items endpoints
	items := router.Group("/items")
	{
		items.GET("", itemHandler.ListItems)              // Список товаров (пагинация, фильтр, сортировка)
		items.GET("/:id", itemHandler.GetItem)            // Товар по ID
		items.GET("/search/:text", itemHandler.SearchItems) // Поиск по подстроке имени
		items.POST("", itemHandler.CreateItem)            // Создать товар
		items.PUT("/:id", itemHandler.UpdateItem)         // Частично обновить товар
	}

	// Cart endpoints (пути исходного API сохранены)
	router.POST("/cart/:clientId", cartHandler.AddItem)
	router.DELETE("/carts/:clientId/items/:itemId", cartHandler.RemoveItem)

	// Purchase endpoint - транзакционное оформление покупки
	router.POST("/purchase", purchaseHandler.Purchase)

	// Stats endpoint
	router.GET("/stats/sales", itemHandler.GetTopSales)

	// Clients endpoints
	clients := router.Group("/clients")
	{
		clients.GET("", clientHandler.ListClients)
		clients.POST("", clientHandler.CreateClient)
		clients.GET("/:clientId/orders", clientHandler.GetClientOrders)
	}

	return router
}
