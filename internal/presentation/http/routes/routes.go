package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/config"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/presentation/http/handler"
	"github.com/sangkips/trademarket-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Receipt   *handler.ReceiptHandler
	Statistic *handler.StatisticHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          zerolog.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}
	{
		registerCustomerRoutes(api, h)
		registerProductRoutes(api, h)
		registerReceiptRoutes(api, h, deps)
		registerStatisticRoutes(api, h)
	}

	return router
}

func registerCustomerRoutes(api *gin.RouterGroup, h *Handlers) {
	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/products/:id", h.Customer.ListByProduct)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(api *gin.RouterGroup, h *Handlers) {
	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)

		products.GET("/categories", h.Product.ListCategories)
		products.POST("/categories", h.Product.CreateCategory)
		products.PUT("/categories/:id", h.Product.UpdateCategory)
		products.DELETE("/categories/:id", h.Product.DeleteCategory)
	}
}

func registerReceiptRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := api.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/period", h.Receipt.ListByPeriod)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/details", h.Receipt.Details)
		receipts.GET("/:id/sum", h.Receipt.Sum)

		create := []gin.HandlerFunc{h.Receipt.Create}
		if deps.IdempotencyRepo != nil {
			create = append([]gin.HandlerFunc{middleware.Idempotency(middleware.IdempotencyConfig{
				Repo:   deps.IdempotencyRepo,
				Logger: deps.Logger,
			})}, create...)
		}
		receipts.POST("", create...)

		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
		receipts.PUT("/:id/products/add/:productId/:quantity", h.Receipt.AddProduct)
		receipts.PUT("/:id/products/remove/:productId/:quantity", h.Receipt.RemoveProduct)
		receipts.PUT("/:id/checkout", h.Receipt.CheckOut)
	}
}

func registerStatisticRoutes(api *gin.RouterGroup, h *Handlers) {
	statistics := api.Group("/statistics")
	{
		statistics.GET("/popularProducts", h.Statistic.PopularProducts)
		statistics.GET("/customer/:id/:productCount", h.Statistic.CustomerPopularProducts)
		statistics.GET("/activity/:customerCount", h.Statistic.MostValuableCustomers)
		statistics.GET("/income/:categoryId", h.Statistic.CategoryIncome)
	}
}
