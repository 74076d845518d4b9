package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/controllers"
	"github.com/mquezada-dev/stockroom-api/middleware"
	"github.com/mquezada-dev/stockroom-api/models"
	"github.com/mquezada-dev/stockroom-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.LogLevel)
	logger.Info("Starting Stockroom API server...")

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database migration completed successfully")

	// Export archive storage is optional; the archive endpoint reports its
	// own error when it is absent
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(cfg); err != nil {
			logger.Warnf("Export archive storage unavailable: %v", err)
		}
	}

	router := setupRouter(db, cfg, logger)

	addr := ":" + cfg.Port
	logger.Infof("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires every route. The database handle and configuration are
// injected into the handler set; nothing reads them from package state.
func setupRouter(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	api := controllers.NewAPI(db, cfg, logger)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", api.DatabaseStatus)
		v1.POST("/auth/login", api.Login)
	}

	authed := v1.Group("", middleware.RequireAuth(cfg))
	{
		authed.GET("/users/me", api.GetMyProfile)

		authed.GET("/products", api.ListProducts)
		authed.GET("/products/:id", api.GetProduct)
		authed.POST("/products", api.CreateProduct)
		authed.PUT("/products/:id", api.UpdateProduct)
		authed.DELETE("/products/:id", api.DeleteProduct)

		authed.GET("/suppliers", api.ListSuppliers)
		authed.GET("/suppliers/:id", api.GetSupplier)
		authed.POST("/suppliers", api.CreateSupplier)
		authed.PUT("/suppliers/:id", api.UpdateSupplier)
		authed.DELETE("/suppliers/:id", api.DeleteSupplier)

		authed.GET("/warehouses", api.ListWarehouses)
		authed.GET("/warehouses/:id", api.GetWarehouse)
		authed.POST("/warehouses", api.CreateWarehouse)
		authed.PUT("/warehouses/:id", api.UpdateWarehouse)
		authed.DELETE("/warehouses/:id", api.DeleteWarehouse)

		authed.GET("/stock", api.ListStock)
		authed.GET("/stock/:id", api.GetStock)
		authed.POST("/stock", api.CreateStock)
		authed.PUT("/stock/:id", api.UpdateStock)
		authed.DELETE("/stock/:id", api.DeleteStock)
		authed.POST("/stock/movements", api.MoveStock)

		authed.GET("/orders", api.ListOrders)
		authed.GET("/orders/:id", api.GetOrder)
		authed.POST("/orders", api.CreateOrder)
		authed.PUT("/orders/:id", api.UpdateOrder)
		authed.POST("/orders/:id/status", api.UpdateOrderStatus)
		authed.DELETE("/orders/:id", api.DeleteOrder)

		authed.GET("/maintenance/stock/duplicates", api.ListStockDuplicates)
		authed.POST("/maintenance/stock/dedupe", api.DedupeStock)
		authed.POST("/maintenance/stock/constraint", api.AddStockConstraint)

		authed.GET("/exports/:entity/csv", api.ExportCSV)
		authed.GET("/exports/:entity/xlsx", api.ExportXLSX)
		authed.POST("/exports/:entity/archive", api.ArchiveExport)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Stockroom API is running",
	})
}
