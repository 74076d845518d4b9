package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
)

// API holds the dependencies shared by all request handlers. The database
// handle is injected here once, at startup; handlers never reach for package
// state.
type API struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *logrus.Logger
}

// NewAPI creates the handler set with its dependencies
func NewAPI(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *API {
	return &API{
		DB:     db,
		Config: cfg,
		Logger: logger,
	}
}

// DatabaseStatus handles GET /api/v1/database/status - verifies connectivity
// and reports the migrated tables.
func (a *API) DatabaseStatus(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	tables, err := a.DB.Migrator().GetTables()
	if err != nil {
		config.LogError(a.Logger, "api.go", "DatabaseStatus", "get tables", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
