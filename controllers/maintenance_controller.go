package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/services"
)

// DedupeRequest selects the duplicate-stock cleanup strategy
type DedupeRequest struct {
	Strategy string `json:"strategy" binding:"required,oneof=max sum"`
}

// ListStockDuplicates handles GET /api/v1/maintenance/stock/duplicates
func (a *API) ListStockDuplicates(c *gin.Context) {
	groups, err := services.FindDuplicateStock(a.DB.WithContext(c.Request.Context()))
	if err != nil {
		config.LogError(a.Logger, "maintenance_controller.go", "ListStockDuplicates", "find", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to scan for duplicate stock rows",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    groups,
	})
}

// DedupeStock handles POST /api/v1/maintenance/stock/dedupe - collapses
// duplicate stock rows with the selected strategy.
func (a *API) DedupeStock(c *gin.Context) {
	var req DedupeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Strategy must be \"max\" or \"sum\"",
				"details": err.Error(),
			},
		})
		return
	}

	result, err := services.DedupeStock(a.DB.WithContext(c.Request.Context()), services.DedupeStrategy(req.Strategy))
	if err != nil {
		config.LogError(a.Logger, "maintenance_controller.go", "DedupeStock", "dedupe", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to clean up duplicate stock rows",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// AddStockConstraint handles POST /api/v1/maintenance/stock/constraint -
// adds the unique (product, warehouse) index once the data is clean.
func (a *API) AddStockConstraint(c *gin.Context) {
	err := services.AddStockUniqueConstraint(a.DB.WithContext(c.Request.Context()))
	if err != nil {
		if errors.Is(err, services.ErrDuplicatesPresent) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATES_PRESENT",
					"message": err.Error(),
				},
			})
			return
		}
		config.LogError(a.Logger, "maintenance_controller.go", "AddStockConstraint", "create index", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add unique stock constraint",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"constraint_added": true},
	})
}
