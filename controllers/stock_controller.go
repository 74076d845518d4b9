package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/models"
	"github.com/mquezada-dev/stockroom-api/services"
)

// StockRequest represents the request body for creating or updating a stock row
type StockRequest struct {
	ProductID     uint       `json:"product_id" binding:"required"`
	WarehouseID   uint       `json:"warehouse_id" binding:"required"`
	Quantity      int        `json:"quantity" binding:"gte=0"`
	LastRestocked *time.Time `json:"last_restocked"`
}

// ListStock handles GET /api/v1/stock with optional product/warehouse filters
func (a *API) ListStock(c *gin.Context) {
	query := a.DB.WithContext(c.Request.Context()).
		Preload("Product").Preload("Warehouse").Order("id")
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		query = query.Where("warehouse_id = ?", warehouseID)
	}

	var stock []models.Stock
	if err := query.Find(&stock).Error; err != nil {
		config.LogError(a.Logger, "stock_controller.go", "ListStock", "list", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list stock",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stock,
	})
}

// GetStock handles GET /api/v1/stock/:id
func (a *API) GetStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var stock models.Stock
	err := a.DB.WithContext(c.Request.Context()).
		Preload("Product").Preload("Warehouse").First(&stock, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STOCK_NOT_FOUND",
					"message": "Stock row not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "stock_controller.go", "GetStock", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load stock row",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stock,
	})
}

// CreateStock handles POST /api/v1/stock
func (a *API) CreateStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Referenced product does not exist",
			},
		})
		return
	}
	var warehouse models.Warehouse
	if err := db.First(&warehouse, req.WarehouseID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WAREHOUSE_NOT_FOUND",
				"message": "Referenced warehouse does not exist",
			},
		})
		return
	}

	stock := models.Stock{
		ProductID:     req.ProductID,
		WarehouseID:   req.WarehouseID,
		Quantity:      req.Quantity,
		LastRestocked: req.LastRestocked,
	}

	if err := db.Create(&stock).Error; err != nil {
		config.LogError(a.Logger, "stock_controller.go", "CreateStock", "create", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create stock row",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    stock,
	})
}

// UpdateStock handles PUT /api/v1/stock/:id
func (a *API) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var stock models.Stock
	if err := db.First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STOCK_NOT_FOUND",
					"message": "Stock row not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "stock_controller.go", "UpdateStock", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load stock row",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"product_id":     req.ProductID,
		"warehouse_id":   req.WarehouseID,
		"quantity":       req.Quantity,
		"last_restocked": req.LastRestocked,
	}
	if err := db.Model(&stock).Updates(updates).Error; err != nil {
		config.LogError(a.Logger, "stock_controller.go", "UpdateStock", "updates", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update stock row",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stock,
	})
}

// DeleteStock handles DELETE /api/v1/stock/:id
func (a *API) DeleteStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := a.DB.WithContext(c.Request.Context()).Delete(&models.Stock{}, id)
	if result.Error != nil {
		config.LogError(a.Logger, "stock_controller.go", "DeleteStock", "delete", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete stock row",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STOCK_NOT_FOUND",
				"message": "Stock row not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// MoveStock handles POST /api/v1/stock/movements - transfers a quantity of a
// product from one warehouse to another.
func (a *API) MoveStock(c *gin.Context) {
	var req services.MovementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	result, err := services.MoveStock(a.DB.WithContext(c.Request.Context()), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrSameWarehouse):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
		case errors.Is(err, services.ErrStockNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STOCK_NOT_FOUND",
					"message": err.Error(),
				},
			})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": err.Error(),
				},
			})
		default:
			config.LogError(a.Logger, "stock_controller.go", "MoveStock", "transfer", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to move stock",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
