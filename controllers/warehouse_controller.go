package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/models"
)

// WarehouseRequest represents the request body for creating or updating a warehouse
type WarehouseRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"omitempty,gte=0"`
}

// ListWarehouses handles GET /api/v1/warehouses
func (a *API) ListWarehouses(c *gin.Context) {
	var warehouses []models.Warehouse
	if err := a.DB.WithContext(c.Request.Context()).Order("id").Find(&warehouses).Error; err != nil {
		config.LogError(a.Logger, "warehouse_controller.go", "ListWarehouses", "list", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list warehouses",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouses,
	})
}

// GetWarehouse handles GET /api/v1/warehouses/:id
func (a *API) GetWarehouse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var warehouse models.Warehouse
	if err := a.DB.WithContext(c.Request.Context()).First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "WAREHOUSE_NOT_FOUND",
					"message": "Warehouse not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "warehouse_controller.go", "GetWarehouse", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// CreateWarehouse handles POST /api/v1/warehouses
func (a *API) CreateWarehouse(c *gin.Context) {
	var req WarehouseRequest
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

	warehouse := models.Warehouse{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	}

	if err := a.DB.WithContext(c.Request.Context()).Create(&warehouse).Error; err != nil {
		config.LogError(a.Logger, "warehouse_controller.go", "CreateWarehouse", "create", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// UpdateWarehouse handles PUT /api/v1/warehouses/:id
func (a *API) UpdateWarehouse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req WarehouseRequest
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

	var warehouse models.Warehouse
	if err := a.DB.WithContext(c.Request.Context()).First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "WAREHOUSE_NOT_FOUND",
					"message": "Warehouse not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "warehouse_controller.go", "UpdateWarehouse", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load warehouse",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"location": req.Location,
		"capacity": req.Capacity,
	}
	if err := a.DB.WithContext(c.Request.Context()).Model(&warehouse).Updates(updates).Error; err != nil {
		config.LogError(a.Logger, "warehouse_controller.go", "UpdateWarehouse", "updates", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// DeleteWarehouse handles DELETE /api/v1/warehouses/:id.
// Deletion is refused while any stock row still references the warehouse.
func (a *API) DeleteWarehouse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var warehouse models.Warehouse
	if err := db.First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "WAREHOUSE_NOT_FOUND",
					"message": "Warehouse not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "warehouse_controller.go", "DeleteWarehouse", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load warehouse",
			},
		})
		return
	}

	var stockCount int64
	if err := db.Model(&models.Stock{}).Where("warehouse_id = ?", id).Count(&stockCount).Error; err != nil {
		config.LogError(a.Logger, "warehouse_controller.go", "DeleteWarehouse", "count stock", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check related stock",
			},
		})
		return
	}
	if stockCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_RELATED_STOCK",
				"message": "Warehouse cannot be deleted while stock rows reference it",
			},
		})
		return
	}

	if err := db.Delete(&warehouse).Error; err != nil {
		config.LogError(a.Logger, "warehouse_controller.go", "DeleteWarehouse", "delete", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
