package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/models"
	"github.com/mquezada-dev/stockroom-api/services"
)

// OrderStatusRequest represents the request body for a status transition
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// orderError maps service-layer order errors onto HTTP responses
func (a *API) orderError(c *gin.Context, funcName string, err error) {
	switch {
	case errors.Is(err, services.ErrNoItems),
		errors.Is(err, services.ErrNoSupplier),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidUnitPrice),
		errors.Is(err, services.ErrDuplicateProduct),
		errors.Is(err, services.ErrSupplierNotFound),
		errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrOrderFinalized):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_FINALIZED",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS_TRANSITION",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrNoWarehouses):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_WAREHOUSES",
				"message": err.Error(),
			},
		})
	default:
		config.LogError(a.Logger, "order_controller.go", funcName, "service call", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Order operation failed",
			},
		})
	}
}

// ListOrders handles GET /api/v1/orders with an optional status filter
func (a *API) ListOrders(c *gin.Context) {
	query := a.DB.WithContext(c.Request.Context()).
		Preload("Supplier").Preload("Items").Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		config.LogError(a.Logger, "order_controller.go", "ListOrders", "list", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id
func (a *API) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var order models.Order
	err := a.DB.WithContext(c.Request.Context()).
		Preload("Supplier").Preload("Items").Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "order_controller.go", "GetOrder", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CreateOrder handles POST /api/v1/orders - creates the order header and all
// line items atomically.
func (a *API) CreateOrder(c *gin.Context) {
	var req services.OrderInput
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

	order, err := services.CreateOrder(a.DB.WithContext(c.Request.Context()), req)
	if err != nil {
		a.orderError(c, "CreateOrder", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - full edit with wholesale item
// replacement. Refused once the order is delivered or cancelled.
func (a *API) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.OrderInput
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

	order, err := services.UpdateOrder(a.DB.WithContext(c.Request.Context()), id, req)
	if err != nil {
		a.orderError(c, "UpdateOrder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status. Transitioning to
// "delivered" applies the order's items to stock in the same transaction.
func (a *API) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req OrderStatusRequest
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

	order, err := services.TransitionOrderStatus(a.DB.WithContext(c.Request.Context()), id, req.Status)
	if err != nil {
		a.orderError(c, "UpdateOrderStatus", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - only while still processing
func (a *API) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.DeleteOrder(a.DB.WithContext(c.Request.Context()), id); err != nil {
		a.orderError(c, "DeleteOrder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
