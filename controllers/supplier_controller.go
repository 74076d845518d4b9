package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/config"
	"github.com/mquezada-dev/stockroom-api/models"
	"github.com/mquezada-dev/stockroom-api/utils"
)

// SupplierRequest represents the request body for creating or updating a supplier
type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
}

// ListSuppliers handles GET /api/v1/suppliers
func (a *API) ListSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := a.DB.WithContext(c.Request.Context()).Order("id").Find(&suppliers).Error; err != nil {
		config.LogError(a.Logger, "supplier_controller.go", "ListSuppliers", "list", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list suppliers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suppliers,
	})
}

// GetSupplier handles GET /api/v1/suppliers/:id
func (a *API) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := a.DB.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUPPLIER_NOT_FOUND",
					"message": "Supplier not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "supplier_controller.go", "GetSupplier", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load supplier",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// CreateSupplier handles POST /api/v1/suppliers
func (a *API) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
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

	if !utils.IsValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Phone number is not valid",
			},
		})
		return
	}

	supplier := models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}

	if err := a.DB.WithContext(c.Request.Context()).Create(&supplier).Error; err != nil {
		config.LogError(a.Logger, "supplier_controller.go", "CreateSupplier", "create", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create supplier",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
func (a *API) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SupplierRequest
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

	if !utils.IsValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Phone number is not valid",
			},
		})
		return
	}

	var supplier models.Supplier
	if err := a.DB.WithContext(c.Request.Context()).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUPPLIER_NOT_FOUND",
					"message": "Supplier not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "supplier_controller.go", "UpdateSupplier", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load supplier",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"contact_person": req.ContactPerson,
		"phone":          req.Phone,
		"email":          req.Email,
	}
	if err := a.DB.WithContext(c.Request.Context()).Model(&supplier).Updates(updates).Error; err != nil {
		config.LogError(a.Logger, "supplier_controller.go", "UpdateSupplier", "updates", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update supplier",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id.
// Deletion is refused while any order still references the supplier.
func (a *API) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db := a.DB.WithContext(c.Request.Context())

	var supplier models.Supplier
	if err := db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUPPLIER_NOT_FOUND",
					"message": "Supplier not found",
				},
			})
			return
		}
		config.LogError(a.Logger, "supplier_controller.go", "DeleteSupplier", "first", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load supplier",
			},
		})
		return
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Where("supplier_id = ?", id).Count(&orderCount).Error; err != nil {
		config.LogError(a.Logger, "supplier_controller.go", "DeleteSupplier", "count orders", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check related orders",
			},
		})
		return
	}
	if orderCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HAS_RELATED_ORDERS",
				"message": "Supplier cannot be deleted while orders reference it",
			},
		})
		return
	}

	if err := db.Delete(&supplier).Error; err != nil {
		config.LogError(a.Logger, "supplier_controller.go", "DeleteSupplier", "delete", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete supplier",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
