package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mquezada-dev/stockroom-api/models"
)

func TestCreateSupplier(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create supplier",
			requestBody: map[string]interface{}{
				"name":           "Acme Fasteners",
				"contact_person": "Jordan Lee",
				"phone":          "+1 650-253-0000",
				"email":          "orders@acmefasteners.example",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Acme Fasteners", data["name"])
				assert.Equal(t, "Jordan Lee", data["contact_person"])
			},
		},
		{
			name: "Create supplier without contact details",
			requestBody: map[string]interface{}{
				"name": "Bare Minimum Supply",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with missing name",
			requestBody: map[string]interface{}{
				"email": "orders@acmefasteners.example",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with malformed email",
			requestBody: map[string]interface{}{
				"name":  "Acme Fasteners",
				"email": "not-an-email",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unparseable phone",
			requestBody: map[string]interface{}{
				"name":  "Acme Fasteners",
				"phone": "call me maybe",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/suppliers", mockAuthMiddleware(1, "operator"), api.CreateSupplier)

			w := performRequest(router, http.MethodPost, "/suppliers", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestUpdateSupplier(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	supplier := models.Supplier{Name: "Acme Fasteners", Email: "orders@acmefasteners.example"}
	db.Create(&supplier)

	router := setupTestRouter()
	router.PUT("/suppliers/:id", mockAuthMiddleware(1, "operator"), api.UpdateSupplier)

	t.Run("Update existing supplier", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/suppliers/1", map[string]interface{}{
			"name":           "Acme Fasteners Inc",
			"contact_person": "Sam Rivera",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.Supplier
		db.First(&updated, supplier.ID)
		assert.Equal(t, "Acme Fasteners Inc", updated.Name)
		assert.Equal(t, "Sam Rivera", updated.ContactPerson)
	})

	t.Run("Update missing supplier", func(t *testing.T) {
		w := performRequest(router, http.MethodPut, "/suppliers/999", map[string]interface{}{
			"name": "Ghost Supply",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "SUPPLIER_NOT_FOUND", errorCode(parseResponse(t, w)))
	})
}

func TestDeleteSupplier(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	referenced := models.Supplier{Name: "Busy Supply"}
	idle := models.Supplier{Name: "Idle Supply"}
	db.Create(&referenced)
	db.Create(&idle)

	db.Create(&models.Order{
		OrderDate:   time.Now(),
		SupplierID:  referenced.ID,
		TotalAmount: decimal.RequireFromString("42.00"),
		Status:      models.OrderStatusProcessing,
	})

	router := setupTestRouter()
	router.DELETE("/suppliers/:id", mockAuthMiddleware(1, "admin"), api.DeleteSupplier)

	t.Run("Refuse while orders reference the supplier", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/suppliers/1", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "HAS_RELATED_ORDERS", errorCode(parseResponse(t, w)))

		// The supplier must still be there
		var count int64
		db.Model(&models.Supplier{}).Where("id = ?", referenced.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Delete unreferenced supplier", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/suppliers/2", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Supplier{}).Where("id = ?", idle.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Delete missing supplier", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/suppliers/999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "SUPPLIER_NOT_FOUND", errorCode(parseResponse(t, w)))
	})
}
