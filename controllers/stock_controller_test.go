package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mquezada-dev/stockroom-api/models"
)

// seedStockFixtures creates two warehouses, one product, and one stock row
// with 50 units at the first warehouse.
func seedStockFixtures(t *testing.T, api *API) (models.Product, models.Warehouse, models.Warehouse) {
	t.Helper()

	product := models.Product{Name: "M8 Hex Bolt"}
	if err := api.DB.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	north := models.Warehouse{Name: "North Depot"}
	south := models.Warehouse{Name: "South Depot"}
	api.DB.Create(&north)
	api.DB.Create(&south)

	api.DB.Create(&models.Stock{ProductID: product.ID, WarehouseID: north.ID, Quantity: 50})

	return product, north, south
}

func TestCreateStock(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	product := models.Product{Name: "M8 Hex Bolt"}
	db.Create(&product)
	warehouse := models.Warehouse{Name: "North Depot"}
	db.Create(&warehouse)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully create stock row",
			requestBody: map[string]interface{}{
				"product_id":   product.ID,
				"warehouse_id": warehouse.ID,
				"quantity":     25,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with unknown product",
			requestBody: map[string]interface{}{
				"product_id":   999,
				"warehouse_id": warehouse.ID,
				"quantity":     25,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "PRODUCT_NOT_FOUND",
		},
		{
			name: "Fail with unknown warehouse",
			requestBody: map[string]interface{}{
				"product_id":   product.ID,
				"warehouse_id": 999,
				"quantity":     25,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "WAREHOUSE_NOT_FOUND",
		},
		{
			name: "Fail with negative quantity",
			requestBody: map[string]interface{}{
				"product_id":   product.ID,
				"warehouse_id": warehouse.ID,
				"quantity":     -5,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with missing product",
			requestBody: map[string]interface{}{
				"warehouse_id": warehouse.ID,
				"quantity":     25,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/stock", mockAuthMiddleware(1, "operator"), api.CreateStock)

			w := performRequest(router, http.MethodPost, "/stock", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				response := parseResponse(t, w)
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
		})
	}
}

func TestListStock(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	product, north, south := seedStockFixtures(t, api)
	db.Create(&models.Stock{ProductID: product.ID, WarehouseID: south.ID, Quantity: 10})

	router := setupTestRouter()
	router.GET("/stock", mockAuthMiddleware(1, "operator"), api.ListStock)

	t.Run("List all stock with relations", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/stock", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := parseResponse(t, w)
		data := response["data"].([]interface{})
		assert.Len(t, data, 2)

		first := data[0].(map[string]interface{})
		assert.Equal(t, "M8 Hex Bolt", first["product"].(map[string]interface{})["name"])
		assert.Equal(t, "North Depot", first["warehouse"].(map[string]interface{})["name"])
	})

	t.Run("Filter by warehouse", func(t *testing.T) {
		path := fmt.Sprintf("/stock?warehouse_id=%d", north.ID)
		w := performRequest(router, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := parseResponse(t, w)
		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		assert.Equal(t, float64(50), data[0].(map[string]interface{})["quantity"])
	})
}

func TestMoveStockEndpoint(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	product, north, south := seedStockFixtures(t, api)

	router := setupTestRouter()
	router.POST("/stock/movements", mockAuthMiddleware(1, "operator"), api.MoveStock)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successful transfer",
			requestBody: map[string]interface{}{
				"product_id":        product.ID,
				"from_warehouse_id": north.ID,
				"to_warehouse_id":   south.ID,
				"quantity":          20,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				source := data["source"].(map[string]interface{})
				dest := data["destination"].(map[string]interface{})
				assert.Equal(t, float64(30), source["quantity"])
				assert.Equal(t, float64(20), dest["quantity"])
			},
		},
		{
			name: "Insufficient stock",
			requestBody: map[string]interface{}{
				"product_id":        product.ID,
				"from_warehouse_id": north.ID,
				"to_warehouse_id":   south.ID,
				"quantity":          1000,
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "INSUFFICIENT_STOCK",
		},
		{
			name: "Same source and destination",
			requestBody: map[string]interface{}{
				"product_id":        product.ID,
				"from_warehouse_id": north.ID,
				"to_warehouse_id":   north.ID,
				"quantity":          5,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "No stock at source",
			requestBody: map[string]interface{}{
				"product_id":        product.ID,
				"from_warehouse_id": south.ID,
				"to_warehouse_id":   north.ID,
				"quantity":          5,
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "STOCK_NOT_FOUND",
		},
		{
			name: "Missing quantity",
			requestBody: map[string]interface{}{
				"product_id":        product.ID,
				"from_warehouse_id": north.ID,
				"to_warehouse_id":   south.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/stock/movements", tt.requestBody)

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

	// After the one successful transfer, totals must be conserved
	var total int64
	db.Model(&models.Stock{}).Select("COALESCE(SUM(quantity), 0)").Scan(&total)
	assert.Equal(t, int64(50), total)
}

func TestDeleteStock(t *testing.T) {
	db := setupTestDB(t)
	api := newTestAPI(db)

	seedStockFixtures(t, api)

	router := setupTestRouter()
	router.DELETE("/stock/:id", mockAuthMiddleware(1, "admin"), api.DeleteStock)

	t.Run("Delete existing stock row", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/stock/1", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Stock{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Delete missing stock row", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/stock/1", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "STOCK_NOT_FOUND", errorCode(parseResponse(t, w)))
	})
}
