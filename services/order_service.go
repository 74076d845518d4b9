package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/models"
)

// OrderItemInput is one requested line of a purchase order
type OrderItemInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// OrderInput is the payload for creating or editing a purchase order
type OrderInput struct {
	SupplierID uint             `json:"supplier_id" binding:"required"`
	OrderDate  *time.Time       `json:"order_date"`
	Items      []OrderItemInput `json:"items" binding:"required"`
}

func validateOrderInput(in OrderInput) error {
	if in.SupplierID == 0 {
		return ErrNoSupplier
	}
	if len(in.Items) == 0 {
		return ErrNoItems
	}

	seen := make(map[uint]bool, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if !item.UnitPrice.IsPositive() {
			return ErrInvalidUnitPrice
		}
		if seen[item.ProductID] {
			return ErrDuplicateProduct
		}
		seen[item.ProductID] = true
	}

	return nil
}

// buildOrderItems turns validated input lines into item rows and computes the
// derived order total as the sum of line totals.
func buildOrderItems(in OrderInput) ([]models.OrderItem, decimal.Decimal) {
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total
}

// checkOrderReferences verifies the supplier and every referenced product
// exist before any row is written.
func checkOrderReferences(tx *gorm.DB, in OrderInput) error {
	var supplier models.Supplier
	if err := tx.First(&supplier, in.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return err
	}

	productIDs := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	var count int64
	if err := tx.Model(&models.Product{}).Where("id IN ?", productIDs).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(productIDs)) {
		return ErrProductNotFound
	}

	return nil
}

// CreateOrder creates an order header and its line items as one atomic unit.
// The order starts in "processing". On any failure nothing is persisted.
func CreateOrder(db *gorm.DB, in OrderInput) (*models.Order, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}

	items, total := buildOrderItems(in)
	order := &models.Order{
		OrderDate:   orderDate,
		SupplierID:  in.SupplierID,
		TotalAmount: total,
		Status:      models.OrderStatusProcessing,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkOrderReferences(tx, in); err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

// UpdateOrder replaces an order's supplier, date and line items. Existing
// items are deleted and reinserted wholesale. Editing is refused once the
// order has reached a terminal status.
func UpdateOrder(db *gorm.DB, orderID uint, in OrderInput) (*models.Order, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	items, total := buildOrderItems(in)
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsTerminal() {
			return ErrOrderFinalized
		}

		if err := checkOrderReferences(tx, in); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"supplier_id":  in.SupplierID,
			"total_amount": total,
		}
		if in.OrderDate != nil {
			updates["order_date"] = *in.OrderDate
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	return &order, nil
}

// DeleteOrder removes an order and its line items. Only orders still in
// "processing" can be deleted.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsTerminal() {
			return ErrOrderFinalized
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// TransitionOrderStatus moves an order out of "processing". Moving to
// "delivered" applies the order's line items to stock inside the same
// transaction, so the stock adjustment and the status change are atomic:
// either both happen or neither does. "delivered" and "cancelled" are
// terminal; no transition out of them is permitted.
func TransitionOrderStatus(db *gorm.DB, orderID uint, next string) (*models.Order, error) {
	if next != models.OrderStatusDelivered && next != models.OrderStatusCancelled {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != models.OrderStatusProcessing {
			return ErrInvalidTransition
		}

		if next == models.OrderStatusDelivered {
			if err := ApplyDeliveredOrder(tx, &order); err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ApplyDeliveredOrder credits a delivered order's line items to stock. This
// is the application-level replacement for the legacy database trigger that
// fired on the processing-to-delivered update.
//
// The crediting is warehouse-blind: each item goes to the first stock row
// found for its product (lowest id), regardless of which warehouse the goods
// physically arrived at. When no stock row exists anywhere for the product, a
// new row is seeded at the warehouse with the lowest id. This mirrors the
// legacy trigger's behavior and is pending product-owner clarification; do
// not change it to per-warehouse crediting without that.
//
// Must be called inside the transaction that updates the order status.
func ApplyDeliveredOrder(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, item := range items {
		var stock models.Stock
		err := tx.Where("product_id = ?", item.ProductID).Order("id").First(&stock).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"quantity":       gorm.Expr("quantity + ?", item.Quantity),
				"last_restocked": now,
			}
			if err := tx.Model(&stock).Updates(updates).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			var warehouse models.Warehouse
			if err := tx.Order("id").First(&warehouse).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNoWarehouses
				}
				return err
			}
			restocked := now
			row := models.Stock{
				ProductID:     item.ProductID,
				WarehouseID:   warehouse.ID,
				Quantity:      item.Quantity,
				LastRestocked: &restocked,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}

	return nil
}
