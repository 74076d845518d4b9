package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mquezada-dev/stockroom-api/models"
)

// MovementInput is the payload for transferring stock between warehouses
type MovementInput struct {
	ProductID       uint `json:"product_id" binding:"required"`
	FromWarehouseID uint `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uint `json:"to_warehouse_id" binding:"required"`
	Quantity        int  `json:"quantity" binding:"required"`
}

// MovementResult reports both stock rows after a completed transfer
type MovementResult struct {
	Source      models.Stock `json:"source"`
	Destination models.Stock `json:"destination"`
	Quantity    int          `json:"quantity"`
}

// MoveStock transfers a quantity of a product from one warehouse's stock row
// to another's. The subtraction is a single conditional UPDATE with a
// quantity guard in the WHERE clause, so two concurrent transfers cannot both
// drain the same row below zero. The whole transfer is one transaction.
func MoveStock(db *gorm.DB, in MovementInput) (*MovementResult, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, ErrSameWarehouse
	}

	result := &MovementResult{Quantity: in.Quantity}
	err := db.Transaction(func(tx *gorm.DB) error {
		var source models.Stock
		err := tx.Where("product_id = ? AND warehouse_id = ?", in.ProductID, in.FromWarehouseID).
			Order("id").First(&source).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStockNotFound
			}
			return err
		}

		res := tx.Model(&models.Stock{}).
			Where("id = ? AND quantity >= ?", source.ID, in.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", in.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		now := time.Now()
		var dest models.Stock
		err = tx.Where("product_id = ? AND warehouse_id = ?", in.ProductID, in.ToWarehouseID).
			Order("id").First(&dest).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"quantity":       gorm.Expr("quantity + ?", in.Quantity),
				"last_restocked": now,
			}
			if err := tx.Model(&dest).Updates(updates).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			restocked := now
			dest = models.Stock{
				ProductID:     in.ProductID,
				WarehouseID:   in.ToWarehouseID,
				Quantity:      in.Quantity,
				LastRestocked: &restocked,
			}
			if err := tx.Create(&dest).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.First(&result.Source, source.ID).Error; err != nil {
			return err
		}
		return tx.First(&result.Destination, dest.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DedupeStrategy selects how duplicate stock rows are collapsed
type DedupeStrategy string

const (
	// DedupeMax keeps the duplicate with the greatest quantity
	DedupeMax DedupeStrategy = "max"
	// DedupeSum merges duplicates by summing their quantities
	DedupeSum DedupeStrategy = "sum"
)

// DuplicateGroup describes one (product, warehouse) pair that has more than
// one stock row.
type DuplicateGroup struct {
	ProductID   uint  `json:"product_id"`
	WarehouseID uint  `json:"warehouse_id"`
	RowCount    int64 `json:"row_count"`
}

// FindDuplicateStock reports every (product, warehouse) pair holding more
// than one stock row.
func FindDuplicateStock(db *gorm.DB) ([]DuplicateGroup, error) {
	var groups []DuplicateGroup
	err := db.Model(&models.Stock{}).
		Select("product_id, warehouse_id, COUNT(*) AS row_count").
		Group("product_id, warehouse_id").
		Having("COUNT(*) > 1").
		Order("product_id, warehouse_id").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// DedupeResult summarizes a cleanup run
type DedupeResult struct {
	GroupsFixed int `json:"groups_fixed"`
	RowsRemoved int `json:"rows_removed"`
}

// DedupeStock collapses duplicate stock rows per (product, warehouse) pair
// using the chosen strategy, in one transaction:
//
//   - max: keep the row with the greatest quantity (ties: lowest id), drop
//     the rest.
//   - sum: keep the lowest-id row with quantity set to the sum of all
//     duplicates, last_restocked to the latest, created_at to the earliest
//     and updated_at to the latest across the group.
func DedupeStock(db *gorm.DB, strategy DedupeStrategy) (*DedupeResult, error) {
	if strategy != DedupeMax && strategy != DedupeSum {
		return nil, fmt.Errorf("unknown dedupe strategy %q", strategy)
	}

	result := &DedupeResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		groups, err := FindDuplicateStock(tx)
		if err != nil {
			return err
		}

		for _, group := range groups {
			var rows []models.Stock
			err := tx.Where("product_id = ? AND warehouse_id = ?", group.ProductID, group.WarehouseID).
				Order("id").Find(&rows).Error
			if err != nil {
				return err
			}
			if len(rows) < 2 {
				continue
			}

			var removed []uint
			switch strategy {
			case DedupeMax:
				survivor := rows[0]
				for _, row := range rows[1:] {
					if row.Quantity > survivor.Quantity {
						survivor = row
					}
				}
				for _, row := range rows {
					if row.ID != survivor.ID {
						removed = append(removed, row.ID)
					}
				}
			case DedupeSum:
				survivor := rows[0]
				total := 0
				var lastRestocked *time.Time
				earliestCreated := rows[0].CreatedAt
				latestUpdated := rows[0].UpdatedAt
				for _, row := range rows {
					total += row.Quantity
					if row.LastRestocked != nil &&
						(lastRestocked == nil || row.LastRestocked.After(*lastRestocked)) {
						restocked := *row.LastRestocked
						lastRestocked = &restocked
					}
					if row.CreatedAt.Before(earliestCreated) {
						earliestCreated = row.CreatedAt
					}
					if row.UpdatedAt.After(latestUpdated) {
						latestUpdated = row.UpdatedAt
					}
					if row.ID != survivor.ID {
						removed = append(removed, row.ID)
					}
				}

				updates := map[string]interface{}{
					"quantity":       total,
					"last_restocked": lastRestocked,
					"created_at":     earliestCreated,
					"updated_at":     latestUpdated,
				}
				if err := tx.Model(&models.Stock{}).Where("id = ?", survivor.ID).
					UpdateColumns(updates).Error; err != nil {
					return err
				}
			}

			if err := tx.Delete(&models.Stock{}, removed).Error; err != nil {
				return err
			}

			result.GroupsFixed++
			result.RowsRemoved += len(removed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddStockUniqueConstraint creates the unique index on (product_id,
// warehouse_id) that prevents duplicate stock rows from recurring. It refuses
// to run while any duplicate group remains, since index creation would fail
// halfway through otherwise.
func AddStockUniqueConstraint(db *gorm.DB) error {
	groups, err := FindDuplicateStock(db)
	if err != nil {
		return err
	}
	if len(groups) > 0 {
		return ErrDuplicatesPresent
	}

	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_product_warehouse ON stock (product_id, warehouse_id)",
	).Error
}
