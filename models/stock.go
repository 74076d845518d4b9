package models

import "time"

// Stock represents on-hand inventory of one product at one warehouse.
//
// Invariant: at most one row per (product, warehouse) pair. The schema does
// not enforce this with a constraint initially; historical data may contain
// duplicates, which the maintenance endpoints repair. Once the data is clean,
// a unique index on (product_id, warehouse_id) can be added to prevent
// recurrence.
type Stock struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ProductID     uint       `gorm:"not null;index" json:"product_id"`
	Product       Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	WarehouseID   uint       `gorm:"not null;index" json:"warehouse_id"`
	Warehouse     Warehouse  `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Quantity      int        `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	LastRestocked *time.Time `json:"last_restocked"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Stock model
func (Stock) TableName() string {
	return "stock"
}
