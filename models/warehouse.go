package models

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents a physical storage location.
// A warehouse cannot be deleted while any stock row still references it.
type Warehouse struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Location  string         `json:"location"`
	Capacity  int            `gorm:"check:capacity >= 0" json:"capacity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}
