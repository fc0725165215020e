package models

import "time"

type Supplier struct {
	SupplierID   string `gorm:"primaryKey;size:20"`
	SupplierName string `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

// Sourcing links a supplier to exactly one component or one raw
// material per row, never both (exclusive-or constraint enforced by the
// services layer).
type Sourcing struct {
	ID          uint    `gorm:"primaryKey"`
	SupplierID  string  `gorm:"size:20;index;not null"`
	ComponentID *string `gorm:"size:20"`
	MaterialID  *string `gorm:"size:20"`
}
