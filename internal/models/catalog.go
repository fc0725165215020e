package models

import "time"

// Catalog reference data. Rows are created by administrative seeding and
// are read-only to the services layer.

type Product struct {
	ProductID string `gorm:"primaryKey;size:20"`
	ModelName string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// Component is a node in a product's bill of materials. A component with
// no outgoing BOM edges is a leaf and carries composition rows; a
// component with children is an assembly and owns no composition of its
// own.
type Component struct {
	ComponentID   string `gorm:"primaryKey;size:20"`
	ComponentName string `gorm:"size:255;not null"`
	// Product tree this component belongs to.
	ProductID string `gorm:"size:20;index"`
	CreatedAt time.Time
}

// BOMEdge links an assembly to one direct child. The component graph
// must stay acyclic; traversals guard against cycles regardless.
type BOMEdge struct {
	ID                uint   `gorm:"primaryKey"`
	ParentComponentID string `gorm:"size:20;index;not null"`
	ChildComponentID  string `gorm:"size:20;index;not null"`
}

type RawMaterial struct {
	MaterialID      string `gorm:"primaryKey;size:20"`
	MaterialName    string `gorm:"size:255;not null"`
	RecyclableGrade string `gorm:"size:1"` // A..D, empty when ungraded
	IsHazardous     bool   `gorm:"not null"`
}

// ComponentComposition is the leaf-level material content of a component.
// Rows are append-only; weights are strictly positive.
type ComponentComposition struct {
	ID            uint    `gorm:"primaryKey"`
	ComponentID   string  `gorm:"size:20;index;not null"`
	MaterialID    string  `gorm:"size:20;index;not null"`
	WeightInGrams float64 `gorm:"not null"`
}
