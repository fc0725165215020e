package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// SupplierKind classifies a supplier by what its sourcing rows cover.
type SupplierKind string

const (
	SupplierUnknown   SupplierKind = "Unknown"
	SupplierComponent SupplierKind = "Component Supplier"
	SupplierMaterial  SupplierKind = "Material Supplier"
	SupplierBoth      SupplierKind = "Both"
)

type SupplierService struct{ DB *gorm.DB }

func NewSupplierService(db *gorm.DB) *SupplierService { return &SupplierService{DB: db} }

// Classify derives the supplier kind from its sourcing rows: component
// rows only, material rows only, both, or none recorded yet.
func (s *SupplierService) Classify(supplierID string) (SupplierKind, error) {
	if err := s.requireSupplier(supplierID); err != nil {
		return "", err
	}
	var compCount, matCount int64
	if err := s.DB.Model(&models.Sourcing{}).Where("supplier_id = ? AND component_id IS NOT NULL", supplierID).Count(&compCount).Error; err != nil {
		return "", err
	}
	if err := s.DB.Model(&models.Sourcing{}).Where("supplier_id = ? AND material_id IS NOT NULL", supplierID).Count(&matCount).Error; err != nil {
		return "", err
	}
	return kindFromCounts(compCount, matCount), nil
}

// ClassifyAll returns the kind for every known supplier, including
// suppliers with no sourcing rows.
func (s *SupplierService) ClassifyAll() (map[string]SupplierKind, error) {
	var suppliers []models.Supplier
	if err := s.DB.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	kinds := make(map[string]SupplierKind, len(suppliers))
	for _, sup := range suppliers {
		kinds[sup.SupplierID] = SupplierUnknown
	}

	var rows []struct {
		SupplierID string
		CompCount  int64
		MatCount   int64
	}
	err := s.DB.Model(&models.Sourcing{}).
		Select("supplier_id, sum(case when component_id is not null then 1 else 0 end) as comp_count, sum(case when material_id is not null then 1 else 0 end) as mat_count").
		Group("supplier_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		kinds[r.SupplierID] = kindFromCounts(r.CompCount, r.MatCount)
	}
	return kinds, nil
}

// AddSourcing records that a supplier sources exactly one component or
// one material. Passing both or neither violates the exclusive-or
// constraint on sourcing rows.
func (s *SupplierService) AddSourcing(supplierID string, componentID, materialID *string) error {
	if (componentID == nil) == (materialID == nil) {
		return fmt.Errorf("%w: exactly one of component or material must be set", ErrValidation)
	}
	if err := s.requireSupplier(supplierID); err != nil {
		return err
	}
	if componentID != nil {
		var comp models.Component
		if err := s.DB.First(&comp, "component_id = ?", *componentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: component %s", ErrNotFound, *componentID)
			}
			return err
		}
	} else {
		var mat models.RawMaterial
		if err := s.DB.First(&mat, "material_id = ?", *materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: material %s", ErrNotFound, *materialID)
			}
			return err
		}
	}
	row := models.Sourcing{SupplierID: supplierID, ComponentID: componentID, MaterialID: materialID}
	return s.DB.Create(&row).Error
}

func (s *SupplierService) requireSupplier(supplierID string) error {
	var sup models.Supplier
	if err := s.DB.First(&sup, "supplier_id = ?", supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: supplier %s", ErrNotFound, supplierID)
		}
		return err
	}
	return nil
}

func kindFromCounts(compCount, matCount int64) SupplierKind {
	switch {
	case compCount > 0 && matCount > 0:
		return SupplierBoth
	case compCount > 0:
		return SupplierComponent
	case matCount > 0:
		return SupplierMaterial
	default:
		return SupplierUnknown
	}
}
