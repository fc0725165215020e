package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// Seed inserts a small demo catalog: two products with their BOM trees,
// raw materials, suppliers and a handful of registered instances with
// finished lifecycles. Safe to run repeatedly.
func Seed(db *gorm.DB) error {
	materials := []models.RawMaterial{
		{MaterialID: "m1", MaterialName: "Aluminium", RecyclableGrade: "A", IsHazardous: false},
		{MaterialID: "m2", MaterialName: "Polycarbonate", RecyclableGrade: "C", IsHazardous: false},
		{MaterialID: "m3", MaterialName: "Lithium cell", RecyclableGrade: "D", IsHazardous: true},
		{MaterialID: "m4", MaterialName: "Copper", RecyclableGrade: "B", IsHazardous: false},
		{MaterialID: "m5", MaterialName: "Stainless steel", RecyclableGrade: "A", IsHazardous: false},
		{MaterialID: "m6", MaterialName: "Nichrome", RecyclableGrade: "C", IsHazardous: false},
	}
	for _, m := range materials {
		if err := firstOrCreate(db, &models.RawMaterial{}, "material_id = ?", m.MaterialID, &m); err != nil {
			return err
		}
	}

	products := []models.Product{
		{ProductID: "p100", ModelName: "EcoPhone X"},
		{ProductID: "p200", ModelName: "EcoKettle"},
	}
	for _, p := range products {
		if err := firstOrCreate(db, &models.Product{}, "product_id = ?", p.ProductID, &p); err != nil {
			return err
		}
	}

	components := []models.Component{
		{ComponentID: "c100", ComponentName: "Smartphone Assembly", ProductID: "p100"},
		{ComponentID: "c200", ComponentName: "Chassis", ProductID: "p100"},
		{ComponentID: "c310", ComponentName: "Battery Pack", ProductID: "p100"},
		{ComponentID: "c400", ComponentName: "Kettle Assembly", ProductID: "p200"},
		{ComponentID: "c410", ComponentName: "Body", ProductID: "p200"},
		{ComponentID: "c420", ComponentName: "Heating Element", ProductID: "p200"},
	}
	for _, c := range components {
		if err := firstOrCreate(db, &models.Component{}, "component_id = ?", c.ComponentID, &c); err != nil {
			return err
		}
	}

	edges := []models.BOMEdge{
		{ParentComponentID: "c100", ChildComponentID: "c200"},
		{ParentComponentID: "c100", ChildComponentID: "c310"},
		{ParentComponentID: "c400", ChildComponentID: "c410"},
		{ParentComponentID: "c400", ChildComponentID: "c420"},
	}
	for _, e := range edges {
		var existing models.BOMEdge
		err := db.Where("parent_component_id = ? AND child_component_id = ?", e.ParentComponentID, e.ChildComponentID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&e).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	compositions := []models.ComponentComposition{
		{ComponentID: "c200", MaterialID: "m1", WeightInGrams: 120},
		{ComponentID: "c200", MaterialID: "m2", WeightInGrams: 45},
		{ComponentID: "c310", MaterialID: "m3", WeightInGrams: 90},
		{ComponentID: "c310", MaterialID: "m4", WeightInGrams: 15},
		{ComponentID: "c410", MaterialID: "m5", WeightInGrams: 300},
		{ComponentID: "c420", MaterialID: "m6", WeightInGrams: 40},
	}
	for _, cc := range compositions {
		var existing models.ComponentComposition
		err := db.Where("component_id = ? AND material_id = ?", cc.ComponentID, cc.MaterialID).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&cc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	suppliers := []models.Supplier{
		{SupplierID: "s1", SupplierName: "Nordic Castings"},
		{SupplierID: "s2", SupplierName: "Cellworks"},
	}
	for _, s := range suppliers {
		if err := firstOrCreate(db, &models.Supplier{}, "supplier_id = ?", s.SupplierID, &s); err != nil {
			return err
		}
	}
	chassis, lithium := "c200", "m3"
	sourcing := []models.Sourcing{
		{SupplierID: "s1", ComponentID: &chassis},
		{SupplierID: "s2", MaterialID: &lithium},
	}
	for _, so := range sourcing {
		var count int64
		q := db.Model(&models.Sourcing{}).Where("supplier_id = ?", so.SupplierID)
		if so.ComponentID != nil {
			q = q.Where("component_id = ?", *so.ComponentID)
		} else {
			q = q.Where("material_id = ?", *so.MaterialID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&so).Error; err != nil {
				return err
			}
		}
	}

	return seedInstances(db)
}

// seedInstances registers a few instances with finished lifecycles so a
// training run has labeled data out of the box.
func seedInstances(db *gorm.DB) error {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	demo := []struct {
		serial    string
		productID string
		events    []string
	}{
		{"SN-1001", "p100", []string{models.EventRegistered, models.EventInUse, models.EventRecycled}},
		{"SN-1002", "p100", []string{models.EventRegistered, models.EventRepair, models.EventRecycledHazardous}},
		{"SN-1003", "p100", []string{models.EventRegistered, models.EventInUse, models.EventDisposed}},
		{"SN-2001", "p200", []string{models.EventRegistered, models.EventInUse, models.EventDisposed}},
		{"SN-2002", "p200", []string{models.EventRegistered, models.EventRepair, models.EventDisposed}},
		{"SN-2003", "p200", []string{models.EventRegistered, models.EventRecycled}},
	}
	for i, d := range demo {
		var existing models.ProductInstance
		err := db.Where("serial_number = ?", d.serial).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		inst := models.ProductInstance{SerialNumber: d.serial, ProductID: d.productID}
		if err := db.Create(&inst).Error; err != nil {
			return err
		}
		for j, et := range d.events {
			ev := models.LifecycleEvent{
				InstanceID: inst.InstanceID,
				EventType:  et,
				EventDate:  base.AddDate(0, 0, i*7+j*30),
			}
			if err := db.Create(&ev).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func firstOrCreate(db *gorm.DB, probe interface{}, query string, arg interface{}, value interface{}) error {
	err := db.Where(query, arg).First(probe).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(value).Error
	}
	return err
}
