package db

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestConnectTranslatesDuplicateKey(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := Connect(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := d.Create(&models.Product{ProductID: "p1", ModelName: "EcoPhone"}).Error; err != nil {
		t.Fatal(err)
	}
	first := models.ProductInstance{SerialNumber: "SN-1", ProductID: "p1"}
	if err := d.Create(&first).Error; err != nil {
		t.Fatal(err)
	}
	dup := models.ProductInstance{SerialNumber: "SN-1", ProductID: "p1"}
	err = d.Create(&dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey from the unique serial index, got %v", err)
	}
}

func TestSeedIdempotent(t *testing.T) {
	d := openTestDB(t)
	if err := Seed(d); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(d); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"products":     {&models.Product{}, 2},
		"components":   {&models.Component{}, 6},
		"materials":    {&models.RawMaterial{}, 6},
		"edges":        {&models.BOMEdge{}, 4},
		"compositions": {&models.ComponentComposition{}, 6},
		"suppliers":    {&models.Supplier{}, 2},
		"instances":    {&models.ProductInstance{}, 6},
	}
	for name, c := range counts {
		var got int64
		if err := d.Model(c.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if got != c.want {
			t.Errorf("%s = %d, want %d (seed not idempotent?)", name, got, c.want)
		}
	}
}

func TestSeedProvidesLabeledInstances(t *testing.T) {
	d := openTestDB(t)
	if err := Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var recycled, disposed int64
	d.Model(&models.LifecycleEvent{}).
		Where("event_type IN ?", []string{models.EventRecycled, models.EventRecycledHazardous}).
		Count(&recycled)
	d.Model(&models.LifecycleEvent{}).
		Where("event_type = ?", models.EventDisposed).
		Count(&disposed)
	if recycled == 0 || disposed == 0 {
		t.Errorf("seed must provide both outcome classes: recycled=%d disposed=%d", recycled, disposed)
	}
}
