package services

import (
	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// ScoringService computes the dashboard-level sustainability KPIs.
type ScoringService struct{ DB *gorm.DB }

func NewScoringService(db *gorm.DB) *ScoringService { return &ScoringService{DB: db} }

// OverallRecyclabilityScore is the weighted score over the entire
// composition × materials join, not per product:
// Σ(weight×gradeScore)/Σ(weight) rounded to 2 decimals. Returns 0 when
// no composition data exists yet; that is the documented fallback, not
// an error.
func (s *ScoringService) OverallRecyclabilityScore() (float64, error) {
	var rows []struct {
		WeightInGrams   float64
		RecyclableGrade string
	}
	err := s.DB.Table("component_compositions cc").
		Select("cc.weight_in_grams, rm.recyclable_grade").
		Joins("JOIN raw_materials rm ON rm.material_id = cc.material_id").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	var totalWeight, weightedSum float64
	for _, r := range rows {
		totalWeight += r.WeightInGrams
		weightedSum += r.WeightInGrams * models.GradeScore(r.RecyclableGrade)
	}
	if totalWeight == 0 {
		return 0, nil
	}
	return round2(weightedSum / totalWeight), nil
}

// DashboardStats are the home page KPIs: entity counts, the lifecycle
// outcome distribution and the overall recyclability score.
type DashboardStats struct {
	Products   int64
	Components int64
	Materials  int64
	Suppliers  int64
	Instances  int64
	Events     int64

	Recycled int64 // Recycled + Recycled_Hazardous events
	Disposed int64
	Repaired int64

	OverallRecyclabilityScore float64
}

func (s *ScoringService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Product{}, &stats.Products},
		{&models.Component{}, &stats.Components},
		{&models.RawMaterial{}, &stats.Materials},
		{&models.Supplier{}, &stats.Suppliers},
		{&models.ProductInstance{}, &stats.Instances},
		{&models.LifecycleEvent{}, &stats.Events},
	}
	for _, c := range counts {
		if err := s.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var dist []struct {
		EventType string
		Cnt       int64
	}
	err := s.DB.Model(&models.LifecycleEvent{}).
		Select("event_type, count(*) as cnt").
		Group("event_type").
		Scan(&dist).Error
	if err != nil {
		return nil, err
	}
	for _, d := range dist {
		switch {
		case models.RecycledEventType(d.EventType):
			stats.Recycled += d.Cnt
		case d.EventType == models.EventDisposed:
			stats.Disposed += d.Cnt
		case d.EventType == models.EventRepair:
			stats.Repaired += d.Cnt
		}
	}

	score, err := s.OverallRecyclabilityScore()
	if err != nil {
		return nil, err
	}
	stats.OverallRecyclabilityScore = score
	return stats, nil
}
