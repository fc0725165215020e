package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// FeatureService joins lifecycle outcomes with BOM aggregates into flat
// training examples for the outcome predictor.
type FeatureService struct{ DB *gorm.DB }

func NewFeatureService(db *gorm.DB) *FeatureService { return &FeatureService{DB: db} }

// FeatureRow is one labeled training example.
//
// AvgRecyclability is the unweighted mean of grade scores across the
// material rows, deliberately distinct from the weighted score the
// composition engine computes; the two must not be conflated.
type FeatureRow struct {
	InstanceID       uint
	TotalWeight      float64
	AvgRecyclability float64
	HazardousCount   int
	ComponentCount   int
	Label            int
}

// Vector returns the features in the fixed order the predictor expects.
func (r FeatureRow) Vector() []float64 {
	return []float64{r.TotalWeight, r.AvgRecyclability, float64(r.HazardousCount), float64(r.ComponentCount)}
}

// isAssemblyID reports whether a component identifier follows the
// catalog's assembly naming convention (a leading "c"). Only BOM edges
// whose parent matches contribute children to feature extraction.
func isAssemblyID(id string) bool {
	return len(id) > 0 && (id[0] == 'c' || id[0] == 'C')
}

// ExtractTrainingSet produces one row per instance that has a terminal
// lifecycle outcome: label 1 for instances ever recycled, 0 for
// instances disposed and never recycled. Instances with neither are
// dropped entirely; unlabeled rows never reach training. A pure
// function of stored state: unchanged data yields identical rows.
func (s *FeatureService) ExtractTrainingSet() ([]FeatureRow, error) {
	var instances []models.ProductInstance
	if err := s.DB.Order("instance_id").Find(&instances).Error; err != nil {
		return nil, err
	}
	featuresByProduct := map[string]*FeatureRow{}
	var out []FeatureRow
	for _, inst := range instances {
		label, ok, err := s.label(inst.InstanceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		feats, ok := featuresByProduct[inst.ProductID]
		if !ok {
			feats, err = s.productFeatures(inst.ProductID)
			if err != nil {
				return nil, err
			}
			featuresByProduct[inst.ProductID] = feats
		}
		if feats == nil {
			// no composition data under this product's BOM
			continue
		}
		row := *feats
		row.InstanceID = inst.InstanceID
		row.Label = label
		out = append(out, row)
	}
	return out, nil
}

// FeaturesForInstance computes the unlabeled feature vector for one
// instance, for inference on instances still in use.
func (s *FeatureService) FeaturesForInstance(instanceID uint) (*FeatureRow, error) {
	var inst models.ProductInstance
	if err := s.DB.First(&inst, "instance_id = ?", instanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: instance %d", ErrNotFound, instanceID)
		}
		return nil, err
	}
	feats, err := s.productFeatures(inst.ProductID)
	if err != nil {
		return nil, err
	}
	if feats == nil {
		return nil, fmt.Errorf("%w: no composition data for product %s", ErrNoData, inst.ProductID)
	}
	row := *feats
	row.InstanceID = instanceID
	return &row, nil
}

// label returns (1, true) for instances ever recycled, (0, true) for
// instances disposed and never recycled, and ok=false otherwise.
func (s *FeatureService) label(instanceID uint) (int, bool, error) {
	var recycled int64
	err := s.DB.Model(&models.LifecycleEvent{}).
		Where("instance_id = ? AND event_type IN ?", instanceID, []string{models.EventRecycled, models.EventRecycledHazardous}).
		Count(&recycled).Error
	if err != nil {
		return 0, false, err
	}
	if recycled > 0 {
		return 1, true, nil
	}
	var disposed int64
	err = s.DB.Model(&models.LifecycleEvent{}).
		Where("instance_id = ? AND event_type = ?", instanceID, models.EventDisposed).
		Count(&disposed).Error
	if err != nil {
		return 0, false, err
	}
	if disposed > 0 {
		return 0, true, nil
	}
	return 0, false, nil
}

// productFeatures aggregates the leaf materials reachable from the
// product's BOM through assembly-named parents. Returns nil when the
// product has no such composition rows.
func (s *FeatureService) productFeatures(productID string) (*FeatureRow, error) {
	var componentIDs []string
	err := s.DB.Model(&models.Component{}).
		Where("product_id = ?", productID).
		Pluck("component_id", &componentIDs).Error
	if err != nil {
		return nil, err
	}
	var childIDs []string
	for _, id := range componentIDs {
		if !isAssemblyID(id) {
			continue
		}
		var children []string
		err := s.DB.Model(&models.BOMEdge{}).
			Where("parent_component_id = ?", id).
			Order("child_component_id").
			Pluck("child_component_id", &children).Error
		if err != nil {
			return nil, err
		}
		childIDs = append(childIDs, children...)
	}
	if len(childIDs) == 0 {
		return nil, nil
	}

	var rows []struct {
		ComponentID     string
		WeightInGrams   float64
		RecyclableGrade string
		IsHazardous     bool
	}
	err = s.DB.Table("component_compositions cc").
		Select("cc.component_id, cc.weight_in_grams, rm.recyclable_grade, rm.is_hazardous").
		Joins("JOIN raw_materials rm ON rm.material_id = cc.material_id").
		Where("cc.component_id IN ?", childIDs).
		Order("cc.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	feats := &FeatureRow{}
	var scoreSum float64
	seen := map[string]bool{}
	for _, r := range rows {
		feats.TotalWeight += r.WeightInGrams
		scoreSum += models.GradeScore(r.RecyclableGrade)
		if r.IsHazardous {
			feats.HazardousCount++
		}
		if !seen[r.ComponentID] {
			seen[r.ComponentID] = true
			feats.ComponentCount++
		}
	}
	feats.AvgRecyclability = scoreSum / float64(len(rows))
	return feats, nil
}
