package services

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// CompositionService aggregates bill-of-materials data into weight,
// recyclability and hazard summaries.
type CompositionService struct{ DB *gorm.DB }

func NewCompositionService(db *gorm.DB) *CompositionService { return &CompositionService{DB: db} }

// MaterialLine is one resolved leaf composition row with its material
// attributes.
type MaterialLine struct {
	ComponentID     string
	ComponentName   string
	MaterialID      string
	MaterialName    string
	WeightInGrams   float64
	RecyclableGrade string
	IsHazardous     bool
}

// ComponentSummary aggregates the subtree rooted at ComponentID.
type ComponentSummary struct {
	ComponentID                string
	TotalWeightGrams           float64
	WeightedRecyclabilityScore float64
	HazardousWeightGrams       float64
	HazardousMaterialCount     int
	Materials                  []MaterialLine
}

// Summarize walks the BOM subtree rooted at componentID depth-first and
// returns the element-wise aggregate of every leaf composition row in
// it. A leaf's summary is the sum of its own rows; an assembly's is the
// merge of its direct children. The weighted score is
// Σ(weight×gradeScore)/Σ(weight) rounded to 2 decimals, 0 when the
// subtree carries no weight.
func (s *CompositionService) Summarize(componentID string) (*ComponentSummary, error) {
	if err := s.requireComponent(componentID); err != nil {
		return nil, err
	}
	lines, err := s.collect(componentID, map[string]bool{})
	if err != nil {
		return nil, err
	}
	return summaryFromLines(componentID, lines), nil
}

// MergeSummaries combines child subtree summaries into the summary of
// their parent assembly. Recomputed from the material lines so the
// weighted score matches what Summarize on the parent would produce.
func MergeSummaries(componentID string, children ...*ComponentSummary) *ComponentSummary {
	var lines []MaterialLine
	for _, c := range children {
		lines = append(lines, c.Materials...)
	}
	return summaryFromLines(componentID, lines)
}

// DirectComposition returns the composition rows recorded directly on a
// component, without descending into children.
func (s *CompositionService) DirectComposition(componentID string) ([]MaterialLine, error) {
	if err := s.requireComponent(componentID); err != nil {
		return nil, err
	}
	return s.linesFor(componentID)
}

// AddMaterial appends a leaf composition row. Weight must be strictly
// positive and both the component and the material must exist.
func (s *CompositionService) AddMaterial(componentID, materialID string, weightInGrams float64) error {
	if weightInGrams <= 0 {
		return fmt.Errorf("%w: weight must be positive, got %v", ErrValidation, weightInGrams)
	}
	if err := s.requireComponent(componentID); err != nil {
		return err
	}
	var mat models.RawMaterial
	if err := s.DB.First(&mat, "material_id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: material %s", ErrNotFound, materialID)
		}
		return err
	}
	row := models.ComponentComposition{ComponentID: componentID, MaterialID: materialID, WeightInGrams: weightInGrams}
	return s.DB.Create(&row).Error
}

func (s *CompositionService) requireComponent(componentID string) error {
	var comp models.Component
	if err := s.DB.First(&comp, "component_id = ?", componentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: component %s", ErrNotFound, componentID)
		}
		return err
	}
	return nil
}

// collect gathers every leaf material line under componentID. The path
// set guards against cyclic BOM data: revisiting a component already on
// the current path aborts the traversal.
func (s *CompositionService) collect(componentID string, path map[string]bool) ([]MaterialLine, error) {
	if path[componentID] {
		return nil, fmt.Errorf("%w: component %s revisited during traversal", ErrCyclicBOM, componentID)
	}
	path[componentID] = true
	defer delete(path, componentID)

	var edges []models.BOMEdge
	if err := s.DB.Where("parent_component_id = ?", componentID).Order("child_component_id").Find(&edges).Error; err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return s.linesFor(componentID)
	}
	var lines []MaterialLine
	for _, e := range edges {
		childLines, err := s.collect(e.ChildComponentID, path)
		if err != nil {
			return nil, err
		}
		lines = append(lines, childLines...)
	}
	return lines, nil
}

func (s *CompositionService) linesFor(componentID string) ([]MaterialLine, error) {
	var lines []MaterialLine
	err := s.DB.Table("component_compositions cc").
		Select("cc.component_id, c.component_name, cc.material_id, rm.material_name, cc.weight_in_grams, rm.recyclable_grade, rm.is_hazardous").
		Joins("JOIN components c ON c.component_id = cc.component_id").
		Joins("JOIN raw_materials rm ON rm.material_id = cc.material_id").
		Where("cc.component_id = ?", componentID).
		Order("cc.id").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func summaryFromLines(componentID string, lines []MaterialLine) *ComponentSummary {
	sum := &ComponentSummary{ComponentID: componentID, Materials: lines}
	var weightedScore float64
	for _, l := range lines {
		sum.TotalWeightGrams += l.WeightInGrams
		weightedScore += l.WeightInGrams * models.GradeScore(l.RecyclableGrade)
		if l.IsHazardous {
			sum.HazardousWeightGrams += l.WeightInGrams
			sum.HazardousMaterialCount++
		}
	}
	if sum.TotalWeightGrams > 0 {
		sum.WeightedRecyclabilityScore = round2(weightedScore / sum.TotalWeightGrams)
	}
	return sum
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
