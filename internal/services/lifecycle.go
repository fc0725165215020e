package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dkovacs/ecoloop/internal/models"
)

// LifecycleService records product instance registrations and lifecycle
// events and derives reports from the event stream.
//
// The current state of an instance is the type of its most recent event
// (by EventDate, ties by insertion order), or NoEvents when the stream
// is empty. Once a terminal event is recorded, only the same terminal
// type may be appended again; any other event type is rejected.
type LifecycleService struct {
	DB *gorm.DB
	// Now is injectable for deterministic age computations in tests.
	Now func() time.Time

	locks sync.Map // instanceID -> *sync.Mutex
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{DB: db, Now: time.Now}
}

// RegisterInstance creates a product instance and its implicit
// Registered event in one transaction. The registration event
// establishes the lifecycle start time used for age computation.
func (s *LifecycleService) RegisterInstance(serialNumber, productID string) (uint, error) {
	serial := strings.TrimSpace(serialNumber)
	if serial == "" {
		return 0, fmt.Errorf("%w: serial number is empty", ErrValidation)
	}
	var instanceID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.First(&prod, "product_id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, productID)
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.ProductInstance{}).Where("serial_number = ?", serial).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: serial number %s already registered", ErrConflict, serial)
		}
		inst := models.ProductInstance{SerialNumber: serial, ProductID: productID}
		if err := tx.Create(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: serial number %s already registered", ErrConflict, serial)
			}
			return err
		}
		ev := models.LifecycleEvent{InstanceID: inst.InstanceID, EventType: models.EventRegistered, EventDate: s.Now()}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		instanceID = inst.InstanceID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return instanceID, nil
}

// AddEvent appends a lifecycle event. A zero eventDate means now.
// Calls for the same instance are serialized so the state read during
// validation is the state the append commits against.
func (s *LifecycleService) AddEvent(instanceID uint, eventType string, eventDate time.Time) (uint, error) {
	if !models.KnownEventType(eventType) {
		return 0, fmt.Errorf("%w: unrecognized event type %q", ErrValidation, eventType)
	}
	mu := s.instanceLock(instanceID)
	mu.Lock()
	defer mu.Unlock()

	var eventID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireInstance(tx, instanceID); err != nil {
			return err
		}
		current, err := latestEvent(tx, instanceID)
		if err != nil {
			return err
		}
		if current != nil && models.TerminalEventType(current.EventType) && current.EventType != eventType {
			return fmt.Errorf("%w: instance %d is already %s", ErrInvalidTransition, instanceID, current.EventType)
		}
		at := eventDate
		if at.IsZero() {
			at = s.Now()
		}
		ev := models.LifecycleEvent{InstanceID: instanceID, EventType: eventType, EventDate: at}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		eventID = ev.EventID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return eventID, nil
}

// Report returns the instance's events in ascending EventDate order.
// An instance with no events yields an empty slice, not an error.
func (s *LifecycleService) Report(instanceID uint) ([]models.LifecycleEvent, error) {
	if err := requireInstance(s.DB, instanceID); err != nil {
		return nil, err
	}
	var events []models.LifecycleEvent
	err := s.DB.Where("instance_id = ?", instanceID).
		Order("event_date, event_id").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Age returns the instance's age in whole days: earliest event to the
// latest event once the instance is in a terminal state, earliest event
// to now otherwise. An instance with no events has age 0.
func (s *LifecycleService) Age(instanceID uint) (int, error) {
	events, err := s.Report(instanceID)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	start := events[0].EventDate
	last := events[len(events)-1]
	end := s.Now()
	if models.TerminalEventType(last.EventType) {
		end = last.EventDate
	}
	if end.Before(start) {
		return 0, nil
	}
	return int(end.Sub(start).Hours() / 24), nil
}

// CurrentState returns the instance's latest event type, or NoEvents.
func (s *LifecycleService) CurrentState(instanceID uint) (string, error) {
	if err := requireInstance(s.DB, instanceID); err != nil {
		return "", err
	}
	current, err := latestEvent(s.DB, instanceID)
	if err != nil {
		return "", err
	}
	if current == nil {
		return models.StateNoEvents, nil
	}
	return current.EventType, nil
}

// InstanceStatus pairs an instance with its derived current state.
type InstanceStatus struct {
	InstanceID   uint
	SerialNumber string
	ProductID    string
	CurrentState string
}

// RecentInstances returns the newest instances with their current
// state, newest first.
func (s *LifecycleService) RecentInstances(limit int) ([]InstanceStatus, error) {
	var instances []models.ProductInstance
	if err := s.DB.Order("instance_id desc").Limit(limit).Find(&instances).Error; err != nil {
		return nil, err
	}
	statuses := make([]InstanceStatus, 0, len(instances))
	for _, inst := range instances {
		current, err := latestEvent(s.DB, inst.InstanceID)
		if err != nil {
			return nil, err
		}
		state := models.StateNoEvents
		if current != nil {
			state = current.EventType
		}
		statuses = append(statuses, InstanceStatus{
			InstanceID:   inst.InstanceID,
			SerialNumber: inst.SerialNumber,
			ProductID:    inst.ProductID,
			CurrentState: state,
		})
	}
	return statuses, nil
}

// TraceRow is one material passport line: a leaf component of the
// product joined with one of its materials.
type TraceRow struct {
	ComponentName   string
	MaterialName    string
	WeightInGrams   float64
	RecyclableGrade string
	IsHazardous     bool
}

// ProductTrace flattens the product's BOM into its material passport,
// ordered by component name then material name.
func (s *LifecycleService) ProductTrace(productID string) ([]TraceRow, error) {
	var prod models.Product
	if err := s.DB.First(&prod, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, err
	}
	var rows []TraceRow
	err := s.DB.Table("components c").
		Select("c.component_name, rm.material_name, cc.weight_in_grams, rm.recyclable_grade, rm.is_hazardous").
		Joins("JOIN component_compositions cc ON cc.component_id = c.component_id").
		Joins("JOIN raw_materials rm ON rm.material_id = cc.material_id").
		Where("c.product_id = ?", productID).
		Order("c.component_name, rm.material_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *LifecycleService) instanceLock(instanceID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(instanceID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func requireInstance(tx *gorm.DB, instanceID uint) error {
	var inst models.ProductInstance
	if err := tx.First(&inst, "instance_id = ?", instanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: instance %d", ErrNotFound, instanceID)
		}
		return err
	}
	return nil
}

// latestEvent returns the most recent event or nil when none exist.
func latestEvent(tx *gorm.DB, instanceID uint) (*models.LifecycleEvent, error) {
	var ev models.LifecycleEvent
	err := tx.Where("instance_id = ?", instanceID).
		Order("event_date desc, event_id desc").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
