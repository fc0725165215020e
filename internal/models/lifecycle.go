package models

import "time"

// Recognized lifecycle event types. The set is open conceptually, but
// these are the values that drive state validation, scoring and
// classification.
const (
	EventRegistered        = "Registered"
	EventInUse             = "InUse"
	EventRepair            = "Repair"
	EventRecycled          = "Recycled"
	EventRecycledHazardous = "Recycled_Hazardous"
	EventDisposed          = "Disposed"
)

// StateNoEvents is the synthetic state of an instance with no recorded
// events. It is never stored as an event type.
const StateNoEvents = "NoEvents"

var knownEventTypes = map[string]bool{
	EventRegistered:        true,
	EventInUse:             true,
	EventRepair:            true,
	EventRecycled:          true,
	EventRecycledHazardous: true,
	EventDisposed:          true,
}

func KnownEventType(eventType string) bool { return knownEventTypes[eventType] }

// TerminalEventType reports whether an event type ends an instance's
// active life. Recorded terminal events pin the instance's state.
func TerminalEventType(eventType string) bool {
	switch eventType {
	case EventRecycled, EventRecycledHazardous, EventDisposed:
		return true
	}
	return false
}

// RecycledEventType reports whether an event type counts as a recycling
// outcome for labeling.
func RecycledEventType(eventType string) bool {
	return eventType == EventRecycled || eventType == EventRecycledHazardous
}

// ProductInstance is a physical unit of a product. Created exactly once
// at registration; ProductID is immutable afterwards.
type ProductInstance struct {
	InstanceID   uint   `gorm:"primaryKey"`
	SerialNumber string `gorm:"size:100;not null;uniqueIndex"`
	ProductID    string `gorm:"size:20;index;not null"`
	CreatedAt    time.Time
}

// LifecycleEvent is an append-only record of an instance transition.
// Ordering is by EventDate, ties broken by EventID insertion order.
type LifecycleEvent struct {
	EventID    uint      `gorm:"primaryKey"`
	InstanceID uint      `gorm:"index;not null"`
	EventType  string    `gorm:"size:30;not null"`
	EventDate  time.Time `gorm:"index;not null"`
}
