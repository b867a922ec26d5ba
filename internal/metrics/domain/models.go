package domain

import (
	"time"

	"gorm.io/datatypes"
)

// EventType names a discrete user interaction tracked by the frontend.
type EventType string

const (
	EventButtonClick EventType = "BUTTON_CLICK"
	EventPageView    EventType = "PAGE_VIEW"
	EventFormSubmit  EventType = "FORM_SUBMIT"
)

var knownEventTypes = map[EventType]struct{}{
	EventButtonClick: {},
	EventPageView:    {},
	EventFormSubmit:  {},
}

func (t EventType) Valid() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// MetricEvent is the inbound event payload.
type MetricEvent struct {
	Event         EventType      `json:"event"`
	EventMetadata map[string]any `json:"eventMetadata"`
	UserID        *int64         `json:"userId,omitempty"`
}

// MetricEventRecord is the persisted row. Rows are insert-only; the id and
// event_time are assigned server-side at write time.
type MetricEventRecord struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	Event     string         `json:"event" gorm:"type:text;not null"`
	EventTime time.Time      `json:"event_time" gorm:"not null"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"not null"`
	UserID    *int64         `json:"user_id" gorm:"column:user_id"`
}

// TableName sets the database table name.
func (MetricEventRecord) TableName() string { return "metrics" }
