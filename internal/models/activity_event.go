package models

import "time"

// Activity event types.
const (
	ActivityRegister          = "REGISTER"
	ActivitySystemCreated     = "SYSTEM_CREATED"
	ActivitySystemUpdated     = "SYSTEM_UPDATED"
	ActivitySystemDeleted     = "SYSTEM_DELETED"
	ActivityMeasurementAdded  = "MEASUREMENT_ADDED"
	ActivityPreferencesChange = "PREFERENCES_CHANGED"
)

// ActivityEvent is a single audit log entry.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
