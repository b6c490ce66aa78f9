package models

import "time"

// System is a named hydroponic installation owned by a user.
type System struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int       `json:"owner"`
}

// SystemDetail is the retrieve payload: the system plus its newest readings.
type SystemDetail struct {
	System             System        `json:"hydroponic_system"`
	LatestMeasurements []Measurement `json:"latest_measurements"`
}
