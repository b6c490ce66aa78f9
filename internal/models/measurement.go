package models

import "time"

// Measurement is one timestamped reading of a system.
type Measurement struct {
	ID          int       `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	PH          float64   `json:"ph"`
	Temperature float64   `json:"temperature"` // °C
	TDS         int       `json:"tds"`         // ppm
	SystemID    int       `json:"system"`
}
