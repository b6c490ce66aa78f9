package models

import "time"

type Preferences struct {
	UserID    int       `json:"-"`
	DarkMode  bool      `json:"dark_mode"`
	UpdatedAt time.Time `json:"updated_at"`
}
