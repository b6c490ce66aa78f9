package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hydroponics/internal/models"
)

type PreferencesSQLite struct {
	db *sql.DB
}

func NewPreferencesSQLite(db *sql.DB) *PreferencesSQLite {
	return &PreferencesSQLite{db: db}
}

var _ PreferencesRepo = (*PreferencesSQLite)(nil)

const (
	upsertPreferencesSQL = `
		INSERT INTO preferences (user_id, dark_mode, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			dark_mode=excluded.dark_mode,
			updated_at=excluded.updated_at
	`

	selectPreferencesSQL = `SELECT user_id, dark_mode, updated_at FROM preferences WHERE user_id=?`
)

// Save inserts or updates the user's row; a zero UpdatedAt is set to now.
func (r *PreferencesSQLite) Save(ctx context.Context, p models.Preferences) error {
	ts := p.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertPreferencesSQL, p.UserID, p.DarkMode, formatTime(ts))
	return err
}

// Load returns the user's preferences; a user without a row gets the defaults.
func (r *PreferencesSQLite) Load(ctx context.Context, userID int) (models.Preferences, error) {
	var (
		p  models.Preferences
		ts string
	)
	err := r.db.QueryRowContext(ctx, selectPreferencesSQL, userID).Scan(&p.UserID, &p.DarkMode, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Preferences{UserID: userID}, nil
		}
		return models.Preferences{}, err
	}
	if p.UpdatedAt, err = parseTime(ts); err != nil {
		return models.Preferences{}, err
	}
	return p, nil
}
