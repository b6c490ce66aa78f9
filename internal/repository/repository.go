package repository

import (
	"context"
	"database/sql"
	"time"

	"hydroponics/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, email, hash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type SystemRepo interface {
	Create(ctx context.Context, s models.System) (models.System, error)
	// Get returns (nil, nil) when the system does not exist or belongs to another owner.
	Get(ctx context.Context, ownerID, id int) (*models.System, error)
	List(ctx context.Context, ownerID int, q SystemQuery) ([]models.System, int, error)
	ListAll(ctx context.Context) ([]models.System, error)
	Update(ctx context.Context, s models.System) (bool, error)
	Delete(ctx context.Context, ownerID, id int) (bool, error)
	OwnerOf(ctx context.Context, id int) (int, error)
}

type MeasurementRepo interface {
	Create(ctx context.Context, m models.Measurement) (models.Measurement, error)
	List(ctx context.Context, systemID int, q MeasurementQuery) ([]models.Measurement, int, error)
	Latest(ctx context.Context, systemID, limit int) ([]models.Measurement, error)
}

type PreferencesRepo interface {
	Save(ctx context.Context, p models.Preferences) error
	Load(ctx context.Context, userID int) (models.Preferences, error)
}

type ActivityRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Auth         Authorization
	Systems      SystemRepo
	Measurements MeasurementRepo
	Preferences  PreferencesRepo
	Activity     ActivityRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:         NewUserRepository(db),
		Systems:      NewSystemSQLite(db),
		Measurements: NewMeasurementSQLite(db),
		Preferences:  NewPreferencesSQLite(db),
		Activity:     NewActivitySQLite(db),
	}
}
