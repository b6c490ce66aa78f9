package service

import (
	"context"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (int, error)
	GenerateToken(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Systems manages a user's hydroponic systems. Other owners' systems are
// reported as ErrSystemNotFound.
type Systems interface {
	Create(ctx context.Context, ownerID int, in SystemInput) (models.System, error)
	Get(ctx context.Context, ownerID, id int) (models.SystemDetail, error)
	List(ctx context.Context, ownerID int, q repository.SystemQuery) ([]models.System, int, error)
	Update(ctx context.Context, ownerID, id int, in SystemInput) (models.System, error)
	Delete(ctx context.Context, ownerID, id int) error
}

// Measurements reads and records readings of a system. A system owned by
// someone else yields ErrForbidden.
type Measurements interface {
	List(ctx context.Context, userID, systemID int, q repository.MeasurementQuery) ([]models.Measurement, int, error)
	Latest(ctx context.Context, userID, systemID, limit int) ([]models.Measurement, error)
	Create(ctx context.Context, userID, systemID int, s measurement.Submission) (models.Measurement, error)
	Chart(ctx context.Context, userID, systemID int, q repository.MeasurementQuery) (*measurement.ChartSeriesBundle, error)
}

type Preferences interface {
	Get(ctx context.Context, userID int) (models.Preferences, error)
	SetDarkMode(ctx context.Context, userID int, dark bool) (models.Preferences, error)
}

// ActivityLog exposes the caller's audit trail with filtering.
type ActivityLog interface {
	List(ctx context.Context, userID int, f LogFilter) ([]models.ActivityEvent, error)
}

// Simulator records synthetic readings until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Authorization
	Systems
	Measurements
	Preferences
	ActivityLog
	Simulator
}

// Options carries the configuration the services need.
type Options struct {
	SigningKey      string
	TokenTTL        time.Duration
	ChartLayout     string
	ChartLocation   *time.Location
	OnSimulatorTick TickObserver
}

func NewService(repos *repository.Repository, opts Options) *Service {
	chart := measurement.ChartOptions{Layout: opts.ChartLayout, Location: opts.ChartLocation}
	sim := NewSimulatorService(repos.Systems, repos.Measurements, nil)
	sim.OnTick(opts.OnSimulatorTick)
	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.Activity, opts.SigningKey, opts.TokenTTL),
		Systems:       NewSystemService(repos.Systems, repos.Measurements, repos.Activity),
		Measurements:  NewMeasurementService(repos.Systems, repos.Measurements, repos.Preferences, repos.Activity, chart),
		Preferences:   NewPreferencesService(repos.Preferences, repos.Activity),
		ActivityLog:   NewActivityLogService(repos.Activity),
		Simulator:     sim,
	}
}
