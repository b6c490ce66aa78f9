package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

// memRepos is an in-memory stand-in for the SQLite repositories.
type memRepos struct {
	mu           sync.Mutex
	systems      map[int]models.System
	measurements []models.Measurement
	prefs        map[int]models.Preferences
	events       []models.ActivityEvent
	nextID       int

	failCreate error
	failLatest error
}

func newMemRepos() *memRepos {
	return &memRepos{
		systems: make(map[int]models.System),
		prefs:   make(map[int]models.Preferences),
		nextID:  1,
	}
}

func (m *memRepos) id() int {
	m.nextID++
	return m.nextID - 1
}

// systems

type memSystems struct{ *memRepos }

func (r memSystems) Create(_ context.Context, s models.System) (models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	s.CreatedAt = time.Now().UTC()
	r.systems[s.ID] = s
	return s, nil
}

func (r memSystems) Get(_ context.Context, ownerID, id int) (*models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.systems[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	return &s, nil
}

func (r memSystems) List(_ context.Context, ownerID int, _ repository.SystemQuery) ([]models.System, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.System
	for _, s := range r.systems {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r memSystems) ListAll(_ context.Context) ([]models.System, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.System, 0, len(r.systems))
	for _, s := range r.systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSystems) Update(_ context.Context, s models.System) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.systems[s.ID]
	if !ok || cur.OwnerID != s.OwnerID {
		return false, nil
	}
	cur.Name, cur.Location = s.Name, s.Location
	r.systems[s.ID] = cur
	return true, nil
}

func (r memSystems) Delete(_ context.Context, ownerID, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.systems[id]
	if !ok || cur.OwnerID != ownerID {
		return false, nil
	}
	delete(r.systems, id)
	return true, nil
}

func (r memSystems) OwnerOf(_ context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.systems[id].OwnerID, nil
}

// measurements

type memMeasurements struct{ *memRepos }

func (r memMeasurements) Create(_ context.Context, m models.Measurement) (models.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return models.Measurement{}, r.failCreate
	}
	m.ID = r.id()
	r.measurements = append(r.measurements, m)
	return m, nil
}

func (r memMeasurements) List(_ context.Context, systemID int, _ repository.MeasurementQuery) ([]models.Measurement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Measurement
	for _, m := range r.measurements {
		if m.SystemID == systemID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

func (r memMeasurements) Latest(_ context.Context, systemID, limit int) ([]models.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLatest != nil {
		return nil, r.failLatest
	}
	var out []models.Measurement
	for i := len(r.measurements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.measurements[i].SystemID == systemID {
			out = append(out, r.measurements[i])
		}
	}
	return out, nil
}

// preferences

type memPrefs struct{ *memRepos }

func (r memPrefs) Save(_ context.Context, p models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[p.UserID] = p
	return nil
}

func (r memPrefs) Load(_ context.Context, userID int) (models.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.prefs[userID]; ok {
		return p, nil
	}
	return models.Preferences{UserID: userID}, nil
}

// activity

type memActivity struct {
	*memRepos

	gotFrom, gotTo time.Time
	gotType        string
	calls          int
	err            error
}

func (r *memActivity) Append(_ context.Context, e models.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memActivity) List(_ context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.gotFrom, r.gotTo, r.gotType = from, to, typ
	if r.err != nil {
		return nil, r.err
	}
	var out []models.ActivityEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memActivity) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var errDBDown = errors.New("db down")
