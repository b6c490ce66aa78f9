package handlers

import (
	"context"
	"net/http"
	"time"

	"hydroponics/internal/measurement"
	"hydroponics/internal/models"
	"hydroponics/internal/repository"
	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastGenEmail       string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (int, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, email, password string) (string, error) {
	m.lastGenEmail = email
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSystems struct {
	created   models.System
	detail    models.SystemDetail
	list      []models.System
	count     int
	err       error
	lastOwner int
	lastID    int
	lastInput service.SystemInput
	lastQuery repository.SystemQuery
	deleted   int
}

func (m *mockSystems) Create(_ context.Context, ownerID int, in service.SystemInput) (models.System, error) {
	m.lastOwner, m.lastInput = ownerID, in
	return m.created, m.err
}
func (m *mockSystems) Get(_ context.Context, ownerID, id int) (models.SystemDetail, error) {
	m.lastOwner, m.lastID = ownerID, id
	return m.detail, m.err
}
func (m *mockSystems) List(_ context.Context, ownerID int, q repository.SystemQuery) ([]models.System, int, error) {
	m.lastOwner, m.lastQuery = ownerID, q
	return m.list, m.count, m.err
}
func (m *mockSystems) Update(_ context.Context, ownerID, id int, in service.SystemInput) (models.System, error) {
	m.lastOwner, m.lastID, m.lastInput = ownerID, id, in
	return m.created, m.err
}
func (m *mockSystems) Delete(_ context.Context, ownerID, id int) error {
	m.lastOwner, m.lastID = ownerID, id
	if m.err == nil {
		m.deleted++
	}
	return m.err
}

type mockMeasurements struct {
	list       []models.Measurement
	count      int
	latest     []models.Measurement
	created    models.Measurement
	bundle     *measurement.ChartSeriesBundle
	err        error
	latestErr  error
	lastQuery  repository.MeasurementQuery
	lastSub    measurement.Submission
	lastUser   int
	lastSystem int
}

func (m *mockMeasurements) List(_ context.Context, userID, systemID int, q repository.MeasurementQuery) ([]models.Measurement, int, error) {
	m.lastUser, m.lastSystem, m.lastQuery = userID, systemID, q
	return m.list, m.count, m.err
}
func (m *mockMeasurements) Latest(_ context.Context, userID, systemID, limit int) ([]models.Measurement, error) {
	m.lastUser, m.lastSystem = userID, systemID
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if len(m.latest) > limit {
		return m.latest[:limit], nil
	}
	return m.latest, nil
}
func (m *mockMeasurements) Create(_ context.Context, userID, systemID int, s measurement.Submission) (models.Measurement, error) {
	m.lastUser, m.lastSystem, m.lastSub = userID, systemID, s
	if m.err != nil {
		return models.Measurement{}, m.err
	}
	if err := measurement.Validate(s); err != nil {
		return models.Measurement{}, err
	}
	return m.created, nil
}
func (m *mockMeasurements) Chart(_ context.Context, userID, systemID int, q repository.MeasurementQuery) (*measurement.ChartSeriesBundle, error) {
	m.lastUser, m.lastSystem, m.lastQuery = userID, systemID, q
	return m.bundle, m.err
}

type mockPreferences struct {
	prefs   models.Preferences
	err     error
	setCall *bool
}

func (m *mockPreferences) Get(_ context.Context, userID int) (models.Preferences, error) {
	return m.prefs, m.err
}
func (m *mockPreferences) SetDarkMode(_ context.Context, userID int, dark bool) (models.Preferences, error) {
	m.setCall = &dark
	m.prefs.DarkMode = dark
	return m.prefs, m.err
}

type mockActivityLog struct {
	resp     []models.ActivityEvent
	err      error
	lastUser int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockActivityLog) List(_ context.Context, userID int, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastUser = userID
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{PageSize: 2, MaxPageSize: 5})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
