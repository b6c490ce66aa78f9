package service

import (
	"context"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

type PreferencesService struct {
	repo     repository.PreferencesRepo
	activity repository.ActivityRepo
}

func NewPreferencesService(repo repository.PreferencesRepo, activity repository.ActivityRepo) *PreferencesService {
	return &PreferencesService{repo: repo, activity: activity}
}

func (s *PreferencesService) Get(ctx context.Context, userID int) (models.Preferences, error) {
	return s.repo.Load(ctx, userID)
}

func (s *PreferencesService) SetDarkMode(ctx context.Context, userID int, dark bool) (models.Preferences, error) {
	p := models.Preferences{UserID: userID, DarkMode: dark, UpdatedAt: time.Now().UTC()}
	if err := s.repo.Save(ctx, p); err != nil {
		return models.Preferences{}, err
	}
	record(ctx, s.activity, userID, models.ActivityPreferencesChange, "Preferences changed",
		map[string]any{"dark_mode": dark})
	return p, nil
}
