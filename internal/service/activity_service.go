package service

import (
	"context"
	"strings"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

// LogFilter narrows the activity log; zero values mean no bound.
type LogFilter struct {
	From time.Time
	To   time.Time
	Type string
}

type ActivityLogService struct {
	repo repository.ActivityRepo
}

func NewActivityLogService(repo repository.ActivityRepo) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}
	return from, to, normalizeEventType(f.Type), nil
}

func (s *ActivityLogService) List(ctx context.Context, userID int, f LogFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID, from, to, typ)
}
