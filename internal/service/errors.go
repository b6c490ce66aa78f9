package service

import (
	"context"
	"errors"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

// Domain errors; handlers map them to status codes.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidEmail       = errors.New("enter a valid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrSystemNotFound     = errors.New("system not found")
	ErrForbidden          = errors.New("you do not have permission to access this system")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidTimeRange   = errors.New("invalid time range: from must be <= to")
)

// record appends an audit event; failures never fail the caller's operation.
func record(ctx context.Context, repo repository.ActivityRepo, userID int, typ, desc string, meta map[string]any) {
	if repo == nil {
		return
	}
	_ = repo.Append(ctx, models.ActivityEvent{
		UserID:      userID,
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
}
