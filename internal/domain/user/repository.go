package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	SetActive(ctx context.Context, userID string, isActive bool) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}
