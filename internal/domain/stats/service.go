package stats

import (
	"context"
	"time"
)

type Service interface {
	Record(ctx context.Context, eventName string) error
	EventCounts(ctx context.Context) ([]EventCount, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, eventName string) error {
	return s.repo.IncrementEventCount(ctx, eventName, s.now().UTC())
}

func (s *service) EventCounts(ctx context.Context) ([]EventCount, error) {
	return s.repo.GetEventCounts(ctx)
}
