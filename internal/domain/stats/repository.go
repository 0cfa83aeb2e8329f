package stats

import (
	"context"
	"time"
)

type Repository interface {
	IncrementEventCount(ctx context.Context, eventName string, at time.Time) error
	GetEventCounts(ctx context.Context) ([]EventCount, error)
}
