package subscribers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/domain/stats"
	"bookingsvc/internal/eventbus"
)

// AnalyticsPriority keeps analytics behind every user-facing listener.
const AnalyticsPriority = -10

type Analytics struct {
	stats stats.Service
	log   *zap.Logger
}

func NewAnalytics(svc stats.Service, log *zap.Logger) *Analytics {
	return &Analytics{stats: svc, log: log.Named("analytics")}
}

func (a *Analytics) Register(bus *eventbus.Bus) eventbus.Unsubscribe {
	subs := make([]eventbus.Unsubscribe, 0, len(domain.DomainEvents)+1)
	for _, name := range domain.DomainEvents {
		subs = append(subs, bus.On(name, a.record(name), eventbus.WithPriority(AnalyticsPriority), eventbus.Async()))
	}

	subs = append(subs, eventbus.SubscribeOnce(bus, domain.BookingCreatedTopic,
		func(ctx context.Context, ev domain.BookingEvent) error {
			a.log.Info("first booking since start",
				zap.String("booking_id", ev.BookingID),
				zap.String("resource", ev.Resource),
			)
			return nil
		},
		eventbus.WithPriority(AnalyticsPriority),
	))

	return group(subs...)
}

func (a *Analytics) record(name string) eventbus.Listener {
	return func(ctx context.Context, _ any) error {
		if err := a.stats.Record(ctx, name); err != nil {
			return fmt.Errorf("record %s: %w", name, err)
		}
		return nil
	}
}
