// Package subscribers holds the event consumers of the platform.
package subscribers

import (
	"go.uber.org/zap"

	"bookingsvc/internal/domain/stats"
	"bookingsvc/internal/eventbus"
	"bookingsvc/internal/infrastructure/async"
)

type Set struct {
	Notifier  *Notifier
	Analytics *Analytics
	Monitor   *Monitor
	Errors    *ErrorReporter
}

func NewSet(pool *async.WorkerPool, sender Sender, statsSvc stats.Service, log *zap.Logger) *Set {
	return &Set{
		Notifier:  NewNotifier(pool, sender, log),
		Analytics: NewAnalytics(statsSvc, log),
		Monitor:   NewMonitor(),
		Errors:    NewErrorReporter(log),
	}
}

// Register attaches every consumer to bus. The returned Unsubscribe detaches
// all of them.
func (s *Set) Register(bus *eventbus.Bus) eventbus.Unsubscribe {
	return group(
		s.Monitor.Register(bus),
		s.Notifier.Register(bus),
		s.Errors.Register(bus),
		s.Analytics.Register(bus),
	)
}

func group(subs ...eventbus.Unsubscribe) eventbus.Unsubscribe {
	return func() {
		for _, unsub := range subs {
			unsub()
		}
	}
}
