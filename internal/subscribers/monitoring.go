package subscribers

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"bookingsvc/internal/domain"
	"bookingsvc/internal/eventbus"
)

// MonitorPriority puts the monitor ahead of every other listener so it sees
// events even when a later listener hangs.
const MonitorPriority = 1000

type EventGauge struct {
	Name     string
	Count    int64
	LastSeen time.Time
}

// Monitor keeps in-memory counters of observed events.
type Monitor struct {
	mu     sync.Mutex
	gauges map[string]*EventGauge
	now    func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{gauges: make(map[string]*EventGauge), now: time.Now}
}

func (m *Monitor) Register(bus *eventbus.Bus) eventbus.Unsubscribe {
	names := append(slices.Clone(domain.DomainEvents), domain.EventAppError)

	subs := make([]eventbus.Unsubscribe, 0, len(names))
	for _, name := range names {
		subs = append(subs, bus.On(name, m.observe(name), eventbus.WithPriority(MonitorPriority)))
	}
	return group(subs...)
}

func (m *Monitor) observe(name string) eventbus.Listener {
	return func(ctx context.Context, _ any) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		g, ok := m.gauges[name]
		if !ok {
			g = &EventGauge{Name: name}
			m.gauges[name] = g
		}
		g.Count++
		g.LastSeen = m.now().UTC()
		return nil
	}
}

// Snapshot returns the gauges sorted by event name.
func (m *Monitor) Snapshot() []EventGauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]EventGauge, 0, len(m.gauges))
	for _, g := range m.gauges {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b EventGauge) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
