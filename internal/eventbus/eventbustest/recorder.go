// Package eventbustest provides an eventbus.Emitter that records emissions
// instead of dispatching them.
package eventbustest

import (
	"context"
	"sync"

	"bookingsvc/internal/eventbus"
)

type Emission struct {
	Name    string
	Payload any
	Awaited bool
}

type Recorder struct {
	mu        sync.Mutex
	emissions []Emission
}

var _ eventbus.Emitter = (*Recorder)(nil)

func (r *Recorder) Emit(ctx context.Context, name string, payload any) {
	r.record(Emission{Name: name, Payload: payload, Awaited: true})
}

func (r *Recorder) EmitSync(ctx context.Context, name string, payload any) {
	r.record(Emission{Name: name, Payload: payload})
}

func (r *Recorder) record(e Emission) {
	r.mu.Lock()
	r.emissions = append(r.emissions, e)
	r.mu.Unlock()
}

func (r *Recorder) Emissions() []Emission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Emission(nil), r.emissions...)
}

// Names returns the emitted event names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.emissions))
	for _, e := range r.emissions {
		out = append(out, e.Name)
	}
	return out
}
