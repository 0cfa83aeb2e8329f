package eventbus

import (
	"slices"
	"sync/atomic"
)

type entry struct {
	fn       Listener
	priority int
	once     bool
	async    bool

	// fired is claimed by the first emission that invokes a once entry.
	fired atomic.Bool
}

// registry maps event names to listener sequences ordered by descending
// priority, insertion order breaking ties. It is not safe for concurrent use;
// Bus serialises access with its own mutex.
type registry struct {
	listeners map[string][]*entry
}

func newRegistry() *registry {
	return &registry{listeners: make(map[string][]*entry)}
}

func (r *registry) add(name string, e *entry) int {
	list := r.listeners[name]

	pos := len(list)
	for i, cur := range list {
		if cur.priority < e.priority {
			pos = i
			break
		}
	}

	r.listeners[name] = slices.Insert(list, pos, e)
	return len(r.listeners[name])
}

func (r *registry) remove(name string, e *entry) bool {
	list, ok := r.listeners[name]
	if !ok {
		return false
	}

	idx := slices.Index(list, e)
	if idx < 0 {
		return false
	}

	next := slices.Delete(list, idx, idx+1)
	if len(next) == 0 {
		delete(r.listeners, name)
	} else {
		r.listeners[name] = next
	}
	return true
}

func (r *registry) snapshot(name string) []*entry {
	list := r.listeners[name]
	if len(list) == 0 {
		return nil
	}
	return slices.Clone(list)
}

func (r *registry) count(name string) int {
	return len(r.listeners[name])
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.listeners))
	for name := range r.listeners {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (r *registry) clear(name string) {
	delete(r.listeners, name)
}

func (r *registry) clearAll() {
	r.listeners = make(map[string][]*entry)
}
