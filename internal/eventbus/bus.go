// Package eventbus is the in-process publish/subscribe core that connects
// domain producers (auth, booking, payment flows) to consumers
// (notifications, analytics, monitoring, error reporting).
//
// Listeners for one event name run in descending priority order, equal
// priorities in registration order. A failing listener is logged and never
// affects other listeners or the emitter. Each emission iterates over a
// snapshot of the listener sequence, so listeners may register, unregister
// or emit from inside their own invocation.
package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxListeners is the per-name count at which a new Bus starts warning.
const DefaultMaxListeners = 100

// Listener handles one emitted payload. A returned error or a panic is
// treated as a listener failure.
type Listener func(ctx context.Context, payload any) error

// Unsubscribe removes the listener it was returned for. Calling it more than
// once is a no-op.
type Unsubscribe func()

// Emitter is the producer side of the bus.
type Emitter interface {
	Emit(ctx context.Context, name string, payload any)
	EmitSync(ctx context.Context, name string, payload any)
}

// Option configures a listener at registration.
type Option func(*entry)

// WithPriority sets the listener priority. Higher runs first; default is 0.
func WithPriority(p int) Option {
	return func(e *entry) {
		e.priority = p
	}
}

// Async runs the listener in its own goroutine. Emit waits for it to finish,
// EmitSync does not.
func Async() Option {
	return func(e *entry) {
		e.async = true
	}
}

// Bus is an in-process event bus. It is safe for concurrent use.
type Bus struct {
	mu           sync.Mutex
	reg          *registry
	maxListeners int
	log          *zap.Logger

	detached sync.WaitGroup
}

var _ Emitter = (*Bus)(nil)

// New returns an empty Bus logging through log. A nil log discards output.
func New(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		reg:          newRegistry(),
		maxListeners: DefaultMaxListeners,
		log:          log.Named("eventbus"),
	}
}

var (
	defaultOnce sync.Once
	defaultBus  *Bus
)

// Default returns the process-wide bus, creating it on first use with the
// global zap logger. Prefer passing a *Bus explicitly; Default exists for
// code that cannot be handed one.
func Default() *Bus {
	defaultOnce.Do(func() {
		defaultBus = New(zap.L())
	})
	return defaultBus
}

// On registers fn for name and returns a handle that removes it.
func (b *Bus) On(name string, fn Listener, opts ...Option) Unsubscribe {
	return b.register(name, fn, false, opts)
}

// Once registers a listener that is removed after its first invocation,
// whether that invocation succeeded or not.
func (b *Bus) Once(name string, fn Listener, opts ...Option) Unsubscribe {
	return b.register(name, fn, true, opts)
}

func (b *Bus) register(name string, fn Listener, once bool, opts []Option) Unsubscribe {
	e := &entry{fn: fn, once: once}
	for _, opt := range opts {
		opt(e)
	}

	b.mu.Lock()
	n := b.reg.add(name, e)
	limit := b.maxListeners
	b.mu.Unlock()

	if limit > 0 && n >= limit {
		b.log.Warn("listener count reached max listeners",
			zap.String("event", name),
			zap.Int("count", n),
			zap.Int("max_listeners", limit),
		)
	}

	return func() {
		b.mu.Lock()
		b.reg.remove(name, e)
		b.mu.Unlock()
	}
}

// Off drops every listener registered for name.
func (b *Bus) Off(name string) {
	b.mu.Lock()
	b.reg.clear(name)
	b.mu.Unlock()
}

func (b *Bus) RemoveAllListeners() {
	b.mu.Lock()
	b.reg.clearAll()
	b.mu.Unlock()
}

func (b *Bus) ListenerCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reg.count(name)
}

// EventNames returns the names that currently have listeners, sorted.
func (b *Bus) EventNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reg.names()
}

// SetMaxListeners sets the per-name count at which a warning is logged.
// Registration is never refused. n <= 0 disables the warning.
func (b *Bus) SetMaxListeners(n int) {
	b.mu.Lock()
	b.maxListeners = n
	b.mu.Unlock()
}

func (b *Bus) MaxListeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxListeners
}
