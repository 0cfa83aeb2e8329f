package eventbus

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Emit invokes every listener registered for name and returns once all of
// them, async ones included, have finished. Failures are logged, never
// returned; returning does not mean every listener succeeded.
func (b *Bus) Emit(ctx context.Context, name string, payload any) {
	var pending sync.WaitGroup
	b.dispatch(ctx, name, payload, &pending)
	pending.Wait()
}

// EmitSync invokes every listener registered for name and returns without
// waiting for async listeners to finish. Those run on a context detached from
// ctx's cancellation, so they outlive a finished request. Drain waits for
// them.
func (b *Bus) EmitSync(ctx context.Context, name string, payload any) {
	b.dispatch(ctx, name, payload, nil)
}

func (b *Bus) dispatch(ctx context.Context, name string, payload any, pending *sync.WaitGroup) {
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.Lock()
	listeners := b.reg.snapshot(name)
	b.mu.Unlock()

	for _, e := range listeners {
		if e.once && !e.fired.CompareAndSwap(false, true) {
			continue
		}

		if e.async {
			b.start(ctx, name, e, payload, pending)
		} else {
			b.invoke(ctx, name, e, payload)
		}

		if e.once {
			b.mu.Lock()
			b.reg.remove(name, e)
			b.mu.Unlock()
		}
	}
}

func (b *Bus) start(ctx context.Context, name string, e *entry, payload any, pending *sync.WaitGroup) {
	if pending == nil {
		b.detached.Add(1)
		go func() {
			defer b.detached.Done()
			b.invoke(context.WithoutCancel(ctx), name, e, payload)
		}()
		return
	}

	pending.Add(1)
	go func() {
		defer pending.Done()
		b.invoke(ctx, name, e, payload)
	}()
}

// Drain waits for async listeners started by EmitSync. It returns ctx.Err()
// if ctx is done first. Call it once emitters have stopped, before closing
// resources those listeners use.
func (b *Bus) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.detached.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) invoke(ctx context.Context, name string, e *entry, payload any) {
	err := call(ctx, e.fn, payload)
	if err != nil {
		b.log.Error("event listener failed",
			zap.String("event", name),
			zap.Int("priority", e.priority),
			zap.Bool("once", e.once),
			zap.Error(err),
		)
	}
}

func call(ctx context.Context, fn Listener, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return fn(ctx, payload)
}
