package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of goroutines. Each task
// gets its own timeout; a panicking task is logged and the worker keeps
// going.
type WorkerPool struct {
	tasks   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	log     *zap.Logger

	closing   chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(parent context.Context, size, queue int, timeout time.Duration, log *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if queue < 0 {
		queue = 0
	}

	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		tasks:   make(chan Task, queue),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		log:     log,
		closing: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *WorkerPool) run(id int, task Task) {
	ctx, cancel := p.ctx, context.CancelFunc(func() {})
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(p.ctx, p.timeout)
	}
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	task(ctx)
}

// Submit blocks until a worker or queue slot accepts the task, ctx is done,
// or the pool is shut down. It reports whether the task was accepted.
func (p *WorkerPool) Submit(ctx context.Context, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case <-p.closing:
		return false
	default:
	}

	select {
	case <-ctx.Done():
		return false
	case <-p.closing:
		return false
	case <-p.ctx.Done():
		return false
	case p.tasks <- task:
		return true
	}
}

// Shutdown stops accepting tasks, lets queued ones finish, and waits for the
// workers. Tasks still running after ctx is done see their context
// cancelled.
func (p *WorkerPool) Shutdown(ctx context.Context) {
	// Release Submit calls blocked on a full pool; they hold the read lock.
	p.closeOnce.Do(func() { close(p.closing) })

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		p.cancel()
		<-done
	}
	p.cancel()
}
