package core

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/native/pkg/errors"
)

// Event is one unit of work for the reconciliation loop: a message to
// dispatch or a request to rebuild from the current data.
type Event struct {
	Message *Message
	Rebuild bool
}

type taskKey struct{}

// InTask reports whether ctx belongs to a task started by Proxy.Spawn.
func InTask(ctx context.Context) bool {
	v, _ := ctx.Value(taskKey{}).(bool)
	return v
}

// Proxy is the thread-safe entry point into the reconciliation loop. Any
// goroutine may post; only the loop drains. Events are delivered in the
// order they were posted.
type Proxy struct {
	mu     sync.Mutex
	queue  []Event
	closed bool

	// ready holds at most one pending wakeup.
	ready chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
	logger *slog.Logger
}

// NewProxy creates a proxy. Tasks started with Spawn run under a child of
// ctx and are cancelled by Close.
func NewProxy(ctx context.Context, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.WithValue(ctx, taskKey{}, true))
	return &Proxy{
		ready:  make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

func (p *Proxy) push(ev Event) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.ErrClosed
	}
	p.queue = append(p.queue, ev)
	p.mu.Unlock()

	select {
	case p.ready <- struct{}{}:
	default:
	}
	return nil
}

// Post queues msg for dispatch. It returns errors.ErrClosed after Close.
func (p *Proxy) Post(msg *Message) error {
	return p.push(Event{Message: msg})
}

// RequestRebuild queues a rebuild of the view tree.
func (p *Proxy) RequestRebuild() error {
	return p.push(Event{Rebuild: true})
}

// Spawn runs task on its own goroutine. Errors are logged and panics are
// reported through the errors handler; neither stops other tasks.
func (p *Proxy) Spawn(task Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Go is called under mu so it cannot race with the Wait in Close.
	p.group.Go(func() error {
		defer errors.Recover("proxy.task")
		if err := task(p.ctx, p); err != nil && p.ctx.Err() == nil {
			p.logger.Warn("proxy task failed", "err", err)
		}
		return nil
	})
}

// Ready is signalled when events may be waiting.
func (p *Proxy) Ready() <-chan struct{} {
	return p.ready
}

// Pop removes the oldest event.
func (p *Proxy) Pop() (Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return Event{}, false
	}
	ev := p.queue[0]
	p.queue[0] = Event{}
	p.queue = p.queue[1:]
	return ev, true
}

// Drain removes and returns all queued events.
func (p *Proxy) Drain() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := p.queue
	p.queue = nil
	return events
}

// Len returns the number of queued events.
func (p *Proxy) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Close stops accepting events, cancels running tasks and waits for them
// to return. Queued events are discarded.
func (p *Proxy) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.queue = nil
	p.mu.Unlock()

	p.cancel()
	_ = p.group.Wait()
}
