package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher forwards session and request audit events to a sink on a
// dedicated goroutine so emitters never wait on the sink. A nil *Dispatcher
// is the disabled form: every method is a no-op on it.
type Dispatcher struct {
	sink       Sink
	queue      chan Event
	stop       chan struct{}
	stopped    sync.WaitGroup
	dropIfFull bool
	dropped    atomic.Uint64
	closing    atomic.Bool
	closeOnce  sync.Once
}

// NewDispatcher returns nil when auditing is disabled; the client stores and
// calls the nil dispatcher directly.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}

	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		queue:      make(chan Event, buffer),
		stop:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}

	d.stopped.Add(1)
	go d.forward()

	return d
}

// forward is the dispatcher goroutine. After stop it drains whatever is
// already queued so Close never loses buffered events.
func (d *Dispatcher) forward() {
	defer d.stopped.Done()

	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		case <-d.stop:
			d.drain()
			return
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.queue:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit enqueues event for delivery. With DropIfFull set, a full queue drops
// the event and bumps the drop counter instead of blocking the session or
// gateway path that emitted it.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closing.Load() {
		return
	}

	if d.dropIfFull {
		select {
		case d.queue <- event:
		default:
			d.dropped.Add(1)
		}
		return
	}

	var cancelled <-chan struct{}
	if ctx != nil {
		cancelled = ctx.Done()
	}
	select {
	case d.queue <- event:
	case <-cancelled:
	case <-d.stop:
	}
}

// Close stops the dispatcher and blocks until the queue has drained.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closing.Store(true)
		close(d.stop)
		d.stopped.Wait()
	})
}

// Dropped reports how many events were discarded under backpressure.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
