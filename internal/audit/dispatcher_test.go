package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDispatcherDisabledReturnsNil(t *testing.T) {
	d := NewDispatcher(Config{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatalf("disabled dispatcher must be nil")
	}
	d.Emit(context.Background(), Event{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatalf("nil dispatcher must report zero drops")
	}
}

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)

	d.Emit(context.Background(), Event{EventType: "login", Email: "mod@example.edu"})

	select {
	case event := <-sink.Events():
		if event.EventType != "login" || event.Email != "mod@example.edu" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}

	d.Close()
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := &blockingSink{release: block}
	d := NewDispatcher(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// first event occupies the worker, second fills the buffer, the rest drop
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "x"})
	}

	if d.Dropped() == 0 {
		t.Fatalf("expected drops under backpressure")
	}

	close(block)
	d.Close()
}

func TestDispatcherCloseDrains(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&syncWriter{w: &buf})
	d := NewDispatcher(Config{Enabled: true, BufferSize: 64}, sink)

	for i := 0; i < 20; i++ {
		d.Emit(context.Background(), Event{EventType: "request", Success: true})
	}
	d.Close()

	lines := strings.Count(buf.String(), "\n")
	if lines != 20 {
		t.Fatalf("expected 20 drained events, got %d", lines)
	}

	var event Event
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if err := json.Unmarshal([]byte(first), &event); err != nil {
		t.Fatalf("drained line is not json: %v", err)
	}
	if event.EventType != "request" || !event.Success {
		t.Fatalf("unexpected drained event %+v", event)
	}
}

func TestDispatcherEmitAfterCloseIsNoOp(t *testing.T) {
	sink := NewChannelSink(8)
	d := NewDispatcher(Config{Enabled: true, BufferSize: 8}, sink)
	d.Close()
	d.Emit(context.Background(), Event{EventType: "late"})

	select {
	case event := <-sink.Events():
		t.Fatalf("unexpected delivery after close: %+v", event)
	default:
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Emit(ctx context.Context, event Event) {
	<-s.release
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
