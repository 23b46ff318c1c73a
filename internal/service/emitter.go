package service

import (
	"context"
	"sync"
)

// ─────────────────────────────────────────────────────────────
// EventEmitter — decouples services from their front-ends
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for notifying front-ends of state changes.
// Services receive this interface instead of a concrete UI or protocol
// handle, which makes them independently testable with a mock emitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Broadcaster fans events out to every subscriber. The terminal UI and the
// MCP server subscribe after the services are built.
type Broadcaster struct {
	mu   sync.RWMutex
	subs []func(ctx context.Context, event string, data any)
}

// Subscribe registers fn for every subsequent event.
func (b *Broadcaster) Subscribe(fn func(ctx context.Context, event string, data any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Broadcaster) Emit(ctx context.Context, event string, data any) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ctx, event, data)
	}
}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	mu     sync.Mutex
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Count returns how many times event was emitted.
func (m *MockEmitter) Count(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Events {
		if e.Event == event {
			n++
		}
	}
	return n
}
