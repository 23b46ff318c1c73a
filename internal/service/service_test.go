package service_test

import (
	"context"
	"testing"

	"whiteboard/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Emitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, "test:event", map[string]string{"foo": "bar"})
	m.Emit(ctx, "test:event2", nil)

	if len(m.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(m.Events))
	}
	if m.Events[0].Event != "test:event" {
		t.Errorf("expected 'test:event', got %q", m.Events[0].Event)
	}
	if m.Count("test:event2") != 1 {
		t.Errorf("expected one 'test:event2', got %d", m.Count("test:event2"))
	}
}

func TestBroadcaster_FansOut(t *testing.T) {
	var b service.Broadcaster
	first, second := &service.MockEmitter{}, &service.MockEmitter{}
	b.Subscribe(first.Emit)
	b.Subscribe(second.Emit)

	b.Emit(context.Background(), service.EventBoardChanged, nil)

	if first.Count(service.EventBoardChanged) != 1 || second.Count(service.EventBoardChanged) != 1 {
		t.Errorf("every subscriber should receive the event: %d, %d",
			first.Count(service.EventBoardChanged), second.Count(service.EventBoardChanged))
	}
}

func TestBroadcaster_NoSubscribers(t *testing.T) {
	var b service.Broadcaster
	b.Emit(context.Background(), "ignored", nil)
}
