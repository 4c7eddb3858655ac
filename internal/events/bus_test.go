package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muscu/internal/core"
)

func TestBusDeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(4)
	a, cancelA := bus.Subscribe()
	b, cancelB := bus.Subscribe()
	defer cancelA()
	defer cancelB()

	bus.Publish(context.Background(), NewSessionEvent(SessionLogged, core.NewDate(2025, 8, 1), "Workout"))

	for _, ch := range []<-chan Event{a, b} {
		select {
		case e := <-ch:
			assert.Equal(t, SessionLogged, e.Kind)
			assert.Equal(t, "Workout", e.Activity)
			assert.False(t, e.Timestamp.IsZero())
		default:
			t.Fatal("expected an event")
		}
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus(1)
	ch, cancel := bus.Subscribe()
	defer cancel()

	ctx := context.Background()
	bus.Publish(ctx, NewSettingsEvent("start_date"))
	bus.Publish(ctx, NewSettingsEvent("end_date")) // dropped

	e := <-ch
	assert.Equal(t, "start_date", e.Key)
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %v", e)
	default:
	}
}

func TestBusCancelAndClose(t *testing.T) {
	bus := NewBus(0)
	ch, cancel := bus.Subscribe()
	require.Equal(t, 1, bus.Subscribers())

	cancel()
	cancel() // idempotent
	assert.Equal(t, 0, bus.Subscribers())
	_, open := <-ch
	assert.False(t, open)

	live, _ := bus.Subscribe()
	require.NoError(t, bus.Close())
	_, open = <-live
	assert.False(t, open)

	late, _ := bus.Subscribe()
	_, open = <-late
	assert.False(t, open)
}
