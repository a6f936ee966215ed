package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestBusPublishReachesAllSubscribers(t *testing.T) {
	bus := New(nil)
	var calls atomic.Int32

	for _, name := range []string{"player", "webhook"} {
		bus.Subscribe("transfer.completed", name, func(context.Context, Event) error {
			calls.Add(1)
			return nil
		})
	}
	bus.Subscribe("transfer.rejected", "other", func(context.Context, Event) error {
		t.Fatal("unrelated subscriber must not run")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "transfer.completed"}))
	assert.Equal(t, int32(2), calls.Load())
}

func TestBusPublishJoinsSubscriberErrors(t *testing.T) {
	bus := New(nil)
	boom := errors.New("player store unavailable")
	var okCalls atomic.Int32

	bus.Subscribe("transfer.completed", "player", func(context.Context, Event) error { return boom })
	bus.Subscribe("transfer.completed", "audit", func(context.Context, Event) error {
		okCalls.Add(1)
		return nil
	})

	err := bus.Publish(context.Background(), testEvent{name: "transfer.completed"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "subscriber player")
	assert.Equal(t, int32(1), okCalls.Load())
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := New(nil)
	assert.NoError(t, bus.Publish(context.Background(), testEvent{name: "noop"}))
	assert.NoError(t, bus.Publish(context.Background(), nil))
}

func TestBusPublishIgnoresOptionalSubscriberErrors(t *testing.T) {
	bus := New(nil)
	var calls atomic.Int32

	bus.SubscribeOptional("transfer.completed", "webhook", func(context.Context, Event) error {
		calls.Add(1)
		return errors.New("webhook down")
	})
	bus.Subscribe("transfer.completed", "player", func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "transfer.completed"}))
	assert.Equal(t, int32(2), calls.Load())
}
