package lib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlqa/lib"
)

func TestEventHub_RequestScopedDelivery(t *testing.T) {
	hub := lib.NewEventHub()
	sub := hub.Subscribe("req-1")
	other := hub.Subscribe("req-2")
	defer hub.Unsubscribe("req-2", other)

	hub.Publish(lib.ProgressEvent{Type: "start", RequestID: "req-1"})

	ev := <-sub.Events()
	assert.Equal(t, "start", ev.Type)
	assert.Empty(t, other.Events())

	hub.Unsubscribe("req-1", sub)
	_, open := <-sub.Events()
	assert.False(t, open)
}

func TestEventHub_GlobalSubscriberSeesAllRequests(t *testing.T) {
	hub := lib.NewEventHub()
	global := hub.Subscribe("")
	defer hub.Unsubscribe("", global)

	hub.Publish(lib.ProgressEvent{Type: "start", RequestID: "req-1"})
	hub.Publish(lib.ProgressEvent{Type: "start", RequestID: "req-2"})

	first := <-global.Events()
	second := <-global.Events()
	require.Equal(t, "req-1", first.RequestID)
	require.Equal(t, "req-2", second.RequestID)
}

func TestEventHub_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := lib.NewEventHub()
	// Must return immediately.
	hub.Publish(lib.ProgressEvent{Type: "start", RequestID: "nobody"})
}

func TestEventHub_DoubleUnsubscribeIsSafe(t *testing.T) {
	hub := lib.NewEventHub()
	sub := hub.Subscribe("req-1")
	hub.Unsubscribe("req-1", sub)
	hub.Unsubscribe("req-1", sub)
}
