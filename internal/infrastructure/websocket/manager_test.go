package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndSendToUser(t *testing.T) {
	manager := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	client := NewClient("u1", nil)
	manager.Register <- client

	require.Eventually(t, func() bool {
		return manager.IsConnected("u1")
	}, time.Second, 10*time.Millisecond)

	manager.SendToUser("u1", []byte("hello"))

	select {
	case frame := <-client.Send:
		assert.Equal(t, "hello", string(frame))
	case <-time.After(time.Second):
		t.Fatal("frame was not delivered")
	}

	manager.Unregister <- client
	require.Eventually(t, func() bool {
		return !manager.IsConnected("u1")
	}, time.Second, 10*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestDeliverAfterDisconnectDoesNotPanic(t *testing.T) {
	manager := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	client := NewClient("u1", nil)
	manager.Register <- client
	require.Eventually(t, func() bool {
		return manager.IsConnected("u1")
	}, time.Second, 10*time.Millisecond)

	manager.Unregister <- client
	require.Eventually(t, func() bool {
		return !manager.IsConnected("u1")
	}, time.Second, 10*time.Millisecond)

	// Watcher goroutines keep a reference to the client and may fire after
	// the manager dropped it. Late frames must be discarded, not sent on the
	// closed channel.
	assert.NotPanics(t, func() {
		client.deliver([]byte("late frame"))
	})
	assert.NotPanics(t, func() {
		manager.SendToUser("u1", []byte("late frame"))
	})
	assert.NotPanics(t, func() {
		client.closeSend()
	})
}

func TestReconnectClosesPreviousSendSafely(t *testing.T) {
	manager := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	first := NewClient("u1", nil)
	manager.Register <- first
	require.Eventually(t, func() bool {
		return manager.IsConnected("u1")
	}, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			first.deliver([]byte("frame"))
		}
	}()

	second := NewClient("u1", nil)
	manager.Register <- second
	<-done

	require.Eventually(t, func() bool {
		_, open := <-first.Send
		return !open
	}, time.Second, 10*time.Millisecond, "replaced connection should have its send channel closed")

	manager.SendToUser("u1", []byte("hello"))
	select {
	case frame := <-second.Send:
		assert.Equal(t, "hello", string(frame))
	case <-time.After(time.Second):
		t.Fatal("frame was not delivered to the new connection")
	}
}

func TestSendToUnknownUserIsNoop(t *testing.T) {
	manager := NewManager()
	manager.SendToUser("ghost", []byte("hello"))
}

func TestSubscriptionReplacementCancelsPrevious(t *testing.T) {
	client := NewClient("u1", nil)

	first, firstCancel := context.WithCancel(context.Background())
	client.AddSubscription("chats", firstCancel)

	_, secondCancel := context.WithCancel(context.Background())
	client.AddSubscription("chats", secondCancel)

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("previous subscription was not cancelled")
	}

	client.RemoveSubscription("chats")
}

func TestSubscriptionHandlerFrames(t *testing.T) {
	client := NewClient("u1", nil)
	handler := NewSubscriptionHandler(nil)

	handler.Handle(client, []byte(`{"type":"ping"}`))
	select {
	case frame := <-client.Send:
		assert.JSONEq(t, `{"type":"pong"}`, string(frame))
	case <-time.After(time.Second):
		t.Fatal("no pong received")
	}

	handler.Handle(client, []byte(`{"type":"subscribe","topic":"messages"}`))
	select {
	case frame := <-client.Send:
		assert.Contains(t, string(frame), "chatId is required")
	case <-time.After(time.Second):
		t.Fatal("no error frame received")
	}

	handler.Handle(client, []byte(`not json`))
	select {
	case frame := <-client.Send:
		assert.Contains(t, string(frame), "Invalid frame")
	case <-time.After(time.Second):
		t.Fatal("no error frame received")
	}
}
