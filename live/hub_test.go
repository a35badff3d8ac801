package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()
	return hub
}

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.Register <- client
	waitFor(t, func() bool { return hub.RoomSize(client.Room) > 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within a second")
}

func TestScheduleRoom(t *testing.T) {
	assert.Equal(t, "schedule_42", ScheduleRoom(42))
}

func TestBroadcastToRoomDeliversOnlyToRoomClients(t *testing.T) {
	hub := newTestHub()

	subscriber := &Client{Hub: hub, Send: make(chan []byte, 4), Room: ScheduleRoom(1)}
	bystander := &Client{Hub: hub, Send: make(chan []byte, 4), Room: ScheduleRoom(2)}
	registerAndWait(t, hub, subscriber)
	registerAndWait(t, hub, bystander)

	hub.BroadcastToRoom(ScheduleRoom(1), Message{
		Type:    MessagePlayByPlay,
		Payload: map[string]int{"points": 3},
	})

	select {
	case raw := <-subscriber.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, MessagePlayByPlay, msg.Type)
		assert.Equal(t, ScheduleRoom(1), msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the broadcast")
	}

	select {
	case raw := <-bystander.Send:
		t.Fatalf("bystander received a message from another room: %s", raw)
	default:
	}
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := newTestHub()

	// Не должно паниковать и не должно блокировать.
	hub.BroadcastToRoom(ScheduleRoom(99), Message{Type: MessageTeamFouls})
}

func TestUnregisterClosesClientSend(t *testing.T) {
	hub := newTestHub()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: ScheduleRoom(3)}
	registerAndWait(t, hub, client)

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.RoomSize(client.Room) == 0 })

	_, ok := <-client.Send
	assert.False(t, ok, "send channel should be closed after unregister")

	client.Mu.Lock()
	assert.True(t, client.IsClosed)
	client.Mu.Unlock()
}

func TestBroadcastSkipsClientWithFullBuffer(t *testing.T) {
	hub := newTestHub()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: ScheduleRoom(4)}
	registerAndWait(t, hub, client)

	hub.BroadcastToRoom(ScheduleRoom(4), Message{Type: MessagePlayByPlay, Payload: 1})
	// Буфер заполнен, второе сообщение молча отбрасывается.
	hub.BroadcastToRoom(ScheduleRoom(4), Message{Type: MessagePlayByPlay, Payload: 2})

	require.Len(t, client.Send, 1)
}
