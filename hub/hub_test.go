package hub

import (
	"encoding/json"
	"testing"
	"time"

	"pongbridge/ball"
	"pongbridge/client"
	"pongbridge/game"
	"pongbridge/paddle"
	"pongbridge/protocol"
)

type fakeConn struct {
	writes chan []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{writes: make(chan []byte, 64)}
}

func (f *fakeConn) WriteMessage(b []byte) error {
	f.writes <- append([]byte(nil), b...)
	return nil
}

func (f *fakeConn) Close() error { return nil }

func snapshotAt(tick uint64) game.Snapshot {
	return game.Snapshot{
		Ball:    ball.Ball{X: 600, Y: 400, Radius: 8},
		Paddle1: paddle.Paddle{ID: "ai1", Y: 400, Height: 150},
		Paddle2: paddle.Paddle{ID: "ai2", Y: 400, Height: 150},
		Tick:    tick,
	}
}

func decodeState(t *testing.T, b []byte) protocol.GameStateMessage {
	t.Helper()
	var msg protocol.GameStateMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if msg.Type != protocol.MsgGameState {
		t.Fatalf("type = %q, want %q", msg.Type, protocol.MsgGameState)
	}
	return msg
}

func TestPublishReachesAllObservers(t *testing.T) {
	h := New()
	fc1, fc2 := newFakeConn(), newFakeConn()
	c1, c2 := client.New(fc1), client.New(fc2)
	h.Attach(c1)
	h.Attach(c2)
	go c1.Run()
	go c2.Run()
	defer h.CloseAll()

	h.Publish(snapshotAt(7))

	for _, fc := range []*fakeConn{fc1, fc2} {
		select {
		case b := <-fc.writes:
			if msg := decodeState(t, b); msg.Tick != 7 {
				t.Fatalf("tick = %d, want 7", msg.Tick)
			}
		case <-time.After(time.Second):
			t.Fatalf("observer did not receive the snapshot")
		}
	}
}

func TestSlowObserverReceivesLatestOnly(t *testing.T) {
	h := New()
	fc := newFakeConn()
	c := client.New(fc)
	h.Attach(c)
	defer h.CloseAll()

	// The observer is not reading: publish several ticks, then resume.
	for tick := uint64(1); tick <= 5; tick++ {
		h.Publish(snapshotAt(tick))
	}
	go c.Run()

	select {
	case b := <-fc.writes:
		if msg := decodeState(t, b); msg.Tick != 5 {
			t.Fatalf("resumed observer got tick %d, want only the latest (5)", msg.Tick)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for latest snapshot")
	}

	// The stale backlog must be gone.
	select {
	case b := <-fc.writes:
		t.Fatalf("observer received backlog: %s", b)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDetachDoesNotAffectOthers(t *testing.T) {
	h := New()
	fcStay, fcLeave := newFakeConn(), newFakeConn()
	stay, leave := client.New(fcStay), client.New(fcLeave)
	h.Attach(stay)
	h.Attach(leave)
	go stay.Run()
	defer h.CloseAll()

	h.Detach(leave.ID)
	if h.Count() != 1 {
		t.Fatalf("observer count = %d, want 1", h.Count())
	}

	h.Publish(snapshotAt(3))
	select {
	case b := <-fcStay.writes:
		if msg := decodeState(t, b); msg.Tick != 3 {
			t.Fatalf("tick = %d, want 3", msg.Tick)
		}
	case <-time.After(time.Second):
		t.Fatalf("remaining observer stopped receiving after another detached")
	}
}

func TestTickLoopDeliversThroughHub(t *testing.T) {
	h := New()
	cfg := game.DefaultConfig()
	e := game.New(cfg, h)

	fc := newFakeConn()
	c := client.New(fc)
	h.Attach(c)
	go c.Run()
	defer h.CloseAll()

	e.Tick()

	select {
	case b := <-fc.writes:
		msg := decodeState(t, b)
		if msg.Tick != 1 {
			t.Fatalf("tick = %d, want 1", msg.Tick)
		}
		if msg.GameState.Paddle1.ID != "ai1" || msg.GameState.Paddle2.ID != "ai2" {
			t.Fatalf("paddle ids = %q/%q", msg.GameState.Paddle1.ID, msg.GameState.Paddle2.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("committed snapshot never reached the observer")
	}
}
