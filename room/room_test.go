package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"pongbridge/game"
)

func testManager() *Manager {
	cfg := game.DefaultConfig()
	cfg.TickInterval = time.Hour // tests drive ticks themselves
	return NewManager(cfg)
}

func TestGetOrCreateReusesRoom(t *testing.T) {
	m := testManager()
	defer m.StopAll()

	a := m.GetOrCreate(context.Background(), "alpha")
	b := m.GetOrCreate(context.Background(), "alpha")
	if a != b {
		t.Fatalf("same id produced two rooms")
	}
	if _, ok := m.Get("alpha"); !ok {
		t.Fatalf("room not retrievable")
	}
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	m := testManager()
	defer m.StopAll()

	a := m.Create(context.Background())
	b := m.Create(context.Background())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids not unique: %q vs %q", a.ID, b.ID)
	}
	if len(a.ID) != 6 {
		t.Fatalf("id length = %d, want 6", len(a.ID))
	}
}

func TestRoomsAreIndependentMatches(t *testing.T) {
	m := testManager()
	defer m.StopAll()

	a := m.GetOrCreate(context.Background(), "a")
	b := m.GetOrCreate(context.Background(), "b")

	if err := a.Engine.SubmitPrediction("ai1", 500, "req", false); err != nil {
		t.Fatalf("submit: %v", err)
	}
	a.Engine.Tick()
	b.Engine.Tick()

	if got := a.Engine.Snapshot().Paddle1.Y; got != 410 {
		t.Fatalf("room a paddle y = %v, want 410", got)
	}
	if got := b.Engine.Snapshot().Paddle1.Y; got != 400 {
		t.Fatalf("room b paddle moved with room a's prediction: y = %v", got)
	}
}

func TestRemoveStopsMatch(t *testing.T) {
	m := testManager()
	defer m.StopAll()

	r := m.GetOrCreate(context.Background(), "gone")
	m.Remove("gone")

	if _, ok := m.Get("gone"); ok {
		t.Fatalf("room still registered after remove")
	}

	// A stopped match rejects further predictions instead of leaving
	// them half-applied.
	deadline := time.After(time.Second)
	for {
		err := r.Engine.SubmitPrediction("ai1", 500, "req", false)
		if errors.Is(err, game.ErrMatchStopped) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("engine still accepting predictions after stop: %v", err)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
