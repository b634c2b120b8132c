package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Game.TickInterval != 32*time.Millisecond {
		t.Fatalf("tick interval = %v, want 32ms", cfg.Game.TickInterval)
	}
	if cfg.Game.Canvas.Width != 1200 || cfg.Game.Canvas.Height != 800 {
		t.Fatalf("canvas = %+v", cfg.Game.Canvas)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("TICK_INTERVAL", "50ms")
	t.Setenv("PREDICTION_STALENESS", "5s")
	t.Setenv("PADDLE_HEIGHT", "120")
	t.Setenv("CANVAS_HEIGHT", "600")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.Game.TickInterval != 50*time.Millisecond {
		t.Fatalf("tick interval = %v", cfg.Game.TickInterval)
	}
	if cfg.Game.Staleness != 5*time.Second {
		t.Fatalf("staleness = %v", cfg.Game.Staleness)
	}
	if cfg.Game.PaddleHeight != 120 || cfg.Game.Canvas.Height != 600 {
		t.Fatalf("geometry = %v / %v", cfg.Game.PaddleHeight, cfg.Game.Canvas.Height)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "soon")
	t.Setenv("PADDLE_SPEED", "fast")

	cfg := Load()
	if cfg.Game.TickInterval != 32*time.Millisecond {
		t.Fatalf("tick interval = %v, want default", cfg.Game.TickInterval)
	}
	if cfg.Game.PaddleSpeed != 10 {
		t.Fatalf("paddle speed = %v, want default", cfg.Game.PaddleSpeed)
	}
}
