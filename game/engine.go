package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"pongbridge/ball"
	"pongbridge/canvas"
	"pongbridge/paddle"
)

// ErrInvalidPrediction rejects a submission that names an unknown paddle
// or carries a non-finite target. Nothing is stored.
var ErrInvalidPrediction = errors.New("invalid prediction")

// ErrMatchStopped rejects submissions after the match has been torn down.
var ErrMatchStopped = errors.New("match stopped")

// Config holds the tunables of one match.
type Config struct {
	Canvas       canvas.Canvas
	TickInterval time.Duration
	Staleness    time.Duration // pending predictions older than this are ignored

	PaddleWidth  float64
	PaddleHeight float64
	PaddleSpeed  float64

	BallRadius float64
	BallSpeed  float64

	Paddle1ID   string
	Paddle1Name string
	Paddle2ID   string
	Paddle2Name string
}

// DefaultConfig returns the stock match setup.
func DefaultConfig() Config {
	return Config{
		Canvas:       canvas.Canvas{Width: 1200, Height: 800},
		TickInterval: 32 * time.Millisecond,
		Staleness:    2 * time.Second,
		PaddleWidth:  20,
		PaddleHeight: 150,
		PaddleSpeed:  10,
		BallRadius:   8,
		BallSpeed:    10,
		Paddle1ID:    "ai1",
		Paddle1Name:  "Left AI",
		Paddle2ID:    "ai2",
		Paddle2Name:  "Right AI",
	}
}

func (c Config) normalized() Config {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		c.Canvas = canvas.Canvas{Width: 1200, Height: 800}
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 32 * time.Millisecond
	}
	if c.Staleness <= 0 {
		c.Staleness = 2 * time.Second
	}
	if c.PaddleHeight <= 0 {
		c.PaddleHeight = 150
	}
	if c.PaddleWidth <= 0 {
		c.PaddleWidth = 20
	}
	if c.PaddleSpeed <= 0 {
		c.PaddleSpeed = 10
	}
	if c.BallRadius <= 0 {
		c.BallRadius = 8
	}
	if c.BallSpeed <= 0 {
		c.BallSpeed = 10
	}
	if c.Paddle1ID == "" {
		c.Paddle1ID = "ai1"
	}
	if c.Paddle2ID == "" || c.Paddle2ID == c.Paddle1ID {
		// Duplicate ids would collapse the two pending slots into one.
		c.Paddle2ID = "ai2"
		if c.Paddle1ID == c.Paddle2ID {
			c.Paddle1ID = "ai1"
		}
	}
	return c
}

// pendingSlot holds the newest accepted prediction for one paddle.
// Each slot has its own lock so the two paddles never contend.
type pendingSlot struct {
	mu   sync.Mutex
	pred Prediction
	has  bool
}

func (s *pendingSlot) store(p Prediction) {
	s.mu.Lock()
	s.pred = p
	s.has = true
	s.mu.Unlock()
}

func (s *pendingSlot) load() (Prediction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pred, s.has
}

// Engine owns the authoritative state of one match. The tick loop is the
// only writer of the committed snapshot; prediction ingress writes only
// the per-paddle pending slots.
type Engine struct {
	cfg         Config
	snapshot    atomic.Pointer[Snapshot]
	slots       map[string]*pendingSlot
	broadcaster Broadcaster
	stopped     atomic.Bool

	now func() time.Time // swapped in tests
}

// New builds a match engine with paddles centered and the ball served
// toward the left paddle. The broadcaster may be nil.
func New(cfg Config, b Broadcaster) *Engine {
	cfg = cfg.normalized()
	e := &Engine{
		cfg:         cfg,
		broadcaster: b,
		now:         time.Now,
	}
	e.slots = map[string]*pendingSlot{
		cfg.Paddle1ID: {},
		cfg.Paddle2ID: {},
	}
	e.snapshot.Store(e.initialSnapshot())
	return e
}

func (e *Engine) initialSnapshot() *Snapshot {
	cfg := e.cfg
	return &Snapshot{
		Ball: ball.Ball{
			X:      cfg.Canvas.Width / 2,
			Y:      cfg.Canvas.Height / 2,
			Dx:     -cfg.BallSpeed,
			Dy:     0,
			Radius: cfg.BallRadius,
			Speed:  cfg.BallSpeed,
		},
		Paddle1: paddle.Paddle{
			ID:     cfg.Paddle1ID,
			Name:   cfg.Paddle1Name,
			X:      0,
			Y:      cfg.Canvas.Height / 2,
			Width:  cfg.PaddleWidth,
			Height: cfg.PaddleHeight,
			Speed:  cfg.PaddleSpeed,
		},
		Paddle2: paddle.Paddle{
			ID:     cfg.Paddle2ID,
			Name:   cfg.Paddle2Name,
			X:      cfg.Canvas.Width - cfg.PaddleWidth,
			Y:      cfg.Canvas.Height / 2,
			Width:  cfg.PaddleWidth,
			Height: cfg.PaddleHeight,
			Speed:  cfg.PaddleSpeed,
		},
		Timestamp: e.now(),
	}
}

// Config returns the match configuration.
func (e *Engine) Config() Config { return e.cfg }

// Snapshot returns the latest committed snapshot. Lock-free; safe from
// any goroutine.
func (e *Engine) Snapshot() Snapshot {
	return *e.snapshot.Load()
}

// SubmitPrediction validates, clamps and stores a target position for one
// paddle, replacing any prior pending value (last write wins). The target
// is clamped into [height/2, canvasHeight-height/2]; non-finite targets
// and unknown paddle ids are rejected without touching any state.
func (e *Engine) SubmitPrediction(paddleID string, targetY float64, requestID string, immediate bool) error {
	if e.stopped.Load() {
		return ErrMatchStopped
	}
	slot, ok := e.slots[paddleID]
	if !ok {
		return fmt.Errorf("%w: unknown paddle %q", ErrInvalidPrediction, paddleID)
	}
	if math.IsNaN(targetY) || math.IsInf(targetY, 0) {
		return fmt.Errorf("%w: target %v is not finite", ErrInvalidPrediction, targetY)
	}

	half := e.cfg.PaddleHeight / 2
	if targetY < half {
		targetY = half
	}
	if max := e.cfg.Canvas.Height - half; targetY > max {
		targetY = max
	}

	slot.store(Prediction{
		PaddleID:   paddleID,
		TargetY:    targetY,
		RequestID:  requestID,
		ReceivedAt: e.now(),
		Immediate:  immediate,
	})
	return nil
}

// Tick advances the match one step: ball physics, then paddle motion
// toward pending targets, then an atomic snapshot commit and broadcast.
// A physics fault keeps the previous snapshot and is retried next tick.
func (e *Engine) Tick() {
	now := e.now()
	prev := e.snapshot.Load()
	next := *prev

	out, err := ball.Step(&next.Ball, e.cfg.Canvas, &next.Paddle1, &next.Paddle2, &next.Scores)
	if err != nil {
		log.Printf("[tick] physics fault, retaining snapshot tick=%d: %v", prev.Tick, err)
		return
	}

	e.applyPending(&next.Paddle1, now)
	e.applyPending(&next.Paddle2, now)

	next.Tick = prev.Tick + 1
	next.Timestamp = now
	e.snapshot.Store(&next)

	if out.Scored != "" {
		log.Printf("[tick] %s side scored, score %d-%d", out.Scored, next.Scores.Left, next.Scores.Right)
	}
	if e.broadcaster != nil {
		e.broadcaster.Publish(next)
		if out.Scored != "" {
			e.broadcaster.PublishScore(next)
		}
	}
}

// applyPending moves one paddle toward its pending target, or holds
// position when there is none or it has gone stale. Immediate predictions
// skip the staleness check but still respect the per-tick speed limit.
func (e *Engine) applyPending(p *paddle.Paddle, now time.Time) {
	slot := e.slots[p.ID]
	if slot == nil {
		p.ClampY(e.cfg.Canvas.Height)
		return
	}
	pred, ok := slot.load()
	if !ok {
		p.ClampY(e.cfg.Canvas.Height)
		return
	}
	// A malformed slot is unreachable through SubmitPrediction; treat it
	// as absent rather than feeding it to physics.
	if math.IsNaN(pred.TargetY) || math.IsInf(pred.TargetY, 0) {
		p.ClampY(e.cfg.Canvas.Height)
		return
	}
	if !pred.Immediate && now.Sub(pred.ReceivedAt) > e.cfg.Staleness {
		p.ClampY(e.cfg.Canvas.Height)
		return
	}
	p.MoveToward(pred.TargetY, e.cfg.Canvas.Height)
}

// Run drives the fixed-rate tick loop until ctx is cancelled. A tick that
// overruns its interval runs late; ticks are never double-stepped.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()
	defer e.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Stop marks the match as torn down; subsequent submissions are rejected
// with ErrMatchStopped instead of being left half-applied.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Reset puts ball, paddles and scores back to their initial values for a
// match restart. Pending predictions are cleared.
func (e *Engine) Reset() {
	for _, slot := range e.slots {
		slot.mu.Lock()
		slot.has = false
		slot.pred = Prediction{}
		slot.mu.Unlock()
	}
	snap := e.initialSnapshot()
	snap.Tick = e.snapshot.Load().Tick
	e.snapshot.Store(snap)
}
