package game

import (
	"time"

	"pongbridge/ball"
	"pongbridge/paddle"
	"pongbridge/scores"
)

// Snapshot is the authoritative state of one match at one tick. It is
// built fresh every tick and published whole; readers never see a mix of
// old ball and new paddles.
type Snapshot struct {
	Ball      ball.Ball
	Paddle1   paddle.Paddle
	Paddle2   paddle.Paddle
	Scores    scores.Scores
	Tick      uint64
	Timestamp time.Time
}

// Prediction is a target position submitted by an external client for
// one paddle. At most one pending prediction is retained per paddle.
type Prediction struct {
	PaddleID   string
	TargetY    float64
	RequestID  string
	ReceivedAt time.Time
	Immediate  bool
}

// Broadcaster receives each committed snapshot, plus a score notification
// whenever a side scores. Implementations must not block; the tick loop
// calls both inline.
type Broadcaster interface {
	Publish(Snapshot)
	PublishScore(Snapshot)
}
