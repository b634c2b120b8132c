package ball

import (
	"fmt"
	"math"
	"math/rand"

	"pongbridge/canvas"
	"pongbridge/paddle"
	"pongbridge/scores"
)

// maximum deflection off a paddle edge, 60 degrees
const maxBounceAngle = math.Pi / 3

// Outcome reports what a physics step did beyond moving the ball.
type Outcome struct {
	Scored string // "left", "right" or "" when nobody scored
}

// Step advances the ball one tick: position update, top/bottom wall
// bounce, paddle collision and out-of-bounds scoring with a center reset.
// A non-finite ball state is a fault; the ball is left untouched from the
// caller's point of view only if the caller works on a copy.
func Step(b *Ball, cv canvas.Canvas, left, right *paddle.Paddle, sc *scores.Scores) (Outcome, error) {
	if !finite(b.X) || !finite(b.Y) || !finite(b.Dx) || !finite(b.Dy) {
		return Outcome{}, fmt.Errorf("ball state not finite: x=%v y=%v dx=%v dy=%v", b.X, b.Y, b.Dx, b.Dy)
	}

	b.X += b.Dx
	b.Y += b.Dy

	// wall collision (top & bottom)
	if b.Y-b.Radius <= 0 || b.Y+b.Radius >= cv.Height {
		b.Dy *= -1
		if b.Y-b.Radius < 0 {
			b.Y = b.Radius
		}
		if b.Y+b.Radius > cv.Height {
			b.Y = cv.Height - b.Radius
		}
	}

	bouncePaddles(b, left, right)

	var out Outcome
	if b.X-b.Radius <= 0 {
		sc.Right++
		out.Scored = "right"
		reset(b, cv, 1)
	} else if b.X+b.Radius >= cv.Width {
		sc.Left++
		out.Scored = "left"
		reset(b, cv, -1)
	}

	b.Speed = math.Hypot(b.Dx, b.Dy)
	return out, nil
}

// bouncePaddles deflects the ball off either paddle. The bounce angle
// depends on where the ball hits relative to the paddle center.
func bouncePaddles(b *Ball, left, right *paddle.Paddle) {
	speed := math.Hypot(b.Dx, b.Dy)

	leftEdge := left.X + left.Width
	if b.X-b.Radius <= leftEdge && left.ContainsY(b.Y) {
		relative := (b.Y - left.Y) / (left.Height / 2)
		angle := relative * maxBounceAngle
		b.Dx = math.Abs(speed * math.Cos(angle))
		b.Dy = speed*math.Sin(angle) + randomVariation()
		b.X = leftEdge + b.Radius
	}

	rightEdge := right.X
	if b.X+b.Radius >= rightEdge && right.ContainsY(b.Y) {
		relative := (b.Y - right.Y) / (right.Height / 2)
		angle := relative * maxBounceAngle
		b.Dx = -math.Abs(speed * math.Cos(angle))
		b.Dy = speed*math.Sin(angle) + randomVariation()
		b.X = rightEdge - b.Radius
	}
}

// reset recenters the ball and serves it toward directionX.
func reset(b *Ball, cv canvas.Canvas, directionX int) {
	b.X = cv.Width / 2
	b.Y = cv.Height / 2

	baseSpeed := b.Speed
	if baseSpeed <= 0 {
		baseSpeed = 10
	}
	b.Dx = float64(directionX) * baseSpeed
	b.Dy = (rand.Float64() - 0.5) * 5.0
}

func randomVariation() float64 {
	return (rand.Float64() - 0.5) * 2
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
