package canvas

// Canvas is the playfield the ball and paddles live in.
type Canvas struct {
	Width  float64
	Height float64
}
