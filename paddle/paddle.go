package paddle

// Paddle is one of the two player paddles. Y is the paddle center; X is
// fixed per side (left edge of the left paddle, left edge of the right
// paddle) and never changes during a match.
type Paddle struct {
	ID     string
	Name   string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Speed  float64 // max displacement per tick
}

// MinY and MaxY bound the paddle center so the paddle body stays inside
// the playfield.
func (p *Paddle) MinY() float64 { return p.Height / 2 }

func (p *Paddle) MaxY(canvasHeight float64) float64 {
	return canvasHeight - p.Height/2
}

// ClampTarget pulls a target center position into the legal range.
func (p *Paddle) ClampTarget(targetY, canvasHeight float64) float64 {
	if targetY < p.MinY() {
		return p.MinY()
	}
	if max := p.MaxY(canvasHeight); targetY > max {
		return max
	}
	return targetY
}

// MoveToward advances the paddle center toward targetY by at most Speed.
// If the remaining distance is within Speed the paddle snaps exactly to
// the target, never past it.
func (p *Paddle) MoveToward(targetY, canvasHeight float64) {
	targetY = p.ClampTarget(targetY, canvasHeight)
	delta := targetY - p.Y
	switch {
	case delta > p.Speed:
		p.Y += p.Speed
	case delta < -p.Speed:
		p.Y -= p.Speed
	default:
		p.Y = targetY
	}
	p.ClampY(canvasHeight)
}

// ClampY forces the current position back into bounds.
func (p *Paddle) ClampY(canvasHeight float64) {
	p.Y = p.ClampTarget(p.Y, canvasHeight)
}

func (p *Paddle) Top() float64    { return p.Y - p.Height/2 }
func (p *Paddle) Bottom() float64 { return p.Y + p.Height/2 }

// ContainsY reports whether y falls within the paddle body.
func (p *Paddle) ContainsY(y float64) bool {
	return y >= p.Top() && y <= p.Bottom()
}
