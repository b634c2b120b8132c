package ball

// Ball is the match ball. Dx and Dy are per-tick velocity; Speed is the
// scalar magnitude of the velocity, kept in sync by the physics step.
type Ball struct {
	X, Y   float64
	Dx, Dy float64
	Radius float64
	Speed  float64
}
