package scores

// Scores tracks points per side for one match.
type Scores struct {
	Left  int
	Right int
}
