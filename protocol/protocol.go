package protocol

// Message types carried in the "type" field of every frame.
const (
	MsgGameState     = "game_state"
	MsgAIPrediction  = "ai_prediction"
	MsgPredictionAck = "prediction_ack"
	MsgScore         = "score"
	MsgError         = "error"
)

type BallState struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelocityX float64 `json:"velocityX"`
	VelocityY float64 `json:"velocityY"`
	Radius    float64 `json:"radius"`
	Speed     float64 `json:"speed"`
}

type PaddleState struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
}

type GameState struct {
	Ball    BallState   `json:"ball"`
	Paddle1 PaddleState `json:"paddle1"`
	Paddle2 PaddleState `json:"paddle2"`
}

// GameStateMessage is pushed to every observer once per tick.
type GameStateMessage struct {
	Type      string    `json:"type"`
	Tick      uint64    `json:"tick"`
	Timestamp int64     `json:"timestamp"`
	GameState GameState `json:"gameState"`
}

// AIPrediction is the reverse-direction message a decision client sends.
// Model names the paddle; TargetX is accepted for symmetry with the push
// format but the core only acts on TargetY.
type AIPrediction struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Model     string  `json:"model"`
	TargetX   float64 `json:"targetX,omitempty"`
	TargetY   float64 `json:"targetY"`
	Immediate bool    `json:"immediate,omitempty"`
}

// PredictionAck echoes the request id back with the arbitration verdict.
type PredictionAck struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
}

type ScoreMessage struct {
	Type       string `json:"type"`
	LeftScore  int    `json:"leftScore"`
	RightScore int    `json:"rightScore"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
