package protocol

import (
	"encoding/json"
	"fmt"

	"pongbridge/game"
)

// MessageType peeks at the "type" field without decoding the full frame.
func MessageType(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("empty message")
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return "", err
	}
	if head.Type == "" {
		return "", fmt.Errorf("message has no type field")
	}
	return head.Type, nil
}

// DecodePrediction parses an ai_prediction frame.
func DecodePrediction(b []byte) (AIPrediction, error) {
	var p AIPrediction
	if err := json.Unmarshal(b, &p); err != nil {
		return AIPrediction{}, err
	}
	return p, nil
}

// FromSnapshot converts a committed snapshot into the push message shape.
func FromSnapshot(snap game.Snapshot) GameStateMessage {
	return GameStateMessage{
		Type:      MsgGameState,
		Tick:      snap.Tick,
		Timestamp: snap.Timestamp.UnixMilli(),
		GameState: GameState{
			Ball: BallState{
				X:         snap.Ball.X,
				Y:         snap.Ball.Y,
				VelocityX: snap.Ball.Dx,
				VelocityY: snap.Ball.Dy,
				Radius:    snap.Ball.Radius,
				Speed:     snap.Ball.Speed,
			},
			Paddle1: PaddleState{
				ID:     snap.Paddle1.ID,
				Name:   snap.Paddle1.Name,
				X:      snap.Paddle1.X,
				Y:      snap.Paddle1.Y,
				Width:  snap.Paddle1.Width,
				Height: snap.Paddle1.Height,
				Speed:  snap.Paddle1.Speed,
			},
			Paddle2: PaddleState{
				ID:     snap.Paddle2.ID,
				Name:   snap.Paddle2.Name,
				X:      snap.Paddle2.X,
				Y:      snap.Paddle2.Y,
				Width:  snap.Paddle2.Width,
				Height: snap.Paddle2.Height,
				Speed:  snap.Paddle2.Speed,
			},
		},
	}
}

// EncodeSnapshot serializes a snapshot in the push message shape.
func EncodeSnapshot(snap game.Snapshot) ([]byte, error) {
	return json.Marshal(FromSnapshot(snap))
}

// ScoreFromSnapshot builds the score message for a snapshot.
func ScoreFromSnapshot(snap game.Snapshot) ScoreMessage {
	return ScoreMessage{
		Type:       MsgScore,
		LeftScore:  snap.Scores.Left,
		RightScore: snap.Scores.Right,
	}
}
