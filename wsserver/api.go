package wsserver

import (
	"encoding/json"
	"log"
	"net/http"

	"pongbridge/protocol"
	"pongbridge/room"
)

// Register wires the push endpoint and the read-only query surface onto
// a mux. Every query endpoint is a lock-free read of the latest committed
// snapshot; none of them can observe a half-written tick.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/ws", h)
	mux.HandleFunc("/state", h.handleState)
	mux.HandleFunc("/ball", h.handleBall)
	mux.HandleFunc("/paddles", h.handlePaddles)
	mux.HandleFunc("/score", h.handleScore)
}

// queryRoom resolves the room for a query request without creating one:
// unlike /ws, a GET against an unknown room id must not start a match.
func (h *Handler) queryRoom(w http.ResponseWriter, r *http.Request) (*room.Room, bool) {
	id := r.URL.Query().Get("room")
	if id == "" {
		id = h.DefaultRoom
	}
	rm, ok := h.Rooms.Get(id)
	if !ok {
		http.Error(w, "unknown room: "+id, http.StatusNotFound)
		return nil, false
	}
	return rm, true
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.queryRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, protocol.FromSnapshot(rm.Engine.Snapshot()))
}

func (h *Handler) handleBall(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.queryRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, protocol.FromSnapshot(rm.Engine.Snapshot()).GameState.Ball)
}

func (h *Handler) handlePaddles(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.queryRoom(w, r)
	if !ok {
		return
	}
	state := protocol.FromSnapshot(rm.Engine.Snapshot()).GameState
	writeJSON(w, struct {
		Paddle1 protocol.PaddleState `json:"paddle1"`
		Paddle2 protocol.PaddleState `json:"paddle2"`
	}{state.Paddle1, state.Paddle2})
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.queryRoom(w, r)
	if !ok {
		return
	}
	writeJSON(w, protocol.ScoreFromSnapshot(rm.Engine.Snapshot()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}
