package wsserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"pongbridge/client"
	"pongbridge/protocol"
	"pongbridge/room"
)

const maxMessageSize = 1 << 20 // 1MB

// Handler serves the push channel: it upgrades observers onto a room's
// hub and feeds reverse-direction ai_prediction frames into the room's
// prediction ingress.
type Handler struct {
	Upgrader    websocket.Upgrader
	Rooms       *room.Manager
	DefaultRoom string

	baseCtx context.Context
}

func NewHandler(ctx context.Context, rooms *room.Manager, defaultRoom string) *Handler {
	return &Handler{
		Upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Rooms:       rooms,
		DefaultRoom: defaultRoom,
		baseCtx:     ctx,
	}
}

func (h *Handler) roomFrom(r *http.Request) *room.Room {
	id := r.URL.Query().Get("room")
	if id == "" {
		id = h.DefaultRoom
	}
	return h.Rooms.GetOrCreate(h.baseCtx, id)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rm := h.roomFrom(r)

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	wc := &wsConn{conn: conn}
	cl := client.New(wc)
	rm.Hub.Attach(cl)
	log.Printf("[ws] observer %s joined room %s", cl.ID, rm.ID)

	// A new observer gets the current snapshot right away instead of
	// waiting out the remainder of the tick.
	if data, err := protocol.EncodeSnapshot(rm.Engine.Snapshot()); err == nil {
		cl.Offer(data)
	}

	go func() {
		if err := cl.Run(); err != nil {
			log.Printf("[ws] write pump for %s stopped: %v", cl.ID, err)
		}
		rm.Hub.Detach(cl.ID)
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[ws] observer %s left room %s: %v", cl.ID, rm.ID, err)
			rm.Hub.Detach(cl.ID)
			return
		}
		h.handleMessage(rm, wc, msg)
	}
}

// handleMessage routes one inbound frame. Errors are answered on the
// socket and never propagate into the tick loop.
func (h *Handler) handleMessage(rm *room.Room, wc *wsConn, msg []byte) {
	msgType, err := protocol.MessageType(msg)
	if err != nil {
		h.sendError(wc, "invalid message format")
		return
	}

	switch msgType {
	case protocol.MsgAIPrediction:
		pred, err := protocol.DecodePrediction(msg)
		if err != nil {
			h.sendError(wc, "invalid prediction format")
			return
		}
		ack := protocol.PredictionAck{
			Type:      protocol.MsgPredictionAck,
			RequestID: pred.RequestID,
			Accepted:  true,
		}
		if err := rm.Engine.SubmitPrediction(pred.Model, pred.TargetY, pred.RequestID, pred.Immediate); err != nil {
			log.Printf("[ws] prediction rejected room=%s request=%s: %v", rm.ID, pred.RequestID, err)
			ack.Accepted = false
			ack.Reason = err.Error()
		}
		h.send(wc, ack)
	default:
		h.sendError(wc, "unknown message type: "+msgType)
	}
}

func (h *Handler) sendError(wc *wsConn, reason string) {
	h.send(wc, protocol.ErrorMessage{Type: protocol.MsgError, Error: reason})
}

func (h *Handler) send(wc *wsConn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ws] failed to marshal reply: %v", err)
		return
	}
	if err := wc.WriteMessage(data); err != nil {
		log.Printf("[ws] failed to write reply: %v", err)
	}
}
