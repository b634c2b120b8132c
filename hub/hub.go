// Package hub fans committed snapshots out to connected observers.
package hub

import (
	"encoding/json"
	"log"
	"sync"

	"pongbridge/client"
	"pongbridge/game"
	"pongbridge/protocol"
)

// Hub tracks the observers of one match. Publish encodes each snapshot
// once and offers it to every observer through its drop-and-replace
// mailbox, so a slow or dead observer can never stall the tick loop or
// starve the others.
type Hub struct {
	mu        sync.Mutex
	observers map[string]*client.Client
}

func New() *Hub {
	return &Hub{observers: make(map[string]*client.Client)}
}

// Attach registers an observer.
func (h *Hub) Attach(c *client.Client) {
	h.mu.Lock()
	h.observers[c.ID] = c
	h.mu.Unlock()
}

// Detach removes and closes an observer. Other observers are unaffected.
func (h *Hub) Detach(id string) {
	h.mu.Lock()
	c, ok := h.observers[id]
	if ok {
		delete(h.observers, id)
	}
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

// Count returns the number of attached observers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// Publish delivers a committed snapshot to every observer. Implements
// game.Broadcaster; called inline by the tick loop, so it must not block.
func (h *Hub) Publish(snap game.Snapshot) {
	data, err := protocol.EncodeSnapshot(snap)
	if err != nil {
		log.Printf("[hub] failed to encode snapshot tick=%d: %v", snap.Tick, err)
		return
	}

	h.mu.Lock()
	obs := make([]*client.Client, 0, len(h.observers))
	for _, c := range h.observers {
		obs = append(obs, c)
	}
	h.mu.Unlock()

	for _, c := range obs {
		c.Offer(data)
	}
}

// PublishScore notifies observers that a side scored. Delivery shares the
// drop-and-replace mailbox with state frames, so it is best effort; the
// authoritative score is always in the next snapshot and on /score.
func (h *Hub) PublishScore(snap game.Snapshot) {
	data, err := json.Marshal(protocol.ScoreFromSnapshot(snap))
	if err != nil {
		log.Printf("[hub] failed to encode score tick=%d: %v", snap.Tick, err)
		return
	}

	h.mu.Lock()
	obs := make([]*client.Client, 0, len(h.observers))
	for _, c := range h.observers {
		obs = append(obs, c)
	}
	h.mu.Unlock()

	for _, c := range obs {
		c.Offer(data)
	}
}

// CloseAll detaches and closes every observer, for match teardown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	obs := h.observers
	h.observers = make(map[string]*client.Client)
	h.mu.Unlock()
	for _, c := range obs {
		c.Close()
	}
}
