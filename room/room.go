// Package room scopes one match (engine + hub) per room so concurrent
// matches stay fully independent.
package room

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"pongbridge/game"
	"pongbridge/hub"
)

// Room is one running match: its engine, its observer hub and the
// cancellation handle for its tick loop.
type Room struct {
	ID     string
	Engine *game.Engine
	Hub    *hub.Hub

	cancel context.CancelFunc
}

// Stop tears the match down: the tick loop stops, pending ingress calls
// are rejected from then on, and every observer channel is closed.
func (r *Room) Stop() {
	r.cancel()
	r.Hub.CloseAll()
}

// Manager holds the rooms of this process keyed by id.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
	cfg   game.Config
}

func NewManager(cfg game.Config) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		cfg:   cfg,
	}
}

func generateRoomID() string {
	return uuid.NewString()[:6]
}

// Create starts a new match under a fresh id and runs its tick loop.
func (m *Manager) Create(ctx context.Context) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(ctx, generateRoomID())
}

// GetOrCreate returns the room for id, starting it on first use.
func (m *Manager) GetOrCreate(ctx context.Context, id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r
	}
	return m.createLocked(ctx, id)
}

// Get returns the room for id if it exists.
func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Remove stops a room and forgets it.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	r, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	m.mu.Unlock()
	if ok {
		r.Stop()
		log.Printf("[room] closed room %s", id)
	}
}

// StopAll stops every room, for process shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	rooms := m.rooms
	m.rooms = make(map[string]*Room)
	m.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
	}
}

func (m *Manager) createLocked(ctx context.Context, id string) *Room {
	h := hub.New()
	engine := game.New(m.cfg, h)
	runCtx, cancel := context.WithCancel(ctx)
	r := &Room{
		ID:     id,
		Engine: engine,
		Hub:    h,
		cancel: cancel,
	}
	m.rooms[id] = r
	go engine.Run(runCtx)
	log.Printf("[room] created room %s", id)
	return r
}
