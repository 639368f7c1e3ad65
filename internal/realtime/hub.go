package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/model"
)

// Hub maps user ids to their live sessions. A user may hold several sessions at once.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[string]*Session
	logger   logger_lib.LoggerInterface
}

func NewHub(logger logger_lib.LoggerInterface) *Hub {
	return &Hub{
		sessions: make(map[int64]map[string]*Session),
		logger:   logger,
	}
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userSessions := h.sessions[s.UserID]
	if userSessions == nil {
		userSessions = make(map[string]*Session)
		h.sessions[s.UserID] = userSessions
	}
	userSessions[s.ID] = s
}

func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unregisterLocked(s)
}

func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions[userID])
}

// Deliver writes the event to every live session of every recipient. Users without a
// session are skipped; sessions that fail to take the frame are dropped from the hub.
func (h *Hub) Deliver(ctx context.Context, recipients []int64, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	h.mu.RLock()
	targets := make([]*Session, 0, len(recipients))
	for _, userID := range recipients {
		for _, s := range h.sessions[userID] {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	var dead []*Session
	for _, s := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.Send(payload); err != nil {
			h.logger.Warn(fmt.Sprintf("dropping session %s of user %d: %v", s.ID, s.UserID, err))
			dead = append(dead, s)
		}
	}

	if len(dead) > 0 {
		h.mu.Lock()
		for _, s := range dead {
			h.unregisterLocked(s)
		}
		h.mu.Unlock()
	}

	return nil
}

// Close disconnects every session and empties the hub.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Session
	for _, userSessions := range h.sessions {
		for _, s := range userSessions {
			all = append(all, s)
		}
	}
	h.sessions = make(map[int64]map[string]*Session)
	h.mu.Unlock()

	for _, s := range all {
		s.Close(websocket.CloseGoingAway, "server shutdown")
	}
}

func (h *Hub) unregisterLocked(s *Session) {
	userSessions, ok := h.sessions[s.UserID]
	if !ok {
		return
	}
	delete(userSessions, s.ID)
	if len(userSessions) == 0 {
		delete(h.sessions, s.UserID)
	}
}
