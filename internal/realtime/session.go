package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const maxInboundMessageSize = 512

type State int32

const (
	StateConnecting State = iota
	StateAuthenticated
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateDisconnected:
		return "disconnected"
	}
	return "unknown"
}

var (
	errSessionClosed = errors.New("session closed")
	errBufferFull    = errors.New("session send buffer full")
)

// Session is one websocket connection. Outbound frames go through a buffered channel
// drained by a single writer goroutine.
type Session struct {
	ID     string
	UserID int64

	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	once      sync.Once
	state     atomic.Int32
	writeWait time.Duration
	pongWait  time.Duration
}

func newSession(ws *websocket.Conn, opts Options) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ws:        ws,
		send:      make(chan []byte, opts.SendBuffer),
		done:      make(chan struct{}),
		writeWait: opts.WriteWait,
		pongWait:  opts.PongWait,
	}
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) authenticate(userID int64) bool {
	s.UserID = userID
	return s.state.CompareAndSwap(int32(StateConnecting), int32(StateAuthenticated))
}

// Send queues payload. A session that cannot keep up is closed instead of blocking the caller.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.done:
		return errSessionClosed
	default:
	}

	select {
	case s.send <- payload:
		return nil
	case <-s.done:
		return errSessionClosed
	default:
		s.Close(websocket.CloseTryAgainLater, "send buffer full")
		return errBufferFull
	}
}

// Close moves the session to Disconnected. Safe to call more than once and from any goroutine.
func (s *Session) Close(code int, reason string) {
	s.once.Do(func() {
		s.state.Store(int32(StateDisconnected))
		close(s.done)
		deadline := time.Now().Add(s.writeWait)
		_ = s.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = s.ws.Close()
	})
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.pongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case payload := <-s.send:
			if err := s.write(websocket.TextMessage, payload); err != nil {
				s.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				s.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (s *Session) write(messageType int, payload []byte) error {
	if err := s.ws.SetWriteDeadline(time.Now().Add(s.writeWait)); err != nil {
		return err
	}
	return s.ws.WriteMessage(messageType, payload)
}

// readLoop keeps the connection alive and notices when the peer goes away.
// Clients have nothing to say over this socket, so inbound frames are discarded.
func (s *Session) readLoop() {
	s.ws.SetReadLimit(maxInboundMessageSize)
	_ = s.ws.SetReadDeadline(time.Now().Add(s.pongWait))
	s.ws.SetPongHandler(func(string) error {
		return s.ws.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	for {
		if _, _, err := s.ws.ReadMessage(); err != nil {
			return
		}
	}
}
