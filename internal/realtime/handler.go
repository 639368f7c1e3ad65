package realtime

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
)

type Options struct {
	SendBuffer int
	WriteWait  time.Duration
	PongWait   time.Duration
}

func OptionsFromConfig(cfg config.Realtime) Options {
	return Options{
		SendBuffer: cfg.SendBuffer,
		WriteWait:  cfg.WriteWait,
		PongWait:   cfg.PongWait,
	}
}

// Handler upgrades GET /ws and walks each connection through
// Connecting, Authenticated and Disconnected.
type Handler struct {
	hub      *Hub
	auth     Authenticator
	opts     Options
	upgrader websocket.Upgrader
	logger   logger_lib.LoggerInterface
}

func NewHandler(hub *Hub, auth Authenticator, opts Options, logger logger_lib.LoggerInterface) *Handler {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	if opts.WriteWait <= 0 {
		opts.WriteWait = 10 * time.Second
	}
	if opts.PongWait <= 0 {
		opts.PongWait = 60 * time.Second
	}

	return &Handler{
		hub:  hub,
		auth: auth,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the gateway in front of the service.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("failed to upgrade connection: %v", err))
		return
	}

	session := newSession(ws, h.opts)

	userID, err := h.auth.Authenticate(connectToken(r))
	if err != nil {
		h.logger.Warn(fmt.Sprintf("rejecting session %s: %v", session.ID, err))
		session.Close(websocket.ClosePolicyViolation, "invalid token")
		return
	}

	if !session.authenticate(userID) {
		session.Close(websocket.CloseInternalServerErr, "unexpected session state")
		return
	}

	h.hub.Register(session)
	h.logger.Info(fmt.Sprintf("session %s opened for user %d", session.ID, userID))

	go session.writeLoop()
	session.readLoop()

	h.hub.Unregister(session)
	session.Close(websocket.CloseNormalClosure, "")
	h.logger.Info(fmt.Sprintf("session %s closed for user %d", session.ID, userID))
}

// connectToken takes ?token= first and falls back to a bearer Authorization header.
func connectToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
