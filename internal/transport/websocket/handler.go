package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-agent/internal/domain"
	"github.com/iamasit07/connect4-agent/internal/service/decision"
	"github.com/iamasit07/connect4-agent/pkg/uid"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
	maxFrame     = 64 * 1024
)

type Decider interface {
	Decide(ctx context.Context, req decision.Request) (decision.Response, error)
}

// Handler serves the decision stream: every text frame is a request and
// gets exactly one response frame back, in order.
type Handler struct {
	ConnManager *ConnectionManager
	Decider     Decider
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, d Decider, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Decider:     d,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("upgrade failed")
		return
	}

	h.handleConnection(r.Context(), conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	id := uid.NewConnectionID()
	h.ConnManager.AddConnection(id, conn)
	defer h.ConnManager.RemoveConnection(id)

	logger := log.With().Str("component", "ws").Str("conn_id", id).Logger()
	logger.Info().Msg("connection opened")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn.SetReadLimit(maxFrame)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := h.ConnManager.Ping(id); err != nil {
					return
				}
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("connection closed unexpectedly")
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		resp := h.decide(ctx, data)
		if err := h.ConnManager.SendJSON(id, resp); err != nil {
			logger.Warn().Err(err).Msg("write failed")
			break
		}
	}

	logger.Info().Msg("connection closed")
}

func (h *Handler) decide(ctx context.Context, data []byte) decision.Response {
	var req decision.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return decision.Response{Move: domain.NoMove, Error: fmt.Sprintf("%s: %v", decision.ErrInvalidRequest, err)}
	}
	resp, _ := h.Decider.Decide(ctx, req)
	return resp
}
