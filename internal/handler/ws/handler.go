// Package ws streams diagram generation over a websocket. Unlike the SSE
// endpoint it keeps the connection open across requests, so a chat UI can
// reuse one socket for a whole session.
package ws

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	generateModel "github.com/arcgen/backend/internal/model/generate"
)

// Streamer runs one generation request, reporting progress through emit.
type Streamer interface {
	Stream(ctx context.Context, req generateModel.Request, emit func(generateModel.Event) error) error
}

type Handler struct {
	streamer Streamer
	upgrader websocket.Upgrader
}

func New(streamer Streamer) *Handler {
	return &Handler{
		streamer: streamer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

// inbound is one client message. Only "generate" is understood; anything
// else gets an error event back without closing the socket.
type inbound struct {
	Type    string                `json:"type"`
	Request generateModel.Request `json:"request"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				!errors.Is(err, context.Canceled) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}

		if msg.Type != "generate" {
			h.send(conn, generateModel.Event{Type: generateModel.EventError, Error: "unknown message type: " + msg.Type})
			continue
		}
		if strings.TrimSpace(msg.Request.Prompt) == "" {
			h.send(conn, generateModel.Event{Type: generateModel.EventError, Error: "prompt is required"})
			continue
		}

		emit := func(ev generateModel.Event) error {
			return conn.WriteJSON(ev)
		}
		if err := h.streamer.Stream(ctx, msg.Request, emit); err != nil {
			h.send(conn, generateModel.Event{Type: generateModel.EventError, Error: err.Error()})
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, ev generateModel.Event) {
	if err := conn.WriteJSON(ev); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}
