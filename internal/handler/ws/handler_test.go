package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	generateModel "github.com/arcgen/backend/internal/model/generate"
)

type stubStreamer struct {
	events []generateModel.Event
}

func (s *stubStreamer) Stream(ctx context.Context, req generateModel.Request, emit func(generateModel.Event) error) error {
	for _, ev := range s.events {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return nil
}

func dial(t *testing.T, stub *stubStreamer) *websocket.Conn {
	t.Helper()
	r := chi.NewRouter()
	New(stub).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketGenerate(t *testing.T) {
	stub := &stubStreamer{events: []generateModel.Event{
		{Type: generateModel.EventStart},
		{Type: generateModel.EventEnd, Response: &generateModel.Response{DiagramID: "d1"}},
	}}
	conn := dial(t, stub)

	err := conn.WriteJSON(inbound{Type: "generate", Request: generateModel.Request{Prompt: "draw"}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var start generateModel.Event
	if err := conn.ReadJSON(&start); err != nil {
		t.Fatalf("read start: %v", err)
	}
	if start.Type != generateModel.EventStart {
		t.Errorf("expected start event, got %q", start.Type)
	}

	var end generateModel.Event
	if err := conn.ReadJSON(&end); err != nil {
		t.Fatalf("read end: %v", err)
	}
	if end.Type != generateModel.EventEnd || end.Response == nil || end.Response.DiagramID != "d1" {
		t.Errorf("unexpected end event: %+v", end)
	}
}

func TestWebSocketUnknownMessageType(t *testing.T) {
	conn := dial(t, &stubStreamer{})

	if err := conn.WriteJSON(inbound{Type: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var ev generateModel.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != generateModel.EventError || !strings.Contains(ev.Error, "unknown message type") {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestWebSocketMissingPrompt(t *testing.T) {
	conn := dial(t, &stubStreamer{})

	if err := conn.WriteJSON(inbound{Type: "generate"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var ev generateModel.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != generateModel.EventError || !strings.Contains(ev.Error, "prompt is required") {
		t.Errorf("unexpected event: %+v", ev)
	}
}
