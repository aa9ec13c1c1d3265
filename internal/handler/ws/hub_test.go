package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SentiPnL/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.Count() == 1 })
	hub.Broadcast(&models.Report{ID: "r-42", MergedRows: 9})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got models.Report
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "r-42" || got.MergedRows != 9 {
		t.Fatalf("got %+v", got)
	}

	conn.Close()
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(nil)
	cl := &client{send: make(chan []byte, 1)}
	hub.clients[cl] = struct{}{}

	hub.Broadcast(&models.Report{ID: "a"})
	hub.Broadcast(&models.Report{ID: "b"})

	if hub.Count() != 0 {
		t.Fatalf("slow subscriber should be dropped")
	}
	if _, ok := <-cl.send; !ok {
		t.Fatalf("first message should still be buffered")
	}
	if _, ok := <-cl.send; ok {
		t.Fatalf("channel should be closed after drop")
	}
}
