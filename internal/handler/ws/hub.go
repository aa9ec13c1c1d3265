package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"SentiPnL/internal/domain/models"
	drepo "SentiPnL/internal/domain/repository"
	svcmetrics "SentiPnL/internal/service/metrics"
	applogger "SentiPnL/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 8
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub pushes every finished report to connected websocket subscribers.
// A subscriber whose buffer is full is disconnected instead of blocking the broadcast.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	l        *applogger.Logger
}

var _ drepo.ReportNotifier = (*Hub)(nil)

func NewHub(l *applogger.Logger) *Hub {
	if l == nil {
		l = applogger.Nop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		l: l,
	}
}

func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/ws", h.Serve)
}

// Serve upgrades the request and keeps the subscription open until the peer leaves.
func (h *Hub) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.l.Warn("websocket upgrade failed", applogger.Error(err))
		return nil
	}
	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(cl)

	go h.writePump(cl)
	h.readPump(cl)
	return nil
}

// Broadcast sends r as JSON to every subscriber.
func (h *Hub) Broadcast(r *models.Report) {
	b, err := json.Marshal(r)
	if err != nil {
		h.l.Error("encode report for websocket", applogger.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- b:
		default:
			h.l.Warn("dropping slow websocket subscriber")
			h.removeLocked(cl)
		}
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		h.removeLocked(cl)
	}
}

func (h *Hub) add(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	svcmetrics.WSClients.Inc()
	h.l.Debug("websocket subscriber joined", applogger.Int("clients", n))
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	h.removeLocked(cl)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	cl.close()
	svcmetrics.WSClients.Dec()
}

func (h *Hub) readPump(cl *client) {
	defer func() {
		h.remove(cl)
		_ = cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
