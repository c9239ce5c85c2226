package fanout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/charleschow/soccer-props/internal/events"
	"github.com/charleschow/soccer-props/internal/telemetry"
)

const (
	clientSendBuf = 256
	writeDeadline = 5 * time.Second
	pongWait      = 30 * time.Second
	pingInterval  = 20 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// sheetClient receives every event, or only one fixture's when eventID is set.
type sheetClient struct {
	eventID string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
}

func (c *sheetClient) wants(eventID string) bool {
	return c.eventID == "" || eventID == "" || c.eventID == eventID
}

func (c *sheetClient) label() string {
	if c.eventID == "" {
		return "all"
	}
	return c.eventID
}

// Server fans out priced sheets to connected presentation clients. The
// latest sheet per fixture is replayed to clients that connect later.
type Server struct {
	mu      sync.Mutex
	clients map[*sheetClient]struct{}
	latest  map[string][]byte
}

func NewServer(bus *events.Bus) *Server {
	s := &Server{
		clients: make(map[*sheetClient]struct{}),
		latest:  make(map[string][]byte),
	}
	bus.Subscribe(events.EventSheetPriced, s.forward)
	bus.Subscribe(events.EventCatalogRefreshed, s.forward)
	return s
}

// forward is called on the publisher's goroutine. It serializes the event
// and enqueues it to matching clients' send channels (non-blocking).
func (s *Server) forward(evt events.Event) error {
	data, err := MarshalEvent(evt)
	if err != nil {
		return fmt.Errorf("fanout marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.Type == events.EventSheetPriced && evt.EventID != "" {
		s.latest[evt.EventID] = data
	}
	for c := range s.clients {
		if !c.wants(evt.EventID) {
			continue
		}
		select {
		case c.send <- data:
		default:
			telemetry.Warnf("fanout: dropping message for slow client event=%s", c.label())
		}
	}
	return nil
}

// HandleWS is the HTTP handler for WebSocket upgrade requests. Clients may
// narrow the stream with ?event=<fixture id>.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		telemetry.Warnf("fanout: upgrade failed: %v", err)
		return
	}

	c := &sheetClient{
		eventID: r.URL.Query().Get("event"),
		conn:    conn,
		send:    make(chan []byte, clientSendBuf),
		done:    make(chan struct{}),
	}

	s.mu.Lock()
	for id, data := range s.latest {
		if c.wants(id) && len(c.send) < clientSendBuf {
			c.send <- data
		}
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	telemetry.Metrics.FanoutClients.Inc()
	telemetry.Plainf("Fanout: Client Connected [%s]", c.label())

	go s.writePump(c)
	go s.readPump(c)
}

// writePump drains the client's send channel and writes to the WS connection.
// It owns the client lifecycle: on exit it removes the client from the map
// (so forward never sends to a stale channel) and closes the connection.
func (s *Server) writePump(c *sheetClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.removeClient(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				telemetry.Warnf("fanout: write error event=%s: %v", c.label(), err)
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump keeps the connection alive by reading pongs / close frames.
// On exit it signals writePump via c.done (never closes c.send).
func (s *Server) readPump(c *sheetClient) {
	defer close(c.done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) removeClient(c *sheetClient) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	telemetry.Metrics.FanoutClients.Dec()
	telemetry.Plainf("Fanout: Client Disconnected [%s]", c.label())
}

// ListenAndServe serves /ws until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: httpHandler(s)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	telemetry.Plainf("fanout: server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fanout listen: %w", err)
	}
	return nil
}

func httpHandler(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	return mux
}
