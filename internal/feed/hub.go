package feed

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rickgao/niche-research/internal/model"
)

// Hub fans market snapshots out to WebSocket subscribers.
type Hub struct {
	cfg      HubConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	subs   map[uuid.UUID]*subscriber
	latest *Message
	closed bool

	seq atomic.Int64
	wg  sync.WaitGroup
}

// subscriber is one connected client.
type subscriber struct {
	id    uuid.UUID
	conn  *websocket.Conn
	queue *queue[Message]
	once  sync.Once
}

// NewHub creates a Hub.
func NewHub(cfg HubConfig, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultHubConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}

	return &Hub{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subs: make(map[uuid.UUID]*subscriber),
	}
}

// HandleSnapshot publishes a snapshot to every subscriber.
func (h *Hub) HandleSnapshot(snapshot model.MarketSnapshot) error {
	msg := Message{
		Type:     MessageTypeSnapshot,
		Seq:      h.seq.Add(1),
		Snapshot: snapshot,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHubClosed
	}
	h.latest = &msg
	subs := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.queue.push(msg)
	}

	h.logger.Debug("snapshot published", "seq", msg.Seq, "subscribers", len(subs))
	return nil
}

// ServeHTTP upgrades the request and streams snapshots until the client
// disconnects or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	s := &subscriber{
		id:    uuid.New(),
		conn:  conn,
		queue: newQueue[Message](h.cfg.QueueSize),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second),
		)
		conn.Close()
		return
	}
	h.subs[s.id] = s
	if h.latest != nil {
		s.queue.push(*h.latest)
	}
	h.wg.Add(2)
	h.mu.Unlock()

	h.logger.Info("feed subscriber connected", "subscriber", s.id, "remote", r.RemoteAddr)

	go h.writeLoop(s)
	go h.readLoop(s)
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber and waits for their goroutines.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.queue.close()
	}
	h.wg.Wait()

	h.logger.Info("feed hub closed", "subscribers", len(subs))
}

// writeLoop drains the subscriber's queue to its connection. A closed queue
// ends the loop with a close frame.
func (h *Hub) writeLoop(s *subscriber) {
	defer h.wg.Done()
	defer h.remove(s)

	pings := time.NewTicker(h.cfg.PingInterval)
	defer pings.Stop()

	frames := make(chan Message)
	go func() {
		defer close(frames)
		for {
			msg, ok := s.queue.pop()
			if !ok {
				return
			}
			frames <- msg
		}
	}()

	for {
		select {
		case msg, ok := <-frames:
			if !ok {
				s.conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(h.cfg.WriteTimeout),
				)
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := s.conn.WriteJSON(msg); err != nil {
				h.logger.Debug("feed write failed", "subscriber", s.id, "err", err)
				s.queue.close()
				drain(frames)
				return
			}
		case <-pings.C:
			deadline := time.Now().Add(h.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				h.logger.Debug("failed to send ping", "subscriber", s.id, "err", err)
				s.queue.close()
				drain(frames)
				return
			}
		}
	}
}

// readLoop discards inbound frames and detects disconnects.
func (h *Hub) readLoop(s *subscriber) {
	defer h.wg.Done()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.queue.close()
			return
		}
	}
}

// remove unregisters s and closes its connection once.
func (h *Hub) remove(s *subscriber) {
	s.once.Do(func() {
		h.mu.Lock()
		delete(h.subs, s.id)
		h.mu.Unlock()

		s.conn.Close()
		h.logger.Info("feed subscriber disconnected", "subscriber", s.id)
	})
}

func drain(frames <-chan Message) {
	for range frames {
	}
}
