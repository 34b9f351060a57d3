package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnections is the maximum number of snapshot feed connections
	MaxWSConnections = 64

	defaultSnapshotInterval = 100 * time.Millisecond
)

// feedMessage is the envelope of every message on the snapshot feed
type feedMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// WebSocketHub fans match snapshots out to feed clients
type WebSocketHub struct {
	clients    map[*websocket.Conn]string // conn -> client IP
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	upgrader websocket.Upgrader
	interval time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewWebSocketHub creates a hub that accepts the given browser origins and
// broadcasts at the given interval (100ms when zero)
func NewWebSocketHub(allowedOrigins []string, interval time.Duration) *WebSocketHub {
	if interval <= 0 {
		interval = defaultSnapshotInterval
	}
	h := &WebSocketHub{
		clients:    make(map[*websocket.Conn]string),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		interval:   interval,
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if isAllowedOrigin(origin, allowedOrigins) {
				return true
			}
			log.Printf("WebSocket connection rejected from origin: %s", origin)
			RecordConnectionRejected("origin")
			return false
		},
	}
	return h
}

// Run serves register, unregister and broadcast until Stop
func (h *WebSocketHub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			UpdateWSConnections(0)
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = conn.RemoteAddr().String()
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("Feed client connected (%d total)", count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()

			log.Printf("Feed client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			count := len(h.clients)
			h.mu.Unlock()
			UpdateWSConnections(count)
			IncrementWSMessages()
		}
	}
}

// Stop closes all connections and ends Run and the broadcast loop
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Broadcast queues an event for all connected clients.
// Messages are dropped when the queue is full.
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	jsonBytes, err := json.Marshal(feedMessage{Event: event, Data: data})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop publishes the latest snapshot at the hub interval
// while at least one client is connected
func (h *WebSocketHub) StartBroadcastLoop(src SnapshotSource) {
	ticker := time.NewTicker(h.interval)

	go func() {
		defer ticker.Stop()
		var lastTick uint64
		sent := false
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				if h.ClientCount() == 0 {
					continue
				}
				snap := src.Snapshot()
				// Paused matches publish nothing new
				if sent && snap.Tick == lastTick {
					continue
				}
				h.Broadcast("match:snapshot", snap)
				lastTick, sent = snap.Tick, true
			}
		}
	}()
}

// HandleWebSocket upgrades a feed connection
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.ClientCount() >= MaxWSConnections {
		log.Printf("WebSocket connection rejected from %s: limit reached", GetClientIP(r))
		RecordConnectionRejected("ws_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	// The feed is one-way; reading only detects the close
	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
