package alerts

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Alert is pushed to connected dashboard clients whenever a stock
// adjustment leaves an item at or below its minimum quantity.
type Alert struct {
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	StockQty  float64   `json:"stock_qty"`
	MinQty    float64   `json:"min_qty"`
	Timestamp time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans low-stock alerts out to every connected websocket client.
type Hub struct {
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan Alert
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert, 16),
	}
}

// Run delivers broadcasts; call it once from a goroutine at startup.
func (h *Hub) Run() {
	for alert := range h.broadcast {
		h.clientsMu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(alert); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMu.Unlock()
	}
}

// Publish queues an alert without blocking the caller. Alerts are advisory;
// if the buffer is full the alert is dropped.
func (h *Hub) Publish(alert Alert) {
	select {
	case h.broadcast <- alert:
	default:
	}
}

// ServeWS upgrades the request and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Alerts] websocket upgrade failed: %v", err)
		return
	}

	h.clientsMu.Lock()
	h.clients[conn] = true
	h.clientsMu.Unlock()

	// Drain (and discard) client messages so pings are answered and
	// closes are noticed.
	go func() {
		defer func() {
			h.clientsMu.Lock()
			delete(h.clients, conn)
			h.clientsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
