package websocket

import (
	"encoding/json"
	"sync"

	"github.com/ikkim/furniture-backend/pkg/logger"
)

// Notification is pushed to every open session of a user.
type Notification struct {
	Type    string      `json:"type"` // order.placed, order.cancelled, order.status, order.deleted
	OrderID uint        `json:"order_id"`
	Data    interface{} `json:"data,omitempty"`
}

// Client WebSocket 클라이언트
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// NewClient creates a client with a buffered send queue.
func NewClient(hub *Hub, conn *Conn, userID uint) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

// Hub WebSocket 연결 관리자
type Hub struct {
	// 등록된 클라이언트들 (UserID -> []*Client - 멀티 디바이스 지원)
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMessage
	stop       chan struct{}
	stopOnce   sync.Once

	mu sync.RWMutex
}

type directMessage struct {
	UserID  uint
	Message []byte
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		direct:     make(chan *directMessage, 1024),
		stop:       make(chan struct{}),
	}
}

// Run Hub 실행. Returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for userID, clientList := range h.clients {
				for _, c := range clientList {
					close(c.Send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			// 등록 대기 중이던 클라이언트도 정리
			for {
				select {
				case client := <-h.register:
					close(client.Send)
				default:
					return
				}
			}

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.direct:
			h.mu.RLock()
			var stale []*Client
			for _, client := range h.clients[message.UserID] {
				select {
				case client.Send <- message.Message:
				default:
					stale = append(stale, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range stale {
				logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
					"user_id": client.UserID,
				})
				h.removeClient(client)
			}
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientList, ok := h.clients[client.UserID]
	if !ok {
		return
	}

	newList := make([]*Client, 0, len(clientList))
	found := false
	for _, c := range clientList {
		if c == client {
			found = true
			continue
		}
		newList = append(newList, c)
	}
	if !found {
		return
	}

	if len(newList) == 0 {
		delete(h.clients, client.UserID)
	} else {
		h.clients[client.UserID] = newList
	}
	close(client.Send)

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"user_id":            client.UserID,
		"remaining_sessions": len(newList),
	})
}

// Stop shuts the hub down and closes every client queue.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Register 클라이언트 등록. After Stop the client's queue is closed instead.
func (h *Hub) Register(client *Client) {
	select {
	case <-h.stop:
		close(client.Send)
		return
	default:
	}

	select {
	case h.register <- client:
	case <-h.stop:
		close(client.Send)
	}
}

// Unregister 클라이언트 등록 해제. Never blocks once the hub is stopped;
// Run has already closed every queue by then.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

// SendToUser queues a message for every session of the user. Messages for
// offline users and messages that do not fit the queue are dropped.
func (h *Hub) SendToUser(userID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err)
		return err
	}

	select {
	case h.direct <- &directMessage{UserID: userID, Message: data}:
	default:
		logger.Warn("Direct channel full, message dropped", map[string]interface{}{
			"user_id": userID,
		})
	}
	return nil
}

// NotifyOrder pushes an order notification to the user.
func (h *Hub) NotifyOrder(userID uint, eventType string, orderID uint, data interface{}) {
	if err := h.SendToUser(userID, Notification{Type: eventType, OrderID: orderID, Data: data}); err != nil {
		logger.Error("Failed to send order notification", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
	}
}

// IsUserOnline 사용자 온라인 여부 확인
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// SessionCount reports how many sessions the user has open.
func (h *Hub) SessionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
