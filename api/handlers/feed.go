package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/municipal-services-api/models"
)

const (
	// feedWriteWait bounds a single write to a client
	feedWriteWait = 10 * time.Second
	// feedSendBuffer is how many messages a client may fall behind before it is dropped
	feedSendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// IssueFeed pushes a summary of every accepted report to the connected
// websocket clients. Publish never waits on a client: each one has its own
// writer goroutine, and a client whose buffer is full is disconnected.
type IssueFeed struct {
	clients map[string]*feedClient
	mutex   sync.Mutex
}

// NewIssueFeed returns a feed with no clients
func NewIssueFeed() *IssueFeed {
	return &IssueFeed{clients: make(map[string]*feedClient)}
}

// HandleIssueFeed upgrades the request and keeps the client registered until
// it disconnects
func (f *IssueFeed) HandleIssueFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade error", "error", err)
		return
	}

	clientID := uuid.NewString()
	client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
	f.mutex.Lock()
	f.clients[clientID] = client
	f.mutex.Unlock()
	zap.S().Debugw("client connected to /ws/issues", "clientId", clientID)

	go client.writePump(clientID)

	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	f.remove(clientID)
	conn.Close()
	zap.S().Debugw("client disconnected from /ws/issues", "clientId", clientID)
}

// writePump owns all writes to the connection
func (c *feedClient) writePump(clientID string) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			zap.S().Warnw("failed to push issue to client", "clientId", clientID, "error", err)
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "client too slow"),
		time.Now().Add(time.Second))
	c.conn.Close()
}

// remove unregisters a client and stops its writer. It is a no-op for a
// client that is already gone.
func (f *IssueFeed) remove(clientID string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if client, ok := f.clients[clientID]; ok {
		delete(f.clients, clientID)
		close(client.send)
	}
}

// Publish queues summary for every client. Clients that have fallen
// feedSendBuffer messages behind are dropped.
func (f *IssueFeed) Publish(summary models.IssueSummary) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": "new_issue",
		"data":  summary,
	})
	if err != nil {
		zap.S().Errorw("failed to encode issue for the feed", "issueId", summary.ID, "error", err)
		return
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	for id, client := range f.clients {
		select {
		case client.send <- msg:
		default:
			zap.S().Warnw("dropping slow issue feed client", "clientId", id)
			delete(f.clients, id)
			close(client.send)
		}
	}
}

// Count returns the number of connected clients
func (f *IssueFeed) Count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.clients)
}
