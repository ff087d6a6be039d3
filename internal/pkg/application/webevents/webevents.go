package webevents

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// WebEvents pushes topic messages to websocket clients watching the box the
// message refers to.
type WebEvents interface {
	messaging.Publisher
	Serve(w http.ResponseWriter, r *http.Request, boxID string)
	Clients(boxID string) int
	Shutdown()
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type boxRef struct {
	BoxID string `json:"boxId"`
}

type client struct {
	conn  *websocket.Conn
	boxID string
	send  chan []byte
}

type webEvents struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func New(log zerolog.Logger) WebEvents {
	return &webEvents{
		clients: map[string]map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (we *webEvents) Serve(w http.ResponseWriter, r *http.Request, boxID string) {
	conn, err := we.upgrader.Upgrade(w, r, nil)
	if err != nil {
		we.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, boxID: boxID, send: make(chan []byte, sendBuffer)}
	we.register(c)

	go we.writePump(c)
	go we.readPump(c)
}

func (we *webEvents) Clients(boxID string) int {
	we.mu.RLock()
	defer we.mu.RUnlock()
	return len(we.clients[boxID])
}

func (we *webEvents) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	body := message.Body()

	ref := boxRef{}
	if err := json.Unmarshal(body, &ref); err != nil || ref.BoxID == "" {
		return nil
	}

	b, err := json.Marshal(envelope{Type: message.TopicName(), Payload: body})
	if err != nil {
		return err
	}

	we.mu.Lock()
	defer we.mu.Unlock()

	for c := range we.clients[ref.BoxID] {
		select {
		case c.send <- b:
		default:
			we.log.Debug().Str("box_id", c.boxID).Msg("websocket client too slow, dropping it")
			we.removeLocked(c)
		}
	}

	return nil
}

func (we *webEvents) Shutdown() {
	we.mu.Lock()
	defer we.mu.Unlock()

	for _, clients := range we.clients {
		for c := range clients {
			we.removeLocked(c)
		}
	}
}

func (we *webEvents) register(c *client) {
	we.mu.Lock()
	defer we.mu.Unlock()

	if _, ok := we.clients[c.boxID]; !ok {
		we.clients[c.boxID] = map[*client]struct{}{}
	}
	we.clients[c.boxID][c] = struct{}{}
}

func (we *webEvents) unregister(c *client) {
	we.mu.Lock()
	defer we.mu.Unlock()
	we.removeLocked(c)
}

func (we *webEvents) removeLocked(c *client) {
	clients, ok := we.clients[c.boxID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(we.clients, c.boxID)
	}
}

func (we *webEvents) readPump(c *client) {
	defer func() {
		we.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				we.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

func (we *webEvents) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
