package realtime

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Client is one dashboard websocket. It only ever receives job status
// events; the single command it may send is a per-job subscription.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// incomingMsg is a command from the browser, currently just "subscribe".
type incomingMsg struct {
	Action string `json:"action"`
	JobID  uint   `json:"jobId"`
}

// outgoingMsg wraps every event pushed to the browser, whether it arrived
// over NATS or the Postgres channel.
type outgoingMsg struct {
	Type    string          `json:"type"`
	JobID   uint            `json:"jobId"`
	Payload json.RawMessage `json:"payload"`
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}
}

// ReadPump consumes subscription commands until the connection drops, then
// unregisters the client from the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read: %v", err)
			}
			break
		}

		var msg incomingMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("realtime: bad client message: %v", err)
			continue
		}

		if msg.Action != "subscribe" {
			log.Printf("realtime: unsupported action %q", msg.Action)
			continue
		}
		if msg.JobID > 0 {
			c.hub.subscribe <- subscribeMsg{client: c, jobID: msg.JobID}
		}
	}
}

// WritePump drains the send buffer onto the connection and keeps it alive
// with pings. Runs until the hub closes the send channel or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub dropped us.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
