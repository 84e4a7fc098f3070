package server

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nmms-lang/nmms/internal/telemetry"
)

// connection is one accepted /ws client, grounded on the teacher's
// pkg/connection.go: a socket, an owning server, a table of channels keyed
// by a per-connection counter, and a single writer goroutine draining a
// message channel so concurrent channels never race on the socket.
type connection struct {
	id       uuid.UUID
	ws       *websocket.Conn
	server   *Server
	ctx      context.Context
	messages chan *ChannelMessage

	mu            sync.Mutex
	channels      map[int]*channel
	nextChannelID int
}

func newConnection(ws *websocket.Conn, s *Server) *connection {
	id := uuid.New()
	conn := &connection{
		id:       id,
		ws:       ws,
		server:   s,
		ctx:      telemetry.WithConnID(context.Background(), id.String()),
		messages: make(chan *ChannelMessage),
		channels: make(map[int]*channel),
	}
	go conn.writeLoop()
	return conn
}

// Ctx implements telemetry.Loggable.
func (c *connection) Ctx() context.Context { return c.ctx }

func (c *connection) openChannels() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.channels)
}

func (c *connection) writeLoop() {
	for msg := range c.messages {
		if err := c.ws.WriteJSON(msg); err != nil {
			telemetry.For(c).Warnw("error writing to connection", "error", err)
			return
		}
	}
}

func (c *connection) readLoop() {
	telemetry.For(c).Info("connection opened")
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			telemetry.For(c).Infow("connection closed", "error", err)
			c.server.removeConnection(c)
			close(c.messages)
			return
		}
		c.handleRequest(raw)
	}
}

func (c *connection) addChannel(req Request) *channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextChannelID
	c.nextChannelID++
	ch := newChannel(id, c, req)
	c.channels[id] = ch
	return ch
}

func (c *connection) removeChannel(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.channels, id)
}

func (c *connection) send(msg *ChannelMessage) {
	c.messages <- msg
}
