// Package client is a small websocket client for pkg/server, grounded on
// the teacher's pkg/client.go: a connection that multiplexes outgoing
// requests and incoming frames over two goroutines and channels, so callers
// never touch the socket directly.
package client

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/nmms-lang/nmms/pkg/server"
)

// Client is a connection to a running nmms server.
type Client struct {
	conn           *websocket.Conn
	url            string
	nextChannelID  int
	requestsToSend chan sendRequest
	incoming       chan *server.ChannelMessage
	channels       map[int]*Channel
}

type sendRequest struct {
	req        server.Request
	resultChan chan *Channel
}

// Channel is one in-flight query or tell exchange.
type Channel struct {
	ID      int
	Updates chan *server.ChannelMessage
}

// Dial connects to an nmms server's /ws endpoint.
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", url)
	}
	c := &Client{
		conn:           conn,
		url:            url,
		requestsToSend: make(chan sendRequest),
		incoming:       make(chan *server.ChannelMessage),
		channels:       make(map[int]*Channel),
	}
	go c.dispatchLoop()
	go c.readLoop()
	return c, nil
}

// Close closes the underlying websocket connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) dispatchLoop() {
	for {
		select {
		case sr := <-c.requestsToSend:
			ch := &Channel{ID: c.nextChannelID, Updates: make(chan *server.ChannelMessage)}
			c.nextChannelID++
			c.channels[ch.ID] = ch
			sr.resultChan <- ch
			raw, err := json.Marshal(sr.req)
			if err != nil {
				continue
			}
			c.conn.WriteMessage(websocket.TextMessage, raw)

		case msg := <-c.incoming:
			if ch, ok := c.channels[msg.ChannelID]; ok {
				ch.Updates <- msg
				if msg.Result != nil || msg.Ack != nil || msg.Error != nil {
					delete(c.channels, msg.ChannelID)
					close(ch.Updates)
				}
			}
		}
	}
}

func (c *Client) readLoop() {
	defer c.conn.Close()
	for {
		var msg server.ChannelMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.incoming <- &msg
	}
}

func (c *Client) send(req server.Request) *Channel {
	resultChan := make(chan *Channel)
	c.requestsToSend <- sendRequest{req: req, resultChan: resultChan}
	return <-resultChan
}

// Query streams trace lines to onUpdate and returns the final result.
func (c *Client) Query(antecedent, consequent string, maxDepth int, onUpdate func(line string)) (*server.ResultMessage, error) {
	ch := c.send(server.Request{Query: &server.QueryRequest{
		Antecedent: antecedent,
		Consequent: consequent,
		MaxDepth:   maxDepth,
	}})
	for msg := range ch.Updates {
		if msg.Error != nil {
			return nil, errors.New(*msg.Error)
		}
		if msg.Update != nil && onUpdate != nil {
			onUpdate(msg.Update.Line)
		}
		if msg.Result != nil {
			return msg.Result, nil
		}
	}
	return nil, errors.New("connection closed before a result arrived")
}

// Tell adds (antecedent, consequent) as a base consequence on the server.
func (c *Client) Tell(antecedent, consequent string) error {
	ch := c.send(server.Request{Tell: &server.TellRequest{Antecedent: antecedent, Consequent: consequent}})
	msg := <-ch.Updates
	if msg.Error != nil {
		return errors.New(*msg.Error)
	}
	return nil
}

// AddAtom adds a bare atom to the server's base language.
func (c *Client) AddAtom(atom string) error {
	ch := c.send(server.Request{Atom: &server.AtomRequest{Atom: atom}})
	msg := <-ch.Updates
	if msg.Error != nil {
		return errors.New(*msg.Error)
	}
	return nil
}
