package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nmms-lang/nmms/internal/telemetry"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// channel is one request/response exchange on a connection, grounded on the
// teacher's pkg/channel.go: a small object owning a context derived from
// its connection, responsible for validating and running exactly one
// request and reporting done-ness back to the connection.
type channel struct {
	id      int
	conn    *connection
	ctx     context.Context
	request Request
}

func newChannel(id int, conn *connection, req Request) *channel {
	return &channel{
		id:      id,
		conn:    conn,
		ctx:     telemetry.WithBase(conn.Ctx(), conn.server.baseName),
		request: req,
	}
}

// Ctx implements telemetry.Loggable.
func (ch *channel) Ctx() context.Context { return ch.ctx }

func (c *connection) handleRequest(raw []byte) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		msg := err.Error()
		c.send(&ChannelMessage{ChannelID: -1, Error: &msg})
		return
	}

	ch := c.addChannel(req)
	defer c.removeChannel(ch.id)
	ch.run()
}

func (ch *channel) run() {
	switch {
	case ch.request.Query != nil:
		ch.runQuery(ch.request.Query)
	case ch.request.Tell != nil:
		ch.runTell(ch.request.Tell)
	case ch.request.Atom != nil:
		ch.runAtom(ch.request.Atom)
	default:
		msg := "request must set exactly one of query, tell, or atom"
		ch.conn.send(&ChannelMessage{ChannelID: ch.id, Error: &msg})
	}
}

func (ch *channel) runQuery(q *QueryRequest) {
	start := time.Now()
	defer func() { ch.conn.server.metrics.queryLatency.Observe(time.Since(start).Seconds()) }()

	mode := ch.conn.server.mode
	gammaList, err := sentence.ParseList(q.Antecedent, mode)
	if err != nil {
		ch.fail(err)
		return
	}
	deltaList, err := sentence.ParseList(q.Consequent, mode)
	if err != nil {
		ch.fail(err)
		return
	}

	result := ch.conn.server.Query(
		sentence.FromSlice(gammaList),
		sentence.FromSlice(deltaList),
		q.MaxDepth,
		func(line string) {
			ch.conn.send(&ChannelMessage{ChannelID: ch.id, Update: &UpdateMessage{Line: line}})
		},
	)

	ch.conn.send(&ChannelMessage{
		ChannelID: ch.id,
		Result: &ResultMessage{
			Derivable:    result.Derivable,
			DepthReached: result.DepthReached,
			CacheHits:    result.CacheHits,
		},
	})
}

func (ch *channel) runTell(t *TellRequest) {
	start := time.Now()
	defer func() { ch.conn.server.metrics.tellLatency.Observe(time.Since(start).Seconds()) }()

	mode := ch.conn.server.mode
	gammaList, err := sentence.ParseList(t.Antecedent, mode)
	if err != nil {
		ch.fail(err)
		return
	}
	deltaList, err := sentence.ParseList(t.Consequent, mode)
	if err != nil {
		ch.fail(err)
		return
	}

	if err := ch.conn.server.Tell(sentence.FromSlice(gammaList), sentence.FromSlice(deltaList)); err != nil {
		ch.fail(err)
		return
	}
	ack := "ok"
	ch.conn.send(&ChannelMessage{ChannelID: ch.id, Ack: &ack})
}

func (ch *channel) runAtom(a *AtomRequest) {
	mode := ch.conn.server.mode
	s, err := sentence.Parse(a.Atom, mode)
	if err != nil {
		ch.fail(err)
		return
	}
	if err := ch.conn.server.AddAtom(s); err != nil {
		ch.fail(err)
		return
	}
	ack := "ok"
	ch.conn.send(&ChannelMessage{ChannelID: ch.id, Ack: &ack})
}

func (ch *channel) fail(err error) {
	msg := err.Error()
	ch.conn.send(&ChannelMessage{ChannelID: ch.id, Error: &msg})
}
