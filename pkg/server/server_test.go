package server_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
	"github.com/nmms-lang/nmms/pkg/server"
)

func mustAtom(t *testing.T, raw string) sentence.Sentence {
	s, err := sentence.Parse(raw, sentence.Propositional)
	require.NoError(t, err)
	return s
}

// TestTellThenQueryOverWebsocket drives a real connection/channel exchange
// (§11) end to end: tell a consequence, then ask whether it's derivable.
func TestTellThenQueryOverWebsocket(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddAtom(mustAtom(t, "A")))
	require.NoError(t, b.AddAtom(mustAtom(t, "B")))
	s := server.New("unused", "test-base", b, 10)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	leakOpt := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, leakOpt)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(server.Request{
		Tell: &server.TellRequest{Antecedent: "A", Consequent: "B"},
	}))
	var ack server.ChannelMessage
	require.NoError(t, conn.ReadJSON(&ack))
	require.Nil(t, ack.Error)
	require.NotNil(t, ack.Ack)

	require.NoError(t, conn.WriteJSON(server.Request{
		Query: &server.QueryRequest{Antecedent: "A", Consequent: "B"},
	}))
	var result server.ChannelMessage
	for {
		require.NoError(t, conn.ReadJSON(&result))
		if result.Result != nil || result.Error != nil {
			break
		}
	}
	require.Nil(t, result.Error)
	require.True(t, result.Result.Derivable)

	require.NoError(t, conn.Close())
	// give the server's readLoop/writeLoop a moment to unwind before the
	// deferred goleak check runs.
	time.Sleep(50 * time.Millisecond)
}

func TestMalformedRequestReturnsError(t *testing.T) {
	b := base.New(sentence.Propositional)
	s := server.New("unused", "test-base", b, 10)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var msg server.ChannelMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.NotNil(t, msg.Error)
}
