package client_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/client"
	"github.com/nmms-lang/nmms/pkg/sentence"
	"github.com/nmms-lang/nmms/pkg/server"
)

func mustAtom(t *testing.T, raw string) sentence.Sentence {
	s, err := sentence.Parse(raw, sentence.Propositional)
	require.NoError(t, err)
	return s
}

// TestClientTellAndQuery drives pkg/client against a real pkg/server
// instance, the way the teacher's pkg/client.go is exercised against
// pkg/server.go in its own tests.
func TestClientTellAndQuery(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddAtom(mustAtom(t, "rain")))
	require.NoError(t, b.AddAtom(mustAtom(t, "wet")))
	s := server.New("unused", "test-base", b, 10)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	c, err := client.Dial(wsURL)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Tell("rain", "wet"))

	var lines []string
	result, err := c.Query("rain", "wet", 10, func(line string) {
		lines = append(lines, line)
	})
	require.NoError(t, err)
	require.True(t, result.Derivable)
	require.NotEmpty(t, lines)
}

func TestClientTellRejectsUnparsableStatement(t *testing.T) {
	b := base.New(sentence.Propositional)
	s := server.New("unused", "test-base", b, 10)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	c, err := client.Dial(wsURL)
	require.NoError(t, err)
	defer c.Close()

	err = c.Tell("A &", "B")
	require.Error(t, err)
}
