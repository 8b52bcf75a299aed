package sqlclient

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/server/checkwire"
)

// startTestServer runs a minimal frame loop against the real handler and
// returns its address.
func startTestServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	h := checkwire.NewHandler(catalog.Sample())
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer func() { _ = c.Close() }()
				for {
					var req checkwire.AnalyzeRequest
					if err := checkwire.ReadFrame(c, &req); err != nil {
						return
					}
					if err := checkwire.WriteFrame(c, h.Handle(req)); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func TestClient_Analyze(t *testing.T) {
	addr := startTestServer(t)

	c, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(time.Second)

	resp, err := c.Analyze("SELECT id FROM users;")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "SELECT id FROM users;", resp.AST)
}

func TestClient_AnalyzeReturnsDiagnostics(t *testing.T) {
	addr := startTestServer(t)

	c, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	// Diagnostics are data, not a client-side error.
	resp, err := c.Analyze("SELECT missing FROM users;")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.Len(t, resp.SemanticErrors, 1)
	assert.Contains(t, resp.SemanticErrors[0].Message, "Column or alias 'missing'")
}

func TestClient_ServerErrorBecomesError(t *testing.T) {
	addr := startTestServer(t)

	c, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	resp, err := c.Analyze("")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "empty sql")
}

func TestClient_NilGuards(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close())

	_, err := c.Analyze("SELECT 1;")
	require.Error(t, err)
}
