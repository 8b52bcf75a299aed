// Package sqlclient is a small synchronous client for the checkwire
// protocol.
package sqlclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/lirlia/100day-challenge-backend-sub013/server/checkwire"
)

// Client holds one connection. It locks send/recv, so Analyze may be called
// concurrently but requests serialize over the wire.
type Client struct {
	conn net.Conn
	mu   sync.Mutex

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// SetRWTimeout sets a per-request read/write deadline. Useful to avoid
// hanging forever if the server dies.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Analyze(sql string) (*checkwire.AnalyzeResponse, error) {
	return c.AnalyzeContext(context.Background(), sql)
}

// AnalyzeContext submits sql and waits for the response. Diagnostics travel
// inside the response; only transport and server-side operational failures
// become errors.
func (c *Client) AnalyzeContext(ctx context.Context, sql string) (*checkwire.AnalyzeResponse, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("sqlclient: nil client")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// Clear the deadline after the request so an idle connection does
		// not expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if err := checkwire.WriteFrame(c.conn, checkwire.AnalyzeRequest{SQL: sql}); err != nil {
		return nil, err
	}

	var resp checkwire.AnalyzeResponse
	if err := checkwire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// Prefer the context deadline if present; otherwise use rwTimeout.
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
