package checkwire

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"
)

// readTimeout bounds how long a connection may sit idle between requests.
const readTimeout = 5 * time.Minute

// Serve accepts connections on addr until ctx is cancelled, one goroutine
// per connection.
func Serve(ctx context.Context, addr string, h *Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Printf("sqlcheck tcp server listening on %s", addr)
	return serveListener(ctx, ln, h)
}

func serveListener(ctx context.Context, ln net.Listener, h *Handler) error {
	defer func() { _ = ln.Close() }()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			log.Printf("accept: %v", err)
			continue
		}
		go handleConn(ctx, conn, h)
	}
}

func handleConn(ctx context.Context, conn net.Conn, h *Handler) {
	defer func() { _ = conn.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		var req AnalyzeRequest
		if err := ReadFrame(conn, &req); err != nil {
			if errors.Is(err, ErrBadJSON) {
				// The frame body arrived in full, so answer and keep the
				// connection.
				_ = WriteFrame(conn, AnalyzeResponse{Error: err.Error()})
				continue
			}
			// Client closed or the stream is unusable.
			return
		}

		_ = WriteFrame(conn, h.Handle(req))
	}
}
