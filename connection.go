package spamc

import (
	"bytes"
	"context"
	"fmt"
	"net"
)

// exchange performs one request/response round trip with a spamd server.
// The daemon answers exactly one request per TCP connection and hangs up,
// so the connection is dialed here, the write side is half-closed after the
// request, and the response is read until EOF into buf.
//
// The returned slice aliases buf and is only valid until its next reuse.
func exchange(ctx context.Context, dialer *net.Dialer, addr string, payload []byte, buf *bytes.Buffer) ([]byte, error) {
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spamc: dial %s: %w", addr, err)
	}
	defer conn.Close()

	// Deadline from the context; cleared when the context has none.
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("spamc: set deadline: %w", err)
		}
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("spamc: write to %s: %w", addr, err)
	}

	// Half-close tells spamd the request is complete even when it cannot
	// rely on Content-length framing.
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}

	buf.Reset()
	if _, err := buf.ReadFrom(conn); err != nil {
		return nil, fmt.Errorf("spamc: read from %s: %w", addr, err)
	}
	return buf.Bytes(), nil
}
