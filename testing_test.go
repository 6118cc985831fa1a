package spamc

import (
	"io"
	"net"
	"testing"
	"time"
)

// createListener starts a fake spamd on a random port and returns its
// address. Each accepted connection is handed to handler on its own
// goroutine.
func createListener(t testing.TB, handler func(conn net.Conn)) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}

	t.Cleanup(func() {
		listener.Close()
	})

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(c net.Conn) {
				defer c.Close()

				if handler != nil {
					handler(c)
				}
			}(conn)
		}
	}()

	// Give the server time to start
	time.Sleep(10 * time.Millisecond)

	return listener.Addr().String()
}

// respondWith replies with canned response bytes after reading the whole
// request (the client half-closes its write side, so reading to EOF works).
// Every received request is sent on requests when it is non-nil.
func respondWith(response string, requests chan<- []byte) func(conn net.Conn) {
	return func(conn net.Conn) {
		req, err := io.ReadAll(conn)
		if err != nil {
			return
		}
		if requests != nil {
			requests <- req
		}
		_, _ = conn.Write([]byte(response))
	}
}

// dropConnection closes the connection without answering.
func dropConnection(conn net.Conn) {
	_, _ = io.ReadAll(conn)
}
