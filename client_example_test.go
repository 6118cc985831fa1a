package spamc_test

import (
	"context"
	"fmt"
	"time"

	"github.com/davrux/spamc"
)

// Check a message against a single local spamd.
func ExampleNewClient() {
	client, err := spamc.NewClient([]string{"127.0.0.1:783"}, spamc.Config{
		MaxSessions: 4,
		User:        "alice",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := client.Check(ctx, []byte("Subject: hello\r\n\r\nmessage body\r\n"))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("spam=%v score=%.1f threshold=%.1f\n", result.IsSpam, result.Score, result.Threshold)
}

// Spread load over several spamd servers. Messages for one user always hit
// the same server, and a circuit breaker shields each server.
func ExampleNewCircuitBreakerConfig() {
	client, err := spamc.NewClient(
		[]string{"10.0.0.1:783", "10.0.0.2:783"},
		spamc.Config{
			MaxSessions:       8,
			User:              "bob",
			NewCircuitBreaker: spamc.NewCircuitBreakerConfig(3, time.Minute, 10*time.Second),
		},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		fmt.Println("spamd unreachable:", err)
	}
}
