// Package spamc is a client for the SpamAssassin spamd daemon. It speaks
// the SPAMC/SPAMD wire protocol (package protocol), balances messages over
// one or more servers with per-user affinity, bounds concurrency per server
// and optionally guards each server with a circuit breaker.
package spamc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/davrux/spamc/protocol"
)

var (
	ErrNoServers = errors.New("spamc: no servers provided")

	// ErrPingFailed reports a PING that came back with a non-OK status.
	ErrPingFailed = errors.New("spamc: ping failed")
)

// ResponseError is a spamd response whose status is not EX_OK.
type ResponseError struct {
	Status  protocol.Status
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("spamc: spamd returned %s: %s", e.Status, e.Message)
}

// Config holds client configuration. The zero value is usable except for
// MaxSessions, which must be positive.
type Config struct {
	// MaxSessions is the maximum number of concurrent exchanges per server.
	MaxSessions int32

	// Dialer is used to reach the servers. Nil means the default net.Dialer.
	Dialer *net.Dialer

	// User is the account name sent in the User header of every request.
	// Empty means no User header.
	User string

	// Compress enables zlib compression of request bodies.
	Compress bool

	// SelectServer picks the server for a routing key. Nil means
	// DefaultSelectServer.
	SelectServer SelectServerFunc

	// NewCircuitBreaker creates a breaker per server address. Nil disables
	// circuit breaking.
	NewCircuitBreaker func(addr string) CircuitBreaker
}

// serverPool couples one server's exchange pool with its breaker.
type serverPool struct {
	addr    string
	pool    *exchangePool
	breaker CircuitBreaker // nil if not configured
}

// Client talks to a set of spamd servers.
type Client struct {
	pools        []*serverPool
	selectServer SelectServerFunc
	user         string
	compress     bool
}

// NewClient creates a client for the given server addresses.
func NewClient(servers []string, config Config) (*Client, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}
	if config.MaxSessions <= 0 {
		return nil, errors.New("spamc: MaxSessions must be positive")
	}

	dialer := config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	selectServer := config.SelectServer
	if selectServer == nil {
		selectServer = DefaultSelectServer
	}

	client := &Client{
		selectServer: selectServer,
		user:         config.User,
		compress:     config.Compress,
	}

	for _, addr := range servers {
		pool, err := newExchangePool(addr, dialer, config.MaxSessions)
		if err != nil {
			client.Close()
			return nil, err
		}
		sp := &serverPool{addr: addr, pool: pool}
		if config.NewCircuitBreaker != nil {
			sp.breaker = config.NewCircuitBreaker(addr)
		}
		client.pools = append(client.pools, sp)
	}

	return client, nil
}

// Close releases all server pools. In-flight exchanges finish first.
func (c *Client) Close() {
	for _, sp := range c.pools {
		sp.pool.close()
	}
}

// Stats returns a pool snapshot per server.
func (c *Client) Stats() []PoolStats {
	stats := make([]PoolStats, 0, len(c.pools))
	for _, sp := range c.pools {
		stats = append(stats, sp.pool.stats())
	}
	return stats
}

// Result is the outcome of one spamd operation: the response status plus
// the values extracted from the verdict headers. No judgement is applied to
// them; IsSpam, Score and Threshold are reported as spamd sent them.
type Result struct {
	StatusCode protocol.Status
	Message    string

	// From the Spam header, when present.
	IsSpam    bool
	Score     float64
	Threshold float64

	// From the DidSet/DidRemove headers of a TELL response.
	DidSet    protocol.ActionFlags
	DidRemove protocol.ActionFlags

	// Symbols holds the matched rule names of a SYMBOLS response.
	Symbols []string

	Headers []protocol.Header
	Body    []byte
}

// TellAction says what a Tell call should teach the daemon: set the class
// in these databases, forget it in those.
type TellAction struct {
	Set    protocol.ActionFlags
	Remove protocol.ActionFlags
}

// Ping checks that a server answers. With multiple servers it probes the
// one an empty routing key selects.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, protocol.MethodPing, nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != protocol.StatusOK {
		return fmt.Errorf("%w: %s %s", ErrPingFailed, resp.StatusCode, resp.Message)
	}
	return nil
}

// Check asks for a verdict on the message without any processing.
func (c *Client) Check(ctx context.Context, message []byte) (*Result, error) {
	return c.roundTrip(ctx, protocol.MethodCheck, message, nil)
}

// Symbols checks the message and returns the names of the matched rules.
func (c *Client) Symbols(ctx context.Context, message []byte) (*Result, error) {
	result, err := c.roundTrip(ctx, protocol.MethodSymbols, message, nil)
	if result != nil && len(result.Body) > 0 {
		for _, sym := range strings.Split(strings.TrimSpace(string(result.Body)), ",") {
			result.Symbols = append(result.Symbols, strings.TrimSpace(sym))
		}
	}
	return result, err
}

// Report checks the message and returns a report in the body.
func (c *Client) Report(ctx context.Context, message []byte) (*Result, error) {
	return c.roundTrip(ctx, protocol.MethodReport, message, nil)
}

// ReportIfSpam checks the message and returns a report only when it is spam.
func (c *Client) ReportIfSpam(ctx context.Context, message []byte) (*Result, error) {
	return c.roundTrip(ctx, protocol.MethodReportIfSpam, message, nil)
}

// Process checks the message and returns the modified message in the body.
func (c *Client) Process(ctx context.Context, message []byte) (*Result, error) {
	return c.roundTrip(ctx, protocol.MethodProcess, message, nil)
}

// Headers checks the message and returns its modified headers in the body.
func (c *Client) Headers(ctx context.Context, message []byte) (*Result, error) {
	return c.roundTrip(ctx, protocol.MethodHeaders, message, nil)
}

// Tell teaches the daemon about the message: its class, and which
// databases to update or forget it in.
func (c *Client) Tell(ctx context.Context, message []byte, class protocol.MessageClassOption, action TellAction) (*Result, error) {
	headers := []protocol.Header{protocol.MessageClass{Class: class}}
	if action.Set != (protocol.ActionFlags{}) {
		headers = append(headers, protocol.Set{Action: action.Set})
	}
	if action.Remove != (protocol.ActionFlags{}) {
		headers = append(headers, protocol.Remove{Action: action.Remove})
	}
	return c.roundTrip(ctx, protocol.MethodTell, message, headers)
}

// roundTrip sends one request and turns the response into a Result. A
// non-OK status yields both the Result and a *ResponseError.
func (c *Client) roundTrip(ctx context.Context, method string, message []byte, extra []protocol.Header) (*Result, error) {
	resp, err := c.send(ctx, method, message, extra)
	if err != nil {
		return nil, err
	}

	result := newResult(resp)
	if resp.StatusCode != protocol.StatusOK {
		return result, &ResponseError{Status: resp.StatusCode, Message: resp.Message}
	}
	return result, nil
}

func (c *Client) send(ctx context.Context, method string, message []byte, extra []protocol.Header) (*protocol.RawResponse, error) {
	var headers []protocol.Header
	if c.user != "" {
		headers = append(headers, protocol.User{Username: c.user})
	}
	headers = append(headers, extra...)

	body := message
	if message != nil {
		if c.compress {
			compressed, err := compressBody(message)
			if err != nil {
				return nil, err
			}
			body = compressed
			headers = append(headers, protocol.Compress{})
		}
		headers = append(headers, protocol.ContentLength{Length: len(body)})
	}

	payload := protocol.EncodeRequest(&protocol.RawRequest{
		Method:  method,
		Headers: headers,
		Body:    body,
	})

	sp := c.pickServer(c.user)
	if sp.breaker == nil {
		return sp.pool.roundTrip(ctx, payload)
	}

	var resp *protocol.RawResponse
	_, err := sp.breaker.Execute(func() (bool, error) {
		var err error
		resp, err = sp.pool.roundTrip(ctx, payload)
		return err == nil, err
	})
	return resp, err
}

func (c *Client) pickServer(key string) *serverPool {
	if len(c.pools) == 1 {
		return c.pools[0]
	}
	idx := c.selectServer(key, len(c.pools))
	if idx < 0 || idx >= len(c.pools) {
		idx = 0
	}
	return c.pools[idx]
}

func newResult(resp *protocol.RawResponse) *Result {
	result := &Result{
		StatusCode: resp.StatusCode,
		Message:    resp.Message,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
	for _, h := range resp.Headers {
		switch h := h.(type) {
		case protocol.Spam:
			result.IsSpam = h.Value
			result.Score = h.Score
			result.Threshold = h.Threshold
		case protocol.DidSet:
			result.DidSet = h.Action
		case protocol.DidRemove:
			result.DidRemove = h.Action
		}
	}
	return result
}
