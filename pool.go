package spamc

import (
	"bytes"
	"context"
	"log/slog"
	"net"

	"github.com/jackc/puddle/v2"

	"github.com/davrux/spamc/protocol"
)

// slot is a pooled exchange slot for one server: a concurrency token that
// owns a reusable receive buffer. Connections are not pooled because spamd
// hangs up after every response.
type slot struct {
	addr   string
	dialer *net.Dialer
	buf    bytes.Buffer
}

// exchangePool bounds concurrent exchanges with one server and recycles
// receive buffers across them.
type exchangePool struct {
	addr string
	pool *puddle.Pool[*slot]
}

func newExchangePool(addr string, dialer *net.Dialer, maxSize int32) (*exchangePool, error) {
	p := &exchangePool{addr: addr}

	pool, err := puddle.NewPool(&puddle.Config[*slot]{
		Constructor: func(ctx context.Context) (*slot, error) {
			return &slot{addr: addr, dialer: dialer}, nil
		},
		Destructor: func(*slot) {},
		MaxSize:    maxSize,
	})
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// roundTrip acquires a slot, performs one exchange and parses the response.
// The response body is copied out before the slot's buffer is released.
func (p *exchangePool) roundTrip(ctx context.Context, payload []byte) (*protocol.RawResponse, error) {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer res.Release()

	s := res.Value()
	data, err := exchange(ctx, s.dialer, s.addr, payload, &s.buf)
	if err != nil {
		return nil, err
	}

	resp, err := protocol.ParseResponse(data)
	if err != nil {
		slog.Error("spamc: invalid response from server", "addr", s.addr, "error", err)
		return nil, err
	}
	if resp.Body != nil {
		resp.Body = append([]byte(nil), resp.Body...)
	}
	return resp, nil
}

func (p *exchangePool) close() {
	p.pool.Close()
}

// PoolStats is a snapshot of one server's exchange pool.
type PoolStats struct {
	Addr                 string
	TotalSlots           int32
	IdleSlots            int32
	ActiveSlots          int32
	AcquireCount         int64
	EmptyAcquireCount    int64
	CanceledAcquireCount int64
}

func (p *exchangePool) stats() PoolStats {
	s := p.pool.Stat()
	return PoolStats{
		Addr:                 p.addr,
		TotalSlots:           s.TotalResources(),
		IdleSlots:            s.IdleResources(),
		ActiveSlots:          s.AcquiredResources(),
		AcquireCount:         s.AcquireCount(),
		EmptyAcquireCount:    s.EmptyAcquireCount(),
		CanceledAcquireCount: s.CanceledAcquireCount(),
	}
}
