package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/puddle/v2"
	"github.com/wneessen/go-mail"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/metrics"
)

// maxIdle bounds how long an idle session is trusted before it is re-dialed.
const maxIdle = 30 * time.Second

// ErrPoolClosed is returned by Pool.Send after Close.
var ErrPoolClosed = errors.New("mail channel pool is closed")

type pooledChannel struct {
	ch   Channel
	sent int
}

type channelKey struct {
	transport Transport
	cred      Credentials
}

// Pool reuses mail channels across sequential sends. It holds at most
// PoolSize sessions and retires a session after MaxMessagesPerConnection
// messages or after its first failed send. Sessions are keyed by transport
// and credentials. A configuration change waits for in-flight sends on the
// old sessions and closes them before the new configuration dials, so the
// PoolSize ceiling holds across the switch.
type Pool struct {
	dialer     Dialer
	size       int32
	maxPerConn int

	mu     sync.Mutex
	key    channelKey
	res    *puddle.Pool[*pooledChannel]
	closed bool
}

// NewPool returns an empty Pool. Sessions are dialed on first use.
func NewPool(dialer Dialer, policy config.TransportPolicy) *Pool {
	policy = policy.WithDefaults()
	return &Pool{
		dialer:     dialer,
		size:       int32(policy.PoolSize), //nolint:gosec // small configured value
		maxPerConn: policy.MaxMessagesPerConnection,
	}
}

// Send submits msg over a pooled session for t and cred.
func (p *Pool) Send(ctx context.Context, t Transport, cred Credentials, msg *mail.Msg) error {
	res, err := p.acquire(ctx, t, cred)
	if err != nil {
		return err
	}

	// The session is destroyed unless the send completes under the ceiling,
	// which also covers a panicking Send.
	retire := true
	defer func() {
		if retire {
			res.Destroy()
		} else {
			res.Release()
		}
	}()

	pc := res.Value()
	if err := pc.ch.Send(ctx, msg); err != nil {
		return err
	}
	pc.sent++
	retire = pc.sent >= p.maxPerConn
	return nil
}

// Close ends every idle session and rejects further sends.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.res != nil {
		p.res.Close()
		p.res = nil
	}
}

func (p *Pool) current(t Transport, cred Credentials) (*puddle.Pool[*pooledChannel], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	key := channelKey{transport: t, cred: cred}
	if p.res != nil && p.key == key {
		return p.res, nil
	}

	next, err := puddle.NewPool(&puddle.Config[*pooledChannel]{
		// puddle runs the constructor on its own goroutine.
		Constructor: func(ctx context.Context) (pc *pooledChannel, err error) {
			defer func() {
				if r := recover(); r != nil {
					metrics.ChannelDials.WithLabelValues("error").Inc()
					err = fmt.Errorf("dialing panicked: %v", r)
				}
			}()
			ch, err := p.dialer.Dial(ctx, key.transport, key.cred)
			if err != nil {
				metrics.ChannelDials.WithLabelValues("error").Inc()
				return nil, err
			}
			metrics.ChannelDials.WithLabelValues("ok").Inc()
			return &pooledChannel{ch: ch}, nil
		},
		Destructor: func(pc *pooledChannel) {
			_ = pc.ch.Close()
		},
		MaxSize: p.size,
	})
	if err != nil {
		return nil, fmt.Errorf("creating mail channel pool: %w", err)
	}

	if old := p.res; old != nil {
		// Blocks until in-flight sessions are released and destroyed.
		old.Close()
	}
	p.key = key
	p.res = next
	return next, nil
}

// acquire returns a live session for t and cred. A pool closed by a
// configuration switch between lookup and acquire is looked up again.
func (p *Pool) acquire(ctx context.Context, t Transport, cred Credentials) (*puddle.Resource[*pooledChannel], error) {
	for {
		pool, err := p.current(t, cred)
		if err != nil {
			return nil, err
		}
		res, err := acquireFresh(ctx, pool)
		if errors.Is(err, puddle.ErrClosedPool) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("opening mail channel: %w", err)
		}
		return res, nil
	}
}

func acquireFresh(ctx context.Context, pool *puddle.Pool[*pooledChannel]) (*puddle.Resource[*pooledChannel], error) {
	for {
		res, err := pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if res.IdleDuration() > maxIdle {
			res.Destroy()
			continue
		}
		return res, nil
	}
}
