package notification_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wneessen/go-mail"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// fakeDialer records dials and hands out in-memory channels.
type fakeDialer struct {
	mu       sync.Mutex
	dials    []notification.Transport
	creds    []notification.Credentials
	channels []*fakeChannel

	dialErr error
	sendErr error
	// block makes Dial wait until the context is done.
	block bool
	// gate, when set, holds every Send until it is closed.
	gate    chan struct{}
	sending int
}

func (d *fakeDialer) Dial(ctx context.Context, t notification.Transport, cred notification.Credentials) (notification.Channel, error) {
	d.mu.Lock()
	d.dials = append(d.dials, t)
	d.creds = append(d.creds, cred)
	block, dialErr := d.block, d.dialErr
	d.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if dialErr != nil {
		return nil, dialErr
	}

	ch := &fakeChannel{dialer: d}
	d.mu.Lock()
	d.channels = append(d.channels, ch)
	d.mu.Unlock()
	return ch, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dials)
}

func (d *fakeDialer) sendsStarted() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sending
}

func (d *fakeDialer) lastDial() notification.Transport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials[len(d.dials)-1]
}

func (d *fakeDialer) sent() []*mail.Msg {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*mail.Msg
	for _, ch := range d.channels {
		out = append(out, ch.msgs...)
	}
	return out
}

type fakeChannel struct {
	dialer *fakeDialer
	msgs   []*mail.Msg
	closed bool
}

func (c *fakeChannel) Send(_ context.Context, msg *mail.Msg) error {
	c.dialer.mu.Lock()
	gate := c.dialer.gate
	c.dialer.sending++
	c.dialer.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.dialer.mu.Lock()
	defer c.dialer.mu.Unlock()
	if c.dialer.sendErr != nil {
		return c.dialer.sendErr
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.dialer.mu.Lock()
	defer c.dialer.mu.Unlock()
	c.closed = true
	return nil
}

// forbiddenDialer fails the test if anything tries to open a channel.
type forbiddenDialer struct {
	t *testing.T
}

func (d forbiddenDialer) Dial(context.Context, notification.Transport, notification.Credentials) (notification.Channel, error) {
	d.t.Errorf("unexpected dial")
	return nil, errUnreachable
}

type panicDialer struct{}

func (panicDialer) Dial(context.Context, notification.Transport, notification.Credentials) (notification.Channel, error) {
	panic("dialer exploded")
}

// staticSource serves a fixed configuration.
type staticSource struct {
	cfg config.TransportConfig
	err error
}

func (s staticSource) Load(context.Context) (config.TransportConfig, error) {
	return s.cfg, s.err
}

// rotatingSource returns a different host on every Load, standing in for an
// admin saving new settings between reads.
type rotatingSource struct {
	loads atomic.Int32
}

func (s *rotatingSource) Load(context.Context) (config.TransportConfig, error) {
	n := s.loads.Add(1)
	cfg := testTransportConfig()
	cfg.Host = fmt.Sprintf("smtp-%d.venue.test", n)
	return cfg, nil
}

func testTransportConfig() config.TransportConfig {
	return config.TransportConfig{
		Host:         "smtp.venue.test",
		Port:         587,
		SecurityMode: config.SecurityTLS,
		Username:     "mailer",
		Password:     "secret",
		FromAddress:  "bookings@venue.test",
		FromName:     "Grand Hall",
	}
}

func testPolicy() config.TransportPolicy {
	p := config.DefaultTransportPolicy()
	p.VerifyBeforeSend = false
	return p
}
