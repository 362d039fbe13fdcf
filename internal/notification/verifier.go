package notification

import (
	"context"
	"fmt"
	"time"
)

// VerifyStatus is the outcome of an advisory handshake.
type VerifyStatus string

const (
	Verified           VerifyStatus = "verified"
	VerificationFailed VerifyStatus = "failed"
	TimedOut           VerifyStatus = "timed_out"
)

// Verification reports one handshake attempt. It never gates a send.
type Verification struct {
	Status  VerifyStatus  `json:"status"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Verifier checks that a transport accepts a connection and credentials.
// Providers have been seen failing this check while still accepting mail,
// so the result is telemetry only.
type Verifier struct {
	dialer  Dialer
	timeout time.Duration
}

// NewVerifier returns a Verifier bounded by timeout.
func NewVerifier(dialer Dialer, timeout time.Duration) *Verifier {
	return &Verifier{dialer: dialer, timeout: timeout}
}

// Verify races the handshake against the timeout; whichever settles first
// decides the outcome. A handshake still running when the timer fires is
// abandoned and only asked, not forced, to stop.
func (v *Verifier) Verify(ctx context.Context, t Transport, cred Credentials) Verification {
	start := time.Now()
	hsCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- v.handshake(hsCtx, t, cred)
	}()

	timer := time.NewTimer(v.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return Verification{Status: VerificationFailed, Reason: err.Error(), Elapsed: time.Since(start)}
		}
		return Verification{Status: Verified, Elapsed: time.Since(start)}
	case <-timer.C:
		return Verification{
			Status:  TimedOut,
			Reason:  fmt.Sprintf("no handshake response within %s", v.timeout),
			Elapsed: time.Since(start),
		}
	case <-ctx.Done():
		return Verification{Status: VerificationFailed, Reason: ctx.Err().Error(), Elapsed: time.Since(start)}
	}
}

func (v *Verifier) handshake(ctx context.Context, t Transport, cred Credentials) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handshake panicked: %v", r)
		}
	}()

	ch, err := v.dialer.Dial(ctx, t, cred)
	if err != nil {
		return err
	}
	// The session was established; a failing QUIT does not change that.
	_ = ch.Close()
	return nil
}
