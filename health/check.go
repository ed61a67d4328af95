// Package health provides an asynchronous liveness check for broker
// channels. A CheckRequest is handed to the channel-owning actor like any
// other publishable message; its result is observed through Await, which
// races the actor's resolution against the request's timeout.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caravelmq/caravel-go/publish"
)

var (
	// ErrChannelNotOpen is the outcome when the checked channel is closed.
	ErrChannelNotOpen = errors.New("health: channel not open")

	// ErrCheckTimeout is the outcome when no resolution arrives in time.
	ErrCheckTimeout = errors.New("health: no response within timeout")
)

// CheckRequest verifies that a live channel is usable. Its result slot
// resolves at most once: the first writer wins, whether that is Apply, Fail,
// or nobody (in which case Await reports a timeout). A request is created
// per check and discarded once the result is observed.
type CheckRequest struct {
	id      string
	timeout time.Duration
	result  chan error
	once    sync.Once
}

var _ publish.Deliverable = (*CheckRequest)(nil)

// NewCheckRequest creates a health check with the given timeout.
func NewCheckRequest(timeout time.Duration) *CheckRequest {
	return &CheckRequest{
		id:      uuid.New().String(),
		timeout: timeout,
		result:  make(chan error, 1),
	}
}

// ID returns the request's correlation identifier.
func (r *CheckRequest) ID() string {
	return r.id
}

// Timeout returns the duration Await races the result against.
func (r *CheckRequest) Timeout() time.Duration {
	return r.timeout
}

// Apply resolves the result slot: success if the channel reports itself
// open, ErrChannelNotOpen otherwise. It never fails past its own boundary
// and is a no-op on an already-resolved request.
func (r *CheckRequest) Apply(ctx context.Context, ch publish.Channel) error {
	if ch == nil || ch.IsClosed() {
		r.resolve(ErrChannelNotOpen)
		return nil
	}
	r.resolve(nil)
	return nil
}

// DropIfNoChannel is always true: a health check should fail fast rather
// than queue behind a channel that may never come back.
func (r *CheckRequest) DropIfNoChannel() bool {
	return true
}

// Fail resolves the result slot with a failure. The channel-owning actor
// calls this when it drops the request because no channel exists.
func (r *CheckRequest) Fail(err error) {
	if err == nil {
		err = ErrChannelNotOpen
	}
	r.resolve(err)
}

// Await blocks until the result slot resolves, the request's timeout
// elapses, or ctx is done, whichever comes first. After a timeout the slot
// may still resolve later; that resolution is discarded.
func (r *CheckRequest) Await(ctx context.Context) error {
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-r.result:
		return err

	case <-timer.C:
		return fmt.Errorf("%w (%s)", ErrCheckTimeout, r.timeout)

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *CheckRequest) resolve(err error) {
	r.once.Do(func() {
		r.result <- err
	})
}
