package revive

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

type CompletionState int32

const (
	Pending CompletionState = iota
	Failed
	Succeeded
	Cancelled
)

func (s CompletionState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Completion represents an in-flight operation. It settles exactly once,
// into one of Failed, Succeeded or Cancelled; any settle after the first is
// a no-op. A supervisor watching the handle reacts to Failed only.
type Completion struct {
	settled chan struct{}
	state   int32
	cause   error
	once    sync.Once
}

func NewCompletion() *Completion {
	return &Completion{settled: make(chan struct{})}
}

// Fail settles the handle as failed. A nil cause is replaced so the failure
// always carries an error.
func (c *Completion) Fail(cause error) {
	if cause == nil {
		cause = errors.New("operation failed with no cause")
	}
	c.settle(Failed, cause)
}

func (c *Completion) Succeed() {
	c.settle(Succeeded, nil)
}

func (c *Completion) Cancel() {
	c.settle(Cancelled, nil)
}

// Done returns a channel that is closed once the handle settles.
func (c *Completion) Done() <-chan struct{} {
	return c.settled
}

func (c *Completion) State() CompletionState {
	return CompletionState(atomic.LoadInt32(&c.state))
}

// Cause returns the failure cause. It is non-nil only after the handle
// settled as Failed.
func (c *Completion) Cause() error {
	select {
	case <-c.settled:
		return c.cause
	default:
		return nil
	}
}

func (c *Completion) settle(state CompletionState, cause error) {
	c.once.Do(func() {
		c.cause = cause
		atomic.StoreInt32(&c.state, int32(state))
		close(c.settled)
	})
}
