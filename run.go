package revive

import (
	"runtime/debug"

	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// Go runs f on its own goroutine and returns the completion handle that
// settles when f returns: Failed with the returned error, Succeeded on nil.
// A panic inside f is recovered, reported to the errorer and fails the
// handle instead of crashing the process.
//
// It is a convenience for Supervisable implementers; Restart can simply run
// the operation body again through Go and keep the returned handle.
func Go(errorer Errorer, f func() error) *Completion {
	handle := NewCompletion()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				e := errors.Errorf("operation panicked at [%s]: %v", identifyPanic(), p)
				errorer.Error("recovered panic", log.Error(e), log.String("stack-trace", string(debug.Stack())))
				handle.Fail(e)
			}
		}()

		if err := f(); err != nil {
			handle.Fail(err)
			return
		}
		handle.Succeed()
	}()

	return handle
}
