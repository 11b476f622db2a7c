package revive

import "time"

// Supervisable is the contract any operation must satisfy to be monitored by
// a Supervisor. The supervisor only observes the operation through its
// current completion handle; it never owns or cancels it.
type Supervisable interface {
	// CompletionHandle returns the handle of the operation currently in
	// flight. It must be non-nil when Monitor is called, and a fresh one
	// must be in place by the time Restart returns successfully.
	CompletionHandle() *Completion

	// PauseBeforeRestart suspends for at least the given delay before the
	// next restart attempt. It must not return before the pause completes.
	PauseBeforeRestart(delay time.Duration)

	// Restart performs the recovery action (reload state, reopen
	// connections, ...) and installs a new completion handle. A returned
	// error is terminal for the supervision chain and is never retried.
	Restart() error

	// MaxRestartsReached is invoked exactly once when the delay sequence is
	// exhausted, with the total number of failures observed on this chain.
	// Any shutdown or alerting it implies is up to the implementer.
	MaxRestartsReached(attempts int)
}
