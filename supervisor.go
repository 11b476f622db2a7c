package revive

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/hedisam/revive/backoff"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// Errorer is the diagnostic sink for failed restarts and recovered panics.
// Satisfied by scribe's log.Logger.
type Errorer interface {
	Error(message string, fields ...*log.Field)
}

// Supervisor watches Supervisable operations for failure and drives their
// pause → restart → re-arm cycle. All chains started through one Supervisor
// draw their delays from the same sequence cursor.
type Supervisor struct {
	delays  backoff.Sequence
	options Options
	feed    *EventFeed
}

func New(delays backoff.Sequence, options Options) (*Supervisor, error) {
	if delays == nil {
		return nil, fmt.Errorf("delay sequence could not be nil")
	}
	if err := options.check(); err != nil {
		return nil, err
	}

	return &Supervisor{
		delays:  delays,
		options: options,
		feed:    newEventFeed(&options),
	}, nil
}

// Events returns the supervisor's event feed.
func (sup *Supervisor) Events() *EventFeed {
	return sup.feed
}

// Monitor begins asynchronous observation of s through its current
// completion handle. It returns synchronously; a nil supervisable or a nil
// completion handle is a usage error reported before any observer is
// spawned.
//
// Only a failed settle of the handle is acted upon. A handle settling as
// Succeeded or Cancelled ends the chain silently: no restart, no
// notification.
func (sup *Supervisor) Monitor(s Supervisable) error {
	if s == nil {
		return fmt.Errorf("supervisable could not be nil")
	} else if s.CompletionHandle() == nil {
		return fmt.Errorf("supervisable's completion handle could not be nil")
	}

	sup.watch(s, xid.New().String(), 0)
	return nil
}

// watch registers a failure observer on the supervisable's current
// completion handle. attempt counts the failures observed on this chain so
// far.
func (sup *Supervisor) watch(s Supervisable, chain string, attempt int) {
	handle := s.CompletionHandle()
	go func() {
		defer sup.recoverPanics(chain)
		<-handle.Done()
		if handle.State() != Failed {
			return
		}
		sup.handleFault(s, chain, attempt+1, handle.Cause())
	}()
}

// handleFault runs once per observed failure: it consumes the next delay,
// pauses, restarts and re-arms, or terminates the chain on exhaustion or a
// failed restart. The cursor position consumed by a failed restart is not
// rolled back.
func (sup *Supervisor) handleFault(s Supervisable, chain string, attempt int, cause error) {
	delay, ok := sup.delays.Next()
	if !ok {
		sup.feed.post(Event{Supervisor: sup.options.Name, Chain: chain, Type: RestartsExhausted, Attempt: attempt, Cause: cause})
		s.MaxRestartsReached(attempt)
		return
	}
	if delay <= 0 {
		// sequence contract violation, see backoff.Sequence
		sup.options.Logger.Error("delay sequence yielded a non-positive delay",
			log.String("supervisor", sup.options.Name), log.String("chain", chain), log.Stringable("delay", delay))
	}

	sup.feed.post(Event{Supervisor: sup.options.Name, Chain: chain, Type: FaultObserved, Attempt: attempt, Delay: delay, Cause: cause})

	s.PauseBeforeRestart(delay)

	if err := s.Restart(); err != nil {
		sup.options.Logger.Error("restart failed, ending supervision",
			log.Error(errors.Wrapf(err, "restart attempt %d", attempt)),
			log.String("supervisor", sup.options.Name), log.String("chain", chain), log.Int("attempt", attempt))
		sup.feed.post(Event{Supervisor: sup.options.Name, Chain: chain, Type: RestartFailed, Attempt: attempt, Cause: err})
		return
	}

	sup.feed.post(Event{Supervisor: sup.options.Name, Chain: chain, Type: RestartSucceeded, Attempt: attempt})
	sup.watch(s, chain, attempt)
}

func (sup *Supervisor) recoverPanics(chain string) {
	if p := recover(); p != nil {
		e := errors.Errorf("supervision chain panicked at [%s]: %v", identifyPanic(), p)
		sup.options.Logger.Error("recovered panic", log.Error(e),
			log.String("supervisor", sup.options.Name), log.String("chain", chain),
			log.String("stack-trace", string(debug.Stack())))
	}
}

func identifyPanic() string {
	var name, file string
	var line int
	var pc [16]uintptr

	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			break
		}
	}

	switch {
	case name != "":
		return fmt.Sprintf("%v:%v", name, line)
	case file != "":
		return fmt.Sprintf("%v:%v", file, line)
	}

	return fmt.Sprintf("pc:%x", pc)
}
