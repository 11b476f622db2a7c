package revive

import (
	"time"

	"github.com/hedisam/revive/internal/mailbox"
)

type EventType int32

const (
	// FaultObserved is emitted when a watched completion handle fails and a
	// delay is still available for the next restart attempt.
	FaultObserved EventType = iota
	// RestartSucceeded is emitted when Restart completes and the chain is
	// re-armed on the new completion handle.
	RestartSucceeded
	// RestartFailed is emitted when Restart returns an error; the chain is
	// terminal.
	RestartFailed
	// RestartsExhausted is emitted when the delay sequence runs out; the
	// chain is terminal.
	RestartsExhausted
)

func (t EventType) String() string {
	switch t {
	case FaultObserved:
		return "FaultObserved"
	case RestartSucceeded:
		return "RestartSucceeded"
	case RestartFailed:
		return "RestartFailed"
	case RestartsExhausted:
		return "RestartsExhausted"
	default:
		return "Unknown"
	}
}

// Event describes one step taken by a supervision chain.
type Event struct {
	Time       time.Time
	Supervisor string
	// Chain identifies the monitor → fault → restart cycle the event
	// belongs to; one id is assigned per Monitor call.
	Chain   string
	Type    EventType
	Attempt int
	// Delay is the backoff consumed for this attempt, set on FaultObserved.
	Delay time.Duration
	// Cause is the observed fault, or the restart error for RestartFailed.
	Cause error
}

// EventFeed streams a supervisor's events to a single consumer. Posting an
// event never blocks a supervision chain; with a full QueueMailbox feed,
// events are dropped instead.
type EventFeed struct {
	m mailbox.Mailbox
}

func newEventFeed(opt *Options) *EventFeed {
	if opt.EventMailbox == MPSCMailbox {
		return &EventFeed{m: mailbox.MPSCMailbox()}
	}
	return &EventFeed{m: mailbox.QueueMailbox(opt.EventFeedCap)}
}

// Receive blocks, invoking handler for every event until the handler returns
// false or the feed is closed.
func (f *EventFeed) Receive(handler func(event Event) (loop bool)) {
	f.m.Receive(func(message interface{}) bool {
		event, ok := message.(Event)
		if !ok {
			return true
		}
		return handler(event)
	})
}

func (f *EventFeed) Close() {
	f.m.Close()
}

func (f *EventFeed) post(event Event) {
	event.Time = time.Now()
	f.m.Push(event)
}
