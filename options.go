package revive

import (
	"fmt"

	"github.com/orbs-network/scribe/log"
	"github.com/rs/xid"
)

type MailboxType int32

const (
	// QueueMailbox backs the event feed with a fixed-capacity ring buffer;
	// events posted while the buffer is full are dropped.
	QueueMailbox MailboxType = iota
	// MPSCMailbox backs the event feed with an unbounded lock-free queue.
	MPSCMailbox
)

const defaultEventFeedCap = 100

type Options struct {
	// Name identifies the supervisor in log fields and events.
	Name string
	// Logger receives diagnostics for failed restarts and recovered panics.
	Logger Errorer
	// EventMailbox selects the queue backing the event feed.
	EventMailbox MailboxType
	// EventFeedCap is the event feed's capacity, used by QueueMailbox only.
	EventFeedCap uint64
}

func NewOptions() Options {
	return Options{
		Name:         xid.New().String(),
		Logger:       log.GetLogger(),
		EventMailbox: QueueMailbox,
		EventFeedCap: defaultEventFeedCap,
	}
}

func (opt Options) SetName(name string) Options {
	opt.Name = name
	return opt
}

func (opt Options) SetLogger(logger Errorer) Options {
	opt.Logger = logger
	return opt
}

func (opt Options) SetEventMailbox(t MailboxType) Options {
	opt.EventMailbox = t
	return opt
}

func (opt *Options) check() error {
	if opt.Name == "" {
		return fmt.Errorf("invalid supervisor Name: %q", opt.Name)
	} else if opt.Logger == nil {
		return fmt.Errorf("supervisor Logger could not be nil")
	} else if opt.EventMailbox != QueueMailbox && opt.EventMailbox != MPSCMailbox {
		return fmt.Errorf("invalid EventMailbox type: %d", opt.EventMailbox)
	} else if opt.EventFeedCap == 0 {
		return fmt.Errorf("invalid EventFeedCap: %d", opt.EventFeedCap)
	}

	return nil
}
