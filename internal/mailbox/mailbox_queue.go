package mailbox

import (
	"github.com/Workiva/go-datastructures/queue"
)

type queueMailbox struct {
	messages *queue.RingBuffer
	done     chan struct{}
	signal   chan struct{}
}

// QueueMailbox returns a mailbox backed by a fixed-capacity ring buffer.
// Messages pushed while the buffer is full are dropped.
func QueueMailbox(cap uint64) Mailbox {
	if cap == 0 {
		cap = defaultQueueCap
	}
	return &queueMailbox{
		messages: queue.NewRingBuffer(cap),
		done:     make(chan struct{}),
		signal:   make(chan struct{}, 1),
	}
}

func (m *queueMailbox) Push(message interface{}) bool {
	select {
	case <-m.done:
		return false
	default:
		ok, err := m.messages.Offer(message)
		if err != nil || !ok {
			return false
		}
		m.wakeup()
		return true
	}
}

func (m *queueMailbox) Receive(handler Handler) {
listen:
	select {
	case <-m.done:
		return
	case <-m.signal:
		for m.messages.Len() != 0 {
			msg, err := m.messages.Get()
			if err != nil {
				return
			}
			if keepOn := handler(msg); !keepOn {
				return
			}
		}
		goto listen
	}
}

func (m *queueMailbox) Close() {
	close(m.done)
	m.messages.Dispose()
}

// wakeup is non-blocking; the signal channel holds at most one token, which
// is enough since the receiver drains the whole queue per token.
func (m *queueMailbox) wakeup() {
	select {
	case m.signal <- struct{}{}:
	default:
	}
}
