package mailbox

import (
	"github.com/t3rm1n4l/go-mpscqueue"
)

type mpscMailbox struct {
	messages *mpsc.MPSCQueue
	done     chan struct{}
	signal   chan struct{}
}

// MPSCMailbox returns a mailbox backed by an unbounded lock-free
// multi-producer single-consumer queue.
func MPSCMailbox() Mailbox {
	return &mpscMailbox{
		messages: mpsc.New(),
		done:     make(chan struct{}),
		signal:   make(chan struct{}, 1),
	}
}

func (m *mpscMailbox) Push(message interface{}) bool {
	select {
	case <-m.done:
		return false
	default:
		m.messages.Push(message)
		select {
		case m.signal <- struct{}{}:
		default:
		}
		return true
	}
}

func (m *mpscMailbox) Receive(handler Handler) {
listen:
	select {
	case <-m.done:
		return
	case <-m.signal:
		for m.messages.Size() != 0 {
			if keepOn := handler(m.messages.Pop()); !keepOn {
				return
			}
		}
		goto listen
	}
}

func (m *mpscMailbox) Close() {
	close(m.done)
}
