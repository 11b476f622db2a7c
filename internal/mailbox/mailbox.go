// Package mailbox provides the queues backing a supervisor's event feed.
package mailbox

const defaultQueueCap = 100

type Handler func(message interface{}) (loop bool)

// Mailbox is a multi-producer single-consumer message queue. Push never
// blocks the producer; it reports false when the message was dropped because
// the mailbox is full or closed.
type Mailbox interface {
	Push(message interface{}) bool
	Receive(handler Handler)
	Close()
}
