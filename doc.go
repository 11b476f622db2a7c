// Package revive supervises a single long-running background operation,
// restarting it after each observed failure according to a caller-supplied
// sequence of backoff delays. Once the sequence runs out, the operation is
// notified and supervision ends.
package revive
