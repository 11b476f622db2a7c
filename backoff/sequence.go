// Package backoff builds the delay sequences a supervisor consumes between
// restart attempts.
package backoff

import (
	"fmt"
	"sync"
	"time"
)

// Sequence is an ordered series of strictly positive restart delays,
// consumed through a single forward-only cursor. Next returns the next delay
// in order, or ok == false once the sequence is exhausted. A position, once
// advanced past, cannot be revisited.
//
// One Sequence instance may be drawn from by multiple supervision chains
// concurrently; implementations must serialize cursor advancement.
type Sequence interface {
	Next() (delay time.Duration, ok bool)
}

type sliceSequence struct {
	mu     sync.Mutex
	delays []time.Duration
	pos    int
}

func (s *sliceSequence) Next() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.delays) {
		return 0, false
	}
	delay := s.delays[s.pos]
	s.pos++
	return delay, true
}

// Of builds a finite sequence yielding the given delays in order.
func Of(delays ...time.Duration) (Sequence, error) {
	if len(delays) == 0 {
		return nil, fmt.Errorf("delay sequence could not be empty")
	}
	for i, d := range delays {
		if d <= 0 {
			return nil, fmt.Errorf("invalid delay %v at position %d, delays must be positive", d, i)
		}
	}
	cp := make([]time.Duration, len(delays))
	copy(cp, delays)
	return &sliceSequence{delays: cp}, nil
}

// Constant builds a sequence of n equal delays.
func Constant(delay time.Duration, n int) (Sequence, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid sequence length: %d", n)
	}
	if delay <= 0 {
		return nil, fmt.Errorf("invalid delay %v, delays must be positive", delay)
	}
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = delay
	}
	return &sliceSequence{delays: delays}, nil
}

// Linear builds a sequence of n delays starting at initial and growing by
// increment each step, capped at max.
func Linear(initial, increment, max time.Duration, n int) (Sequence, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid sequence length: %d", n)
	}
	if initial <= 0 || increment < 0 || max < initial {
		return nil, fmt.Errorf("invalid linear backoff: initial %v, increment %v, max %v", initial, increment, max)
	}
	delays := make([]time.Duration, n)
	for i := range delays {
		delay := initial + time.Duration(i)*increment
		if delay > max {
			delay = max
		}
		delays[i] = delay
	}
	return &sliceSequence{delays: delays}, nil
}

// Exponential builds a sequence of n delays starting at initial and doubling
// each step, capped at max.
func Exponential(initial, max time.Duration, n int) (Sequence, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid sequence length: %d", n)
	}
	if initial <= 0 || max < initial {
		return nil, fmt.Errorf("invalid exponential backoff: initial %v, max %v", initial, max)
	}
	delays := make([]time.Duration, n)
	delay := initial
	for i := range delays {
		delays[i] = delay
		if delay <= max/2 {
			delay *= 2
		} else {
			delay = max
		}
	}
	return &sliceSequence{delays: delays}, nil
}

type repeatSequence struct {
	delay time.Duration
}

func (r *repeatSequence) Next() (time.Duration, bool) {
	return r.delay, true
}

// Repeat builds an infinite sequence yielding the same delay forever. A
// supervisor drawing from it never reports exhaustion.
func Repeat(delay time.Duration) (Sequence, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("invalid delay %v, delays must be positive", delay)
	}
	return &repeatSequence{delay: delay}, nil
}
