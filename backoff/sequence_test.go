package backoff

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, seq Sequence, n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		delay, ok := seq.Next()
		require.True(t, ok, "sequence exhausted after %d draws", i)
		delays = append(delays, delay)
	}
	return delays
}

func requireExhausted(t *testing.T, seq Sequence) {
	delay, ok := seq.Next()
	require.False(t, ok, "expected exhausted sequence, got %v", delay)
}

func TestOf_YieldsInOrderThenExhausts(t *testing.T) {
	seq, err := Of(time.Second, 2*time.Second, 5*time.Second)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 5 * time.Second}, drain(t, seq, 3))
	requireExhausted(t, seq)
	requireExhausted(t, seq)
}

func TestOf_RejectsInvalidDelays(t *testing.T) {
	_, err := Of()
	require.Error(t, err, "empty sequence must be rejected")

	_, err = Of(time.Second, 0)
	require.Error(t, err, "zero delay must be rejected")

	_, err = Of(-time.Second)
	require.Error(t, err, "negative delay must be rejected")
}

func TestOf_CopiesTheInputSlice(t *testing.T) {
	delays := []time.Duration{time.Second, 2 * time.Second}
	seq, err := Of(delays...)
	require.NoError(t, err)

	delays[0] = 100 * time.Second
	first, ok := seq.Next()
	require.True(t, ok)
	require.Equal(t, time.Second, first)
}

func TestConstant(t *testing.T) {
	seq, err := Constant(time.Second, 3)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, drain(t, seq, 3))
	requireExhausted(t, seq)

	_, err = Constant(0, 3)
	require.Error(t, err)
	_, err = Constant(time.Second, 0)
	require.Error(t, err)
}

func TestLinear_GrowsByIncrementUpToMax(t *testing.T) {
	seq, err := Linear(time.Second, 2*time.Second, 4*time.Second, 4)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{
		time.Second,
		3 * time.Second,
		4 * time.Second,
		4 * time.Second,
	}, drain(t, seq, 4))
	requireExhausted(t, seq)
}

func TestExponential_DoublesUpToMax(t *testing.T) {
	seq, err := Exponential(time.Second, 5*time.Second, 5)
	require.NoError(t, err)

	require.Equal(t, []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		5 * time.Second,
		5 * time.Second,
	}, drain(t, seq, 5))
	requireExhausted(t, seq)

	_, err = Exponential(2*time.Second, time.Second, 3)
	require.Error(t, err, "max below initial must be rejected")
}

func TestRepeat_NeverExhausts(t *testing.T) {
	seq, err := Repeat(time.Second)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		delay, ok := seq.Next()
		require.True(t, ok)
		require.Equal(t, time.Second, delay)
	}

	_, err = Repeat(0)
	require.Error(t, err)
}

func TestSequence_ConcurrentDrawsAreSerialized(t *testing.T) {
	const workers = 10
	const drawsPerWorker = 10

	seq, err := Constant(time.Millisecond, workers*drawsPerWorker)
	require.NoError(t, err)

	var drawn int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < drawsPerWorker; j++ {
				if _, ok := seq.Next(); ok {
					atomic.AddInt64(&drawn, 1)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers*drawsPerWorker), drawn,
		"every position must be drawn exactly once across racing chains")
	requireExhausted(t, seq)
}
