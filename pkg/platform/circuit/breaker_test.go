package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type outcome int

const (
	fail outcome = iota
	succeed
	reset
)

// step is one reported outcome of a rate limit store call and what the limiter
// should do next.
type step struct {
	outcome      outcome
	wantFallback bool
	wantChange   StateChange
}

func run(t *testing.T, b *Breaker, steps []step) {
	t.Helper()
	for i, st := range steps {
		var (
			fallback bool
			change   StateChange
		)
		switch st.outcome {
		case fail:
			fallback, change = b.RecordFailure()
		case succeed:
			var primary bool
			primary, change = b.RecordSuccess()
			fallback = !primary
		case reset:
			b.Reset()
			fallback = b.IsOpen()
		}
		assert.Equal(t, st.wantFallback, fallback, "step %d fallback", i)
		assert.Equal(t, st.wantChange, change, "step %d change", i)
		assert.Equal(t, st.wantFallback, b.IsOpen(), "step %d state", i)
	}
}

var (
	opened = StateChange{Opened: true}
	closed = StateChange{Closed: true}
)

func TestBreaker_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		steps []step
	}{
		{
			name: "store outage moves limiter to memory",
			opts: []Option{WithFailureThreshold(3)},
			steps: []step{
				{outcome: fail},
				{outcome: fail},
				{outcome: fail, wantFallback: true, wantChange: opened},
				{outcome: fail, wantFallback: true},
			},
		},
		{
			name: "recovered store must prove itself before reuse",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{outcome: fail, wantFallback: true, wantChange: opened},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantChange: closed},
				{outcome: succeed},
			},
		},
		{
			name: "a success forgives earlier failures",
			opts: []Option{WithFailureThreshold(3)},
			steps: []step{
				{outcome: fail},
				{outcome: fail},
				{outcome: succeed},
				{outcome: fail},
				{outcome: fail},
				{outcome: fail, wantFallback: true, wantChange: opened},
			},
		},
		{
			name: "a flap while open restarts the recovery count",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(3)},
			steps: []step{
				{outcome: fail, wantFallback: true, wantChange: opened},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantFallback: true},
				{outcome: fail, wantFallback: true},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantChange: closed},
			},
		},
		{
			name: "reset returns to the store immediately",
			opts: []Option{WithFailureThreshold(1)},
			steps: []step{
				{outcome: fail, wantFallback: true, wantChange: opened},
				{outcome: reset},
				{outcome: fail, wantFallback: true, wantChange: opened},
			},
		},
		{
			name: "non-positive thresholds keep defaults",
			opts: []Option{WithFailureThreshold(0), WithSuccessThreshold(-1)},
			steps: []step{
				{outcome: fail},
				{outcome: fail},
				{outcome: fail},
				{outcome: fail},
				{outcome: fail, wantFallback: true, wantChange: opened},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantFallback: true},
				{outcome: succeed, wantChange: closed},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, New("ratelimit-store", tt.opts...), tt.steps)
		})
	}
}

func TestBreaker_Describes(t *testing.T) {
	b := New("ratelimit-store", WithFailureThreshold(1))
	assert.Equal(t, "ratelimit-store", b.Name())
	assert.Equal(t, "closed", b.State().String())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.Equal(t, "open", b.State().String())
}

// Concurrent limiter requests during an outage open the breaker exactly once.
func TestBreaker_OpensOnceUnderConcurrency(t *testing.T) {
	b := New("ratelimit-store", WithFailureThreshold(10))

	var g errgroup.Group
	openings := make(chan struct{}, 100)
	for range 100 {
		g.Go(func() error {
			if _, change := b.RecordFailure(); change.Opened {
				openings <- struct{}{}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(openings)

	assert.Len(t, openings, 1)
	assert.True(t, b.IsOpen())
}
