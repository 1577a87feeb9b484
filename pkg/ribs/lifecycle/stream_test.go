package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SubscribeReplaysCurrentState(t *testing.T) {
	s := NewStream(true)

	var got []bool
	s.Subscribe(func(active bool) { got = append(got, active) })

	assert.Equal(t, []bool{true}, got)
}

func TestStream_OnlyTransitionsArePublished(t *testing.T) {
	s := NewStream(false)

	var got []bool
	s.Subscribe(func(active bool) { got = append(got, active) })

	s.Set(false)
	s.Set(true)
	s.Set(true)
	s.Set(false)

	assert.Equal(t, []bool{false, true, false}, got)
	assert.False(t, s.IsActive())
}

func TestStream_MultipleObservers(t *testing.T) {
	s := NewStream(false)

	var a, b int
	s.Subscribe(func(active bool) {
		if active {
			a++
		}
	})
	s.Subscribe(func(active bool) {
		if active {
			b++
		}
	})

	s.Set(true)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 2, s.ObserverCount())
}

func TestStream_CancelDuringNotification(t *testing.T) {
	s := NewStream(false)

	var second int
	var first Cancellable
	first = s.Subscribe(func(active bool) {
		if active {
			first.Cancel()
		}
	})
	s.Subscribe(func(active bool) {
		if active {
			second++
		}
	})

	s.Set(true)
	s.Set(false)
	s.Set(true)

	assert.Equal(t, 2, second)
	assert.Equal(t, 1, s.ObserverCount())
}

func TestStream_Close(t *testing.T) {
	s := NewStream(false)

	calls := 0
	s.Subscribe(func(bool) { calls++ })
	s.Close()
	s.Set(true)

	require.Equal(t, 1, calls)
	assert.Equal(t, 0, s.ObserverCount())
	assert.Equal(t, Nop, s.Subscribe(func(bool) { calls++ }))
}
