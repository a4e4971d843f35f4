package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSlidingWindowRejectsSmallCapacity(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1} {
		_, err := NewSlidingWindow(capacity)
		require.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", capacity)
	}
}

func TestSlidingWindowLengthNeverExceedsCapacity(t *testing.T) {
	for _, capacity := range []int{2, 3, 10, 100} {
		w, err := NewSlidingWindow(capacity)
		require.NoError(t, err)

		for i := 0; i < capacity*3; i++ {
			w.Push(float64(i))
			require.LessOrEqual(t, w.Len(), capacity)
		}
		require.Equal(t, capacity, w.Len())
		require.Equal(t, capacity, w.Cap())
	}
}

func TestSlidingWindowWarmsUpFromEmpty(t *testing.T) {
	w, err := NewSlidingWindow(5)
	require.NoError(t, err)

	require.Equal(t, 0, w.Len())
	require.Empty(t, w.Values())

	w.Push(1.5)
	require.Equal(t, 1, w.Len())
	require.Equal(t, []float64{1.5}, w.Values())
}

func TestSlidingWindowEvictsOldestFirst(t *testing.T) {
	w, err := NewSlidingWindow(3)
	require.NoError(t, err)

	for _, v := range []float64{1, 2, 3, 4, 5, 6, 7} {
		w.Push(v)
	}

	require.Equal(t, []float64{5, 6, 7}, w.Values())
}

func TestSlidingWindowValuesAreACopy(t *testing.T) {
	w, err := NewSlidingWindow(3)
	require.NoError(t, err)
	w.Push(1)
	w.Push(2)

	values := w.Values()
	values[0] = 99

	require.Equal(t, []float64{1, 2}, w.Values())
}

func TestSlidingWindowMeanTracksEvictions(t *testing.T) {
	w, err := NewSlidingWindow(4)
	require.NoError(t, err)

	require.Equal(t, 0.0, w.Mean())

	for _, v := range []float64{2, 4, 6, 8} {
		w.Push(v)
	}
	require.InDelta(t, 5.0, w.Mean(), 1e-9)

	// Evicts 2, window becomes [4 6 8 10].
	w.Push(10)
	require.InDelta(t, 7.0, w.Mean(), 1e-9)
}
