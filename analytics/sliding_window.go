package analytics

import "errors"

var ErrInvalidCapacity = errors.New("window capacity must be at least 2")

// SlidingWindow is a fixed-capacity FIFO buffer of the most recent samples.
// Once full, each Push evicts the single oldest value. Not safe for
// concurrent use; each window has exactly one owner.
type SlidingWindow struct {
	values []float64
	head   int
	count  int
	sum    float64
}

func NewSlidingWindow(capacity int) (*SlidingWindow, error) {
	if capacity < 2 {
		return nil, ErrInvalidCapacity
	}
	return &SlidingWindow{
		values: make([]float64, capacity),
	}, nil
}

func (w *SlidingWindow) Push(value float64) {
	if w.count < len(w.values) {
		w.values[(w.head+w.count)%len(w.values)] = value
		w.sum += value
		w.count++
		return
	}

	// Full: overwrite the oldest slot and advance the head.
	w.sum += value - w.values[w.head]
	w.values[w.head] = value
	w.head = (w.head + 1) % len(w.values)
}

// Values returns a copy of the window contents, oldest first.
func (w *SlidingWindow) Values() []float64 {
	out := make([]float64, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.values[(w.head+i)%len(w.values)]
	}
	return out
}

func (w *SlidingWindow) Len() int {
	return w.count
}

func (w *SlidingWindow) Cap() int {
	return len(w.values)
}

// Mean returns the running-sum average of the window contents.
func (w *SlidingWindow) Mean() float64 {
	if w.count == 0 {
		return 0.0
	}
	return w.sum / float64(w.count)
}
