package analytics

import (
	"errors"
	"math"
)

var ErrInvalidThreshold = errors.New("z-score threshold must be positive")

// Classification is the outcome of classifying a single sample against the
// detector's trailing window.
type Classification struct {
	Value     float64
	ZScore    float64
	IsAnomaly bool
}

// AnomalyDetector flags samples whose z-score against a trailing window
// exceeds a fixed threshold. It owns its window exclusively; callers that
// share a detector across goroutines must serialize access themselves.
type AnomalyDetector struct {
	window    *SlidingWindow
	threshold float64
}

func NewAnomalyDetector(windowSize int, threshold float64) (*AnomalyDetector, error) {
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}
	window, err := NewSlidingWindow(windowSize)
	if err != nil {
		return nil, err
	}
	return &AnomalyDetector{
		window:    window,
		threshold: threshold,
	}, nil
}

// Classify pushes sample into the window and scores it against the updated
// window contents. Fewer than two samples or a zero-variance window yield a
// zero z-score and no anomaly; neither case is an error.
func (ad *AnomalyDetector) Classify(sample float64) Classification {
	ad.window.Push(sample)

	if ad.window.Len() < 2 {
		return Classification{Value: sample}
	}

	mean := ad.window.Mean()
	stdDev := ad.stdDev(mean)

	if stdDev == 0 {
		return Classification{Value: sample}
	}

	zScore := (sample - mean) / stdDev

	return Classification{
		Value:     sample,
		ZScore:    zScore,
		IsAnomaly: math.Abs(zScore) > ad.threshold,
	}
}

// WindowValues returns a copy of the current window contents, oldest first.
func (ad *AnomalyDetector) WindowValues() []float64 {
	return ad.window.Values()
}

// stdDev computes the population standard deviation (divide by count, not
// count-1) of the window. Switching to the sample convention would shift
// every classification boundary.
func (ad *AnomalyDetector) stdDev(mean float64) float64 {
	values := ad.window.Values()

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
