// Package stream provides sample sources for the detection pipeline. A
// source is a lazy, infinite sequence of float64 observations pulled one
// value per tick; it cannot be restarted or rewound.
package stream

import (
	"math"
	"math/rand"
)

type Source interface {
	Next() float64
}

// Synthetic simulates a measurement feed: a seasonal sine component,
// Gaussian noise, and an occasional spike.
type Synthetic struct {
	Amplitude  float64 // sine amplitude
	Frequency  float64 // radians per tick
	NoiseSigma float64 // standard deviation of the Gaussian noise
	SpikeValue float64 // magnitude of an injected spike
	SpikeOdds  int     // one spike per SpikeOdds ticks on average

	rng *rand.Rand
	t   int
}

// NewSynthetic returns a source with the classic demo parameters: a
// 10*sin(0.1t) seasonal wave, N(0,2) noise, and a +20 spike roughly every
// fourth tick.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		Amplitude:  10.0,
		Frequency:  0.1,
		NoiseSigma: 2.0,
		SpikeValue: 20.0,
		SpikeOdds:  4,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (s *Synthetic) Next() float64 {
	seasonal := s.Amplitude * math.Sin(s.Frequency*float64(s.t))
	noise := s.rng.NormFloat64() * s.NoiseSigma

	var spike float64
	if s.SpikeOdds > 0 && s.rng.Intn(s.SpikeOdds) == 0 {
		spike = s.SpikeValue
	}

	s.t++
	return seasonal + noise + spike
}
