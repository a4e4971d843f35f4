package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticDeterministicUnderSeed(t *testing.T) {
	a := NewSynthetic(42)
	b := NewSynthetic(42)

	for i := 0; i < 200; i++ {
		require.Equal(t, a.Next(), b.Next(), "tick %d", i)
	}
}

func TestSyntheticSeedsDiffer(t *testing.T) {
	a := NewSynthetic(1)
	b := NewSynthetic(2)

	same := true
	for i := 0; i < 50; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	require.False(t, same)
}

func TestSyntheticPureSeasonal(t *testing.T) {
	s := NewSynthetic(7)
	s.NoiseSigma = 0
	s.SpikeOdds = 0

	for i := 0; i < 100; i++ {
		v := s.Next()
		require.InDelta(t, 10.0*math.Sin(0.1*float64(i)), v, 1e-9, "tick %d", i)
		require.LessOrEqual(t, math.Abs(v), 10.0)
	}
}

func TestSyntheticAlwaysSpiking(t *testing.T) {
	s := NewSynthetic(7)
	s.NoiseSigma = 0
	s.SpikeOdds = 1 // spike every tick

	for i := 0; i < 100; i++ {
		v := s.Next()
		require.InDelta(t, 10.0*math.Sin(0.1*float64(i))+20.0, v, 1e-9, "tick %d", i)
	}
}
