package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeWindowEmpty(t *testing.T) {
	summary := SummarizeWindow("sensor-1", nil)

	require.Equal(t, "sensor-1", summary.StreamID)
	require.Equal(t, 0, summary.Count)
	require.Equal(t, 0.0, summary.Mean)
	require.Equal(t, 0.0, summary.StdDev)
}

func TestSummarizeWindow(t *testing.T) {
	summary := SummarizeWindow("sensor-1", []float64{1, 2, 3, 4})

	require.Equal(t, 4, summary.Count)
	require.InDelta(t, 2.5, summary.Mean, 1e-9)
	// Population convention: sqrt(1.25), not sqrt(5/3).
	require.InDelta(t, 1.1180339887, summary.StdDev, 1e-9)
	require.Equal(t, 1.0, summary.Min)
	require.Equal(t, 4.0, summary.Max)
	require.InDelta(t, 2.5, summary.Median, 1e-9)
	require.Equal(t, 4.0, summary.P95)
}

func TestSummarizeWindowMatchesDetectorConvention(t *testing.T) {
	values := []float64{3.5, -2.0, 8.1, 0.4, 12.0}
	summary := SummarizeWindow("s", values)

	require.InDelta(t, mean(values), summary.Mean, 1e-9)
	require.InDelta(t, populationStd(values), summary.StdDev, 1e-9)
}
