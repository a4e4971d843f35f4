package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"anomaly-stream-processor/stream"
)

// Runs the detector headlessly against the synthetic source: a seasonal
// wave with noise and rare large spikes. The spikes dominate the window
// spread, so most of them should be flagged while the baseline is not.
func TestDetectorAgainstSyntheticStream(t *testing.T) {
	source := stream.NewSynthetic(1234)
	source.SpikeValue = 60.0
	source.SpikeOdds = 50

	detector, err := NewAnomalyDetector(100, 3.0)
	require.NoError(t, err)

	const ticks = 2000
	anomalies := 0
	for i := 0; i < ticks; i++ {
		res := detector.Classify(source.Next())

		require.False(t, math.IsNaN(res.ZScore))
		require.False(t, math.IsInf(res.ZScore, 0))
		require.LessOrEqual(t, len(detector.WindowValues()), 100)

		if res.IsAnomaly {
			anomalies++
		}
	}

	require.Greater(t, anomalies, 0, "sixty-unit spikes should exceed 3 sigma")
	require.Less(t, anomalies, ticks/10, "baseline samples should not be flagged")
}
