package analytics

import (
	"github.com/montanaflynn/stats"

	"anomaly-stream-processor/models"
)

// SummarizeWindow computes descriptive statistics over a window snapshot.
// The standard deviation here uses the population convention, matching the
// detector. Empty windows yield a zeroed summary.
func SummarizeWindow(streamID string, values []float64) models.WindowStats {
	summary := models.WindowStats{
		StreamID: streamID,
		Count:    len(values),
	}
	if len(values) == 0 {
		return summary
	}

	data := stats.Float64Data(values)

	summary.Mean, _ = stats.Mean(data)
	summary.StdDev, _ = stats.StandardDeviationPopulation(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)
	summary.P95, _ = stats.Percentile(data, 95)

	return summary
}
