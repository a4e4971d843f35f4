package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"anomaly-stream-processor/models"
	"anomaly-stream-processor/stream"

	"github.com/montanaflynn/stats"
)

// Feeds the ingest endpoint with the synthetic sample stream and reports
// throughput plus latency percentiles.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run tools/feeder.go <url> [stream_id] [count] [interval]")
		fmt.Println("Example: go run tools/feeder.go http://localhost:8080/sample sensor-1 1000 100ms")
		os.Exit(1)
	}

	url := os.Args[1]
	streamID := "sensor-1"
	count := 1000
	interval := 100 * time.Millisecond

	if len(os.Args) > 2 {
		streamID = os.Args[2]
	}
	if len(os.Args) > 3 {
		fmt.Sscanf(os.Args[3], "%d", &count)
	}
	if len(os.Args) > 4 {
		d, err := time.ParseDuration(os.Args[4])
		if err == nil {
			interval = d
		}
	}

	fmt.Printf("Feeder Configuration:\n")
	fmt.Printf("  URL: %s\n", url)
	fmt.Printf("  Stream: %s\n", streamID)
	fmt.Printf("  Samples: %d\n", count)
	fmt.Printf("  Interval: %v\n\n", interval)

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	source := stream.NewSynthetic(time.Now().UnixNano())

	var sent, failed int
	latencies := make([]float64, 0, count)
	startTime := time.Now()

	for i := 0; i < count; i++ {
		latency, err := sendSample(client, url, streamID, source.Next())
		sent++
		if err != nil {
			failed++
		} else {
			latencies = append(latencies, float64(latency.Nanoseconds()))
		}

		if interval > 0 {
			time.Sleep(interval)
		}
	}

	printResults(time.Since(startTime), sent, failed, latencies)
}

func sendSample(client *http.Client, url, streamID string, value float64) (time.Duration, error) {
	sample := models.Sample{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		StreamID:  streamID,
		Value:     value,
	}

	jsonData, _ := json.Marshal(sample)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)

	if err != nil {
		return latency, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return latency, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return latency, nil
}

func printResults(duration time.Duration, sent, failed int, latencies []float64) {
	fmt.Println("\n==========================================")
	fmt.Println("Feeder Results")
	fmt.Println("==========================================")
	fmt.Printf("Duration:       %v\n", duration)
	fmt.Printf("Samples Sent:   %d\n", sent)
	fmt.Printf("Failed:         %d\n", failed)
	if sent > 0 {
		fmt.Printf("Success Rate:   %.2f%%\n", float64(sent-failed)/float64(sent)*100)
	}
	fmt.Printf("Samples/sec:    %.2f\n", float64(sent)/duration.Seconds())

	if len(latencies) == 0 {
		fmt.Println("==========================================")
		return
	}

	data := stats.Float64Data(latencies)
	minLat, _ := stats.Min(data)
	maxLat, _ := stats.Max(data)
	avgLat, _ := stats.Mean(data)
	p50, _ := stats.Percentile(data, 50)
	p95, _ := stats.Percentile(data, 95)
	p99, _ := stats.Percentile(data, 99)

	fmt.Println("\nLatency Statistics:")
	fmt.Printf("  Min:          %v\n", time.Duration(minLat))
	fmt.Printf("  Max:          %v\n", time.Duration(maxLat))
	fmt.Printf("  Average:      %v\n", time.Duration(avgLat))
	fmt.Printf("  p50:          %v\n", time.Duration(p50))
	fmt.Printf("  p95:          %v\n", time.Duration(p95))
	fmt.Printf("  p99:          %v\n", time.Duration(p99))
	fmt.Println("==========================================")
}
