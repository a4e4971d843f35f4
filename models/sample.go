package models

import (
	"errors"
	"math"
	"time"
)

// Sample is a single observation for a named stream.
type Sample struct {
	Timestamp string  `json:"timestamp"`
	StreamID  string  `json:"stream_id"`
	Value     float64 `json:"value"`
}

func (s *Sample) Validate() error {
	if s.StreamID == "" {
		return errors.New("stream_id is required")
	}

	if s.Timestamp == "" {
		return errors.New("timestamp is required")
	}

	if _, err := time.Parse(time.RFC3339, s.Timestamp); err != nil {
		return errors.New("invalid timestamp format, expected RFC3339")
	}

	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return errors.New("value must be a finite number")
	}

	return nil
}

func (s *Sample) ObservedAt() time.Time {
	t, err := time.Parse(time.RFC3339, s.Timestamp)
	if err != nil {
		return time.Now()
	}
	return t
}

// ClassificationResult is what downstream consumers receive for every
// ingested sample.
type ClassificationResult struct {
	StreamID    string    `json:"stream_id"`
	Value       float64   `json:"value"`
	ZScore      float64   `json:"z_score"`
	IsAnomaly   bool      `json:"is_anomaly"`
	WindowLen   int       `json:"window_len"`
	ProcessedAt time.Time `json:"processed_at"`
}

// WindowStats summarizes the current contents of a stream's window.
type WindowStats struct {
	StreamID string  `json:"stream_id"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	P95      float64 `json:"p95"`
}
