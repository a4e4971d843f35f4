package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"anomaly-stream-processor/analytics"
	"anomaly-stream-processor/cache"
	"anomaly-stream-processor/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	anomaliesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anomalies_detected_total",
			Help: "Total number of anomalies detected",
		},
		[]string{"stream_id"},
	)
)

type SampleHandler struct {
	redisClient *cache.RedisClient
	engine      *analytics.Engine
}

func NewSampleHandler(redisClient *cache.RedisClient, windowSize int, threshold float64, hub *ResultHub) (*SampleHandler, error) {
	onAnomaly := func(streamID string) {
		anomaliesDetectedTotal.WithLabelValues(streamID).Inc()
	}

	// A typed nil pointer must not reach the engine as a non-nil interface.
	var store analytics.ClassificationStore
	if redisClient != nil {
		store = redisClient
	}

	var sinks []analytics.ResultSink
	if hub != nil {
		sinks = append(sinks, hub)
	}

	engine, err := analytics.NewEngine(store, windowSize, threshold, onAnomaly, sinks...)
	if err != nil {
		return nil, err
	}

	return &SampleHandler{
		redisClient: redisClient,
		engine:      engine,
	}, nil
}

// Engine exposes the analytics engine for callers that ingest samples
// directly instead of through HTTP.
func (h *SampleHandler) Engine() *analytics.Engine {
	return h.engine
}

func (h *SampleHandler) HandleSample(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		duration := time.Since(start).Seconds()
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	}()

	var sample models.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := sample.Validate(); err != nil {
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.engine.Ingest(sample)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "accepted",
		"stream_id": sample.StreamID,
	})

	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "200").Inc()
}

func (h *SampleHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream_id")
	if streamID == "" {
		http.Error(w, "stream_id parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.redisClient.GetClassification(streamID)
	if err != nil {
		http.Error(w, "Failed to get classification: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if result == nil {
		http.Error(w, "No classification for stream "+streamID, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *SampleHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream_id")
	if streamID == "" {
		http.Error(w, "stream_id parameter is required", http.StatusBadRequest)
		return
	}

	values, ok := h.engine.WindowSnapshot(streamID)
	if !ok {
		http.Error(w, "Unknown stream "+streamID, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analytics.SummarizeWindow(streamID, values))
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
