package analytics

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"anomaly-stream-processor/models"
)

// ClassificationStore persists the latest result per stream.
type ClassificationStore interface {
	SaveClassification(streamID string, result models.ClassificationResult) error
}

// ResultSink receives every classification result as it is produced.
type ResultSink interface {
	Publish(result models.ClassificationResult)
}

type AnomalyCallback func(streamID string)

// streamState serializes classification per stream: the detector assumes a
// single owner, and two workers may pick up samples for the same stream.
type streamState struct {
	mu       sync.Mutex
	detector *AnomalyDetector
}

// Engine fans incoming samples out to a pool of workers, classifying each
// against its stream's own detector. Detectors are created lazily on first
// sight of a stream ID.
type Engine struct {
	store      ClassificationStore
	streams    map[string]*streamState
	mu         sync.RWMutex
	sampleChan chan models.Sample
	sinks      []ResultSink
	onAnomaly  AnomalyCallback

	windowSize int
	threshold  float64
}

func NewEngine(store ClassificationStore, windowSize int, threshold float64, onAnomaly AnomalyCallback, sinks ...ResultSink) (*Engine, error) {
	if windowSize < 2 {
		return nil, ErrInvalidCapacity
	}
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}

	engine := &Engine{
		store:      store,
		streams:    make(map[string]*streamState),
		sampleChan: make(chan models.Sample, 10000),
		sinks:      sinks,
		onAnomaly:  onAnomaly,
		windowSize: windowSize,
		threshold:  threshold,
	}

	numWorkers := runtime.NumCPU() * 2
	if numWorkers < 4 {
		numWorkers = 4
	}
	if numWorkers > 16 {
		numWorkers = 16
	}
	// An explicit override wins over the clamped default.
	if envWorkers := os.Getenv("ANALYTICS_WORKERS"); envWorkers != "" {
		if w, err := strconv.Atoi(envWorkers); err == nil && w > 0 {
			numWorkers = w
		}
	}
	log.Printf("Starting %d analytics workers", numWorkers)
	for i := 0; i < numWorkers; i++ {
		go engine.processSamples()
	}

	return engine, nil
}

// Ingest enqueues a sample for classification. Samples are dropped with a
// warning when the queue is full rather than blocking the caller.
func (e *Engine) Ingest(sample models.Sample) {
	select {
	case e.sampleChan <- sample:

	default:
		log.Printf("WARNING: Sample channel is full, dropping sample from stream %s", sample.StreamID)
	}
}

func (e *Engine) processSamples() {
	for sample := range e.sampleChan {
		e.processSample(sample)
	}
}

func (e *Engine) processSample(sample models.Sample) {
	state := e.streamFor(sample.StreamID)

	state.mu.Lock()
	classification := state.detector.Classify(sample.Value)
	windowLen := state.detector.window.Len()
	state.mu.Unlock()

	result := models.ClassificationResult{
		StreamID:    sample.StreamID,
		Value:       classification.Value,
		ZScore:      classification.ZScore,
		IsAnomaly:   classification.IsAnomaly,
		WindowLen:   windowLen,
		ProcessedAt: sample.ObservedAt(),
	}

	if e.store != nil {
		go func(streamID string, res models.ClassificationResult) {
			if err := e.store.SaveClassification(streamID, res); err != nil {
				log.Printf("ERROR: Failed to save classification for stream %s: %v", streamID, err)
			}
		}(sample.StreamID, result)
	}

	for _, sink := range e.sinks {
		sink.Publish(result)
	}

	if classification.IsAnomaly {
		log.Printf("ANOMALY DETECTED: stream=%s, value=%.2f, z_score=%.2f",
			sample.StreamID, sample.Value, classification.ZScore)

		if e.onAnomaly != nil {
			e.onAnomaly(sample.StreamID)
		}
	}
}

// streamFor returns the stream's state, creating it on first use.
func (e *Engine) streamFor(streamID string) *streamState {
	e.mu.RLock()
	state, exists := e.streams[streamID]
	e.mu.RUnlock()

	if exists {
		return state
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if state, exists = e.streams[streamID]; exists {
		return state
	}

	// Engine construction validated the parameters, so this cannot fail.
	detector, _ := NewAnomalyDetector(e.windowSize, e.threshold)
	state = &streamState{detector: detector}
	e.streams[streamID] = state
	return state
}

// WindowSnapshot returns a copy of the stream's current window contents,
// oldest first, or false if the stream has never been seen.
func (e *Engine) WindowSnapshot(streamID string) ([]float64, bool) {
	e.mu.RLock()
	state, exists := e.streams[streamID]
	e.mu.RUnlock()

	if !exists {
		return nil, false
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return state.detector.WindowValues(), true
}

// Drain waits until the sample queue is empty. Intended for tests and for
// shutdown, not as a synchronization primitive during normal operation.
func (e *Engine) Drain(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(e.sampleChan) == 0 {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return len(e.sampleChan) == 0
}
