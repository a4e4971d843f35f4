package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"anomaly-stream-processor/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// subscription is one live consumer of classification results. An empty
// streamID receives every stream.
type subscription struct {
	id       string
	streamID string
	ch       chan models.ClassificationResult
	done     chan struct{}
	closed   bool
	mu       sync.Mutex
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	close(s.ch)
}

// ResultHub fans classification results out to websocket consumers. Slow
// consumers lose results rather than blocking the analytics engine.
type ResultHub struct {
	mu         sync.RWMutex
	subs       map[string]*subscription
	nextID     uint64
	bufferSize int
}

func NewResultHub(bufferSize int) *ResultHub {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &ResultHub{
		subs:       make(map[string]*subscription),
		bufferSize: bufferSize,
	}
}

func (h *ResultHub) subscribe(streamID string) *subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &subscription{
		id:       fmt.Sprintf("sub-%d", h.nextID),
		streamID: streamID,
		ch:       make(chan models.ClassificationResult, h.bufferSize),
		done:     make(chan struct{}),
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *ResultHub) unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if ok {
		sub.close()
	}
}

// Publish delivers a result to all matching subscriptions. Implements
// analytics.ResultSink.
func (h *ResultHub) Publish(result models.ClassificationResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.streamID != "" && sub.streamID != result.StreamID {
			continue
		}

		select {
		case sub.ch <- result:
		default:
			// Buffer full, drop the result
		}
	}
}

// Count returns the number of active subscriptions.
func (h *ResultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// HandleLive upgrades the connection and streams classification results as
// JSON text messages until the client disconnects. The optional stream_id
// query parameter restricts the feed to a single stream.
func (h *ResultHub) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer func() { _ = conn.Close() }()

	sub := h.subscribe(r.URL.Query().Get("stream_id"))
	defer h.unsubscribe(sub.id)

	// Detect client disconnect; the read side carries no commands.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case result, ok := <-sub.ch:
			if !ok {
				return
			}
			data, err := json.Marshal(result)
			if err != nil {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-readerDone:
			return
		case <-sub.done:
			return
		}
	}
}
