package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"anomaly-stream-processor/cache"
	"anomaly-stream-processor/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultWindowSize = 100
	defaultThreshold  = 3.0
)

func main() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	windowSize := defaultWindowSize
	if env := os.Getenv("WINDOW_SIZE"); env != "" {
		w, err := strconv.Atoi(env)
		if err != nil {
			log.Fatalf("Invalid WINDOW_SIZE %q: %v", env, err)
		}
		windowSize = w
	}

	threshold := defaultThreshold
	if env := os.Getenv("Z_THRESHOLD"); env != "" {
		t, err := strconv.ParseFloat(env, 64)
		if err != nil {
			log.Fatalf("Invalid Z_THRESHOLD %q: %v", env, err)
		}
		threshold = t
	}

	redisClient, err := cache.NewRedisClient(redisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", redisAddr, err)
	}
	defer redisClient.Close()
	log.Printf("Connected to Redis at %s", redisAddr)

	r := mux.NewRouter()

	hub := handlers.NewResultHub(1000)

	// A bad window size or threshold refuses startup; there is no sane
	// implicit default for a malformed configuration.
	sampleHandler, err := handlers.NewSampleHandler(redisClient, windowSize, threshold, hub)
	if err != nil {
		log.Fatalf("Invalid detector configuration (window_size=%d, threshold=%v): %v", windowSize, threshold, err)
	}
	log.Printf("Detector configured: window_size=%d, threshold=%.2f", windowSize, threshold)

	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/sample", sampleHandler.HandleSample).Methods("POST")
	r.HandleFunc("/result", sampleHandler.HandleResult).Methods("GET")
	r.HandleFunc("/stats", sampleHandler.HandleStats).Methods("GET")
	r.HandleFunc("/live", hub.HandleLive).Methods("GET")

	r.Path("/metrics").Handler(promhttp.Handler())

	srv := &http.Server{
		Addr:           listenAddr,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	go func() {
		log.Printf("Server starting on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
