package cache

import (
	"context"
	"encoding/json"
	"time"

	"anomaly-stream-processor/models"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 10,
		MaxRetries:   3,
	})

	ctx := context.Background()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{
		client: rdb,
		ctx:    ctx,
	}, nil
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

// SaveClassification stores the latest classification result for a stream
// with a short TTL; only the most recent result is retained.
func (rc *RedisClient) SaveClassification(streamID string, result models.ClassificationResult) error {
	key := "classification:" + streamID

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return rc.client.Set(rc.ctx, key, data, 5*time.Minute).Err()
}

// GetClassification returns nil, nil when no result is cached for the stream.
func (rc *RedisClient) GetClassification(streamID string) (*models.ClassificationResult, error) {
	key := "classification:" + streamID

	val, err := rc.client.Get(rc.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result models.ClassificationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
