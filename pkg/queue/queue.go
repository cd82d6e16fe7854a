package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrQueueFull is returned by a bounded queue when no capacity remains. The
// caller should surface it as a retryable condition, never block on it.
var ErrQueueFull = errors.New("queue full")

// ErrNotRunning is returned when enqueueing to a stopped queue.
var ErrNotRunning = errors.New("queue not running")

// QueueService is the producer side of the intake queue.
type QueueService interface {
	PublishMessage(ctx context.Context, msgType string, payload interface{}) error
}

// Runner is a queue backend with a lifecycle: both the memory and Redis
// implementations satisfy it.
type Runner interface {
	QueueService
	Start() error
	Stop(ctx context.Context) error
}

// QueueConfig contains the configuration for the queue.
type QueueConfig struct {
	Workers   int // number of workers
	QueueSize int // capacity of the queue buffer
}

// Message represents a message in the queue.
type Message struct {
	ID        string
	Type      string
	Payload   interface{}
	Timestamp time.Time
}

// ParsePayload converts a queue payload back into a typed value. Memory
// queues hand the original value through; the Redis backend round-trips
// through JSON.
func ParsePayload[T any](payload interface{}) (*T, error) {
	var result T

	switch p := payload.(type) {
	case *T:
		return p, nil
	case T:
		return &p, nil
	case map[string]interface{}:
		jsonData, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal map to json: %w", err)
		}
		if err := json.Unmarshal(jsonData, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal json to struct: %w", err)
		}
		return &result, nil
	case json.RawMessage:
		if err := json.Unmarshal(p, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		return &result, nil
	default:
		return nil, fmt.Errorf("invalid payload type: %T", payload)
	}
}
