package repository

import (
	"context"

	"StockSage/internal/domain/models"
)

// MarketData fetches descriptive metadata and the lookback price series for
// a symbol. An unknown symbol surfaces as ErrNoData from the implementation.
type MarketData interface {
	Snapshot(ctx context.Context, symbol string) (*models.Snapshot, error)
}

// Narrator turns an assembled prompt into a narrative string.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// Replier delivers text back to the originating conversation.
type Replier interface {
	Reply(ctx context.Context, chatID int64, text string) error
}

// OutcomePublisher publishes completed outcomes to a downstream topic.
type OutcomePublisher interface {
	Publish(ctx context.Context, ev *models.OutcomeEvent) error
	Close() error
}

type Metrics interface {
	RecordOutcome(category string)
	RecordError(kind string)
	SetQueueDepth(n int)
	RecordLatency(stage string, seconds float64)
}
