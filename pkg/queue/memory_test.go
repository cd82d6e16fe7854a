package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"StockSage/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return lgr
}

// countingJob records every payload it handles, optionally misbehaving on
// selected payloads.
type countingJob struct {
	mu      sync.Mutex
	seen    []int
	handled int64
	panicOn int
	failOn  int
	block   chan struct{}
}

func (j *countingJob) Name() string { return "counting" }
func (j *countingJob) Type() string { return "test.count" }

func (j *countingJob) Handle(ctx context.Context, payload interface{}) error {
	if j.block != nil {
		<-j.block
	}

	n := payload.(int)
	j.mu.Lock()
	j.seen = append(j.seen, n)
	j.mu.Unlock()
	atomic.AddInt64(&j.handled, 1)

	if j.panicOn != 0 && n == j.panicOn {
		panic("boom")
	}
	if j.failOn != 0 && n == j.failOn {
		return assert.AnError
	}
	return nil
}

func waitHandled(t *testing.T, job *countingJob, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt64(&job.handled) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d handled, got %d", want, atomic.LoadInt64(&job.handled))
}

func TestMemoryQueueEachMessageClaimedOnce(t *testing.T) {
	job := &countingJob{}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 4, QueueSize: 128}, []Job{job})
	require.NoError(t, q.Start())

	const n = 50
	for i := 1; i <= n; i++ {
		require.NoError(t, q.PublishMessage(context.Background(), "test.count", i))
	}

	waitHandled(t, job, n)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))

	// No loss, no duplication.
	counts := make(map[int]int)
	for _, v := range job.seen {
		counts[v]++
	}
	assert.Len(t, counts, n)
	for i := 1; i <= n; i++ {
		assert.Equal(t, 1, counts[i], "message %d claimed %d times", i, counts[i])
	}
}

func TestMemoryQueueWorkerSurvivesPanicAndError(t *testing.T) {
	job := &countingJob{panicOn: 2, failOn: 3}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 1, QueueSize: 16}, []Job{job})
	require.NoError(t, q.Start())

	for i := 1; i <= 4; i++ {
		require.NoError(t, q.PublishMessage(context.Background(), "test.count", i))
	}

	// The single worker must outlive both the panic on 2 and the error on 3
	// and still handle 4.
	waitHandled(t, job, 4)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))

	assert.Equal(t, []int{1, 2, 3, 4}, job.seen)
}

func TestMemoryQueueFullRejects(t *testing.T) {
	block := make(chan struct{})
	job := &countingJob{block: block}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 1, QueueSize: 1}, []Job{job})
	require.NoError(t, q.Start())

	// First message is claimed by the blocked worker.
	require.NoError(t, q.PublishMessage(context.Background(), "test.count", 1))
	deadline := time.Now().Add(time.Second)
	for q.Depth() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 0, q.Depth())

	// Second fills the buffer, third must be rejected, not block.
	require.NoError(t, q.PublishMessage(context.Background(), "test.count", 2))
	err := q.PublishMessage(context.Background(), "test.count", 3)
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
	waitHandled(t, job, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))
}

func TestMemoryQueueNotRunning(t *testing.T) {
	job := &countingJob{}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 1, QueueSize: 4}, []Job{job})

	err := q.PublishMessage(context.Background(), "test.count", 1)
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestMemoryQueueUnknownType(t *testing.T) {
	job := &countingJob{}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 1, QueueSize: 4}, []Job{job})
	require.NoError(t, q.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Stop(ctx)
	}()

	err := q.PublishMessage(context.Background(), "nope", 1)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrQueueFull)
}

func TestMemoryQueueDepthGauge(t *testing.T) {
	var last int64
	block := make(chan struct{})
	job := &countingJob{block: block}
	q := NewMemoryQueue(newTestLogger(t), &QueueConfig{Workers: 1, QueueSize: 8}, []Job{job},
		WithDepthFunc(func(d int) { atomic.StoreInt64(&last, int64(d)) }))
	require.NoError(t, q.Start())

	require.NoError(t, q.PublishMessage(context.Background(), "test.count", 1))
	close(block)
	waitHandled(t, job, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, q.Stop(ctx))

	assert.GreaterOrEqual(t, atomic.LoadInt64(&last), int64(0))
}

func TestParsePayloadVariants(t *testing.T) {
	type ev struct {
		ChatID int64  `json:"chat_id"`
		Text   string `json:"text"`
	}

	direct, err := ParsePayload[ev](ev{ChatID: 7, Text: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), direct.ChatID)

	ptr, err := ParsePayload[ev](&ev{ChatID: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(8), ptr.ChatID)

	fromMap, err := ParsePayload[ev](map[string]interface{}{"chat_id": 9, "text": "MSFT"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), fromMap.ChatID)
	assert.Equal(t, "MSFT", fromMap.Text)

	_, err = ParsePayload[ev](42)
	assert.Error(t, err)
}
