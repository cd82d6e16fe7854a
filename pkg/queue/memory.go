package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"StockSage/pkg/logger"
)

// MemoryQueue is a bounded in-process FIFO with a fixed worker pool. It is
// the default intake-queue backend: producers (the webhook handler) push
// without blocking and a full buffer rejects with ErrQueueFull.
//
// Guarantees: each enqueued message is claimed by exactly one worker; a
// panicking or failing job never stops the worker that ran it.
type MemoryQueue struct {
	log       *logger.Logger
	config    *QueueConfig
	jobs      map[string]Job
	ch        chan Message
	wg        sync.WaitGroup
	mu        sync.RWMutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
	depthFn   func(int)
	seq       int64
}

// MemoryQueueOption configures MemoryQueue.
type MemoryQueueOption func(*MemoryQueue)

// WithDepthFunc installs a gauge callback invoked with the buffer depth on
// every enqueue and claim.
func WithDepthFunc(fn func(int)) MemoryQueueOption {
	return func(m *MemoryQueue) {
		m.depthFn = fn
	}
}

// NewMemoryQueue creates a new in-memory queue.
func NewMemoryQueue(lgr *logger.Logger, config *QueueConfig, jobs []Job, opts ...MemoryQueueOption) *MemoryQueue {
	if config == nil {
		config = &QueueConfig{}
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())

	mq := &MemoryQueue{
		log:    lgr,
		config: config,
		jobs:   make(map[string]Job),
		ch:     make(chan Message, config.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for _, opt := range opts {
		opt(mq)
	}
	for _, job := range jobs {
		mq.RegisterJob(job)
	}

	return mq
}

// RegisterJob registers a single job.
func (m *MemoryQueue) RegisterJob(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.jobs[job.Type()]; exists {
		m.log.Warn("job already registered", logger.String("job", job.Name()))
		return
	}

	m.jobs[job.Type()] = job
	m.log.Info("job registered",
		logger.String("job", job.Name()),
		logger.String("type", job.Type()))
}

// Start launches the worker pool.
func (m *MemoryQueue) Start() error {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		return fmt.Errorf("queue already running")
	}
	m.isRunning = true
	m.mu.Unlock()

	for i := 0; i < m.config.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	m.log.Info("memory queue started",
		logger.Int("workers", m.config.Workers),
		logger.Int("capacity", m.config.QueueSize))
	return nil
}

// Stop stops accepting new messages and waits for workers to drain, up to
// the context deadline. In-flight work past the deadline is abandoned.
func (m *MemoryQueue) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.isRunning {
		m.mu.Unlock()
		return nil
	}
	m.isRunning = false
	m.mu.Unlock()

	m.log.Info("stopping memory queue...")
	m.cancel()

	doneCh := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(doneCh)
	}()

	select {
	case <-ctx.Done():
		m.log.Warn("timeout waiting for queue workers", logger.Error(ctx.Err()))
		return fmt.Errorf("timeout: %w", ctx.Err())
	case <-doneCh:
		m.log.Info("memory queue stopped gracefully")
		return nil
	}
}

// Enqueue adds a message without blocking; a full buffer returns
// ErrQueueFull so the producer can reject with a retryable status.
func (m *MemoryQueue) Enqueue(ctx context.Context, msgType string, payload interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.isRunning {
		return ErrNotRunning
	}
	if _, exists := m.jobs[msgType]; !exists {
		return fmt.Errorf("no job registered for type: %s", msgType)
	}

	seq := atomic.AddInt64(&m.seq, 1)
	msg := Message{
		ID:        fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq),
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case m.ch <- msg:
		m.reportDepth()
		return nil
	default:
		return ErrQueueFull
	}
}

// PublishMessage publishes a message (implements QueueService).
func (m *MemoryQueue) PublishMessage(ctx context.Context, msgType string, payload interface{}) error {
	return m.Enqueue(ctx, msgType, payload)
}

// Depth returns the number of buffered messages.
func (m *MemoryQueue) Depth() int {
	return len(m.ch)
}

func (m *MemoryQueue) reportDepth() {
	if m.depthFn != nil {
		m.depthFn(len(m.ch))
	}
}

func (m *MemoryQueue) worker(id int) {
	defer m.wg.Done()
	m.log.Info("queue worker started", logger.Int("worker_id", id))

	for {
		select {
		case <-m.ctx.Done():
			m.log.Info("queue worker stopping", logger.Int("worker_id", id))
			return
		case msg := <-m.ch:
			m.reportDepth()
			m.processMessage(id, msg)
		}
	}
}

// processMessage runs one job. A panic or error is logged and the worker
// moves on to the next message.
func (m *MemoryQueue) processMessage(id int, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("job panic recovered",
				logger.Int("worker_id", id),
				logger.String("id", msg.ID),
				logger.Any("panic", r))
		}
	}()

	m.mu.RLock()
	job, exists := m.jobs[msg.Type]
	m.mu.RUnlock()
	if !exists {
		m.log.Error("no job found",
			logger.String("type", msg.Type),
			logger.String("id", msg.ID))
		return
	}

	start := time.Now()
	if err := job.Handle(m.ctx, msg.Payload); err != nil {
		m.log.Error("message processing error",
			logger.String("id", msg.ID),
			logger.String("job", job.Name()),
			logger.Duration("elapsed_ms", time.Since(start)),
			logger.Error(err))
	}
}
