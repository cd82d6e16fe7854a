package usecase

import (
	"context"
	"fmt"
	"time"

	"StockSage/internal/domain/models"
	drepo "StockSage/internal/domain/repository"
	"StockSage/pkg/logger"
	"StockSage/pkg/queue"
)

// EventTypeAnalysis is the queue message type the job claims.
const EventTypeAnalysis = "analysis.request"

const greetingText = "Hi! Send a stock symbol like TCS.NS or INFY.NS to get AI stock analysis."

// replyTimeout bounds the outbound delivery call so a stalled reply channel
// cannot occupy a worker indefinitely.
const replyTimeout = 30 * time.Second

// AnalysisJob is the dispatcher's unit of work: claim one queued event, run
// one analysis, deliver exactly one reply. It never returns an error for a
// failed analysis — failures are themselves outcomes — only for payloads it
// cannot decode at all.
type AnalysisJob struct {
	analyzer  *Analyzer
	replier   drepo.Replier
	publisher drepo.OutcomePublisher // optional, may be nil
	metrics   drepo.Metrics
	log       *logger.Logger
}

// NewAnalysisJob creates a new AnalysisJob.
func NewAnalysisJob(
	analyzer *Analyzer,
	replier drepo.Replier,
	publisher drepo.OutcomePublisher,
	metrics drepo.Metrics,
	lgr *logger.Logger,
) *AnalysisJob {
	return &AnalysisJob{
		analyzer:  analyzer,
		replier:   replier,
		publisher: publisher,
		metrics:   metrics,
		log:       lgr,
	}
}

func (j *AnalysisJob) Name() string { return "stock-analysis" }

func (j *AnalysisJob) Type() string { return EventTypeAnalysis }

// Handle processes one queued event end to end.
func (j *AnalysisJob) Handle(ctx context.Context, payload interface{}) error {
	ev, err := queue.ParsePayload[models.AnalysisEvent](payload)
	if err != nil {
		j.metrics.RecordError("payload_decode")
		return fmt.Errorf("decode analysis event: %w", err)
	}

	start := time.Now()

	var out *models.Outcome
	switch ev.Kind {
	case models.EventStart:
		out = &models.Outcome{
			Category: models.CategorySuccess,
			Reply:    greetingText,
		}
	default:
		out = j.analyzer.Analyze(ctx, ev.Text)
	}
	out.ChatID = ev.ChatID

	j.deliver(ctx, out)
	j.metrics.RecordOutcome(string(out.Category))

	if j.publisher != nil {
		j.publishOutcome(ctx, out, time.Since(start))
	}

	j.log.Info("analysis completed",
		logger.Int64("update_id", ev.UpdateID),
		logger.String("symbol", out.Symbol),
		logger.String("category", string(out.Category)),
		logger.Duration("elapsed_ms", time.Since(start)))
	return nil
}

// deliver sends the reply to the originating conversation. Delivery
// failures are logged, not retried.
func (j *AnalysisJob) deliver(ctx context.Context, out *models.Outcome) {
	replyCtx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	if err := j.replier.Reply(replyCtx, out.ChatID, out.Reply); err != nil {
		j.metrics.RecordError("reply_delivery")
		j.log.Error("reply delivery failed",
			logger.Int64("chat_id", out.ChatID),
			logger.String("category", string(out.Category)),
			logger.Error(err))
	}
}

// publishOutcome emits the outcome event for downstream consumers,
// best-effort.
func (j *AnalysisJob) publishOutcome(ctx context.Context, out *models.Outcome, elapsed time.Duration) {
	ev := &models.OutcomeEvent{
		Symbol:     out.Symbol,
		Category:   out.Category,
		ChatID:     out.ChatID,
		DurationMs: elapsed.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
	if err := j.publisher.Publish(ctx, ev); err != nil {
		j.metrics.RecordError("outcome_publish")
		j.log.Warn("outcome publish failed", logger.Error(err))
	}
}

var _ queue.Job = (*AnalysisJob)(nil)
