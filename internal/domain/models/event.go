package models

import "time"

// EventKind distinguishes the inbound requests the pipeline handles.
type EventKind string

const (
	// EventAnalyze is a symbol-analysis request.
	EventAnalyze EventKind = "analyze"
	// EventStart is the /start greeting command.
	EventStart EventKind = "start"
)

// AnalysisEvent is one queued inbound event: the raw symbol text plus the
// routing information needed to reply. Owned by the queue until a worker
// claims it, then by that worker alone.
type AnalysisEvent struct {
	UpdateID int64     `json:"update_id"`
	ChatID   int64     `json:"chat_id"`
	Kind     EventKind `json:"kind"`
	Text     string    `json:"text"`
}

// Outcome is the single terminal result of one analysis event. Exactly one
// Outcome is produced per AnalysisEvent.
type Outcome struct {
	ChatID   int64
	Symbol   string
	Category Category
	Reply    string
}

// OutcomeEvent is the record published to the optional outcome topic.
type OutcomeEvent struct {
	Symbol     string    `json:"symbol"`
	Category   Category  `json:"category"`
	ChatID     int64     `json:"chat_id"`
	DurationMs int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
