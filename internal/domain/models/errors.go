package models

import "fmt"

// Category classifies how an analysis ended. Every terminal failure maps to
// exactly one category with its own user-facing wording.
type Category string

const (
	CategorySuccess         Category = "success"
	CategoryValidation      Category = "validation"
	CategoryDataUnavailable Category = "data_unavailable"
	CategoryIndicator       Category = "indicator" // recovered locally, never terminal
	CategoryNarrative       Category = "narrative"
	CategoryTransport       Category = "transport"
	CategoryUnexpected      Category = "unexpected"
)

// TaskError is a categorized analysis failure carrying both the internal
// cause and the message shown to the user.
type TaskError struct {
	Category    Category
	UserMessage string
	Err         error
}

func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return string(e.Category) + ": " + e.UserMessage
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed or too-short symbol.
func NewValidationError(symbol string) *TaskError {
	return &TaskError{
		Category:    CategoryValidation,
		UserMessage: "Please send a valid stock symbol (at least 2 characters), like TCS.NS or INFY.NS.",
		Err:         fmt.Errorf("invalid symbol %q", symbol),
	}
}

// NewDataUnavailableError reports an empty or missing price series.
func NewDataUnavailableError(symbol string, err error) *TaskError {
	return &TaskError{
		Category:    CategoryDataUnavailable,
		UserMessage: fmt.Sprintf("No data for %s. Check the symbol and try again.", symbol),
		Err:         err,
	}
}

// NewNarrativeError reports a failed narrative-service call.
func NewNarrativeError(err error) *TaskError {
	return &TaskError{
		Category:    CategoryNarrative,
		UserMessage: "Failed to get analysis. The AI service is unavailable right now.",
		Err:         err,
	}
}

// NewTransportError reports a network-level fault on an outbound call.
func NewTransportError(err error) *TaskError {
	return &TaskError{
		Category:    CategoryTransport,
		UserMessage: "A network error occurred while fetching data. Please try again in a moment.",
		Err:         err,
	}
}

// NewUnexpectedError is the catch-all for faults the task did not anticipate.
func NewUnexpectedError(err error) *TaskError {
	return &TaskError{
		Category:    CategoryUnexpected,
		UserMessage: "Something went wrong while processing your request.",
		Err:         err,
	}
}
