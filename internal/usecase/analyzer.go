package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockSage/internal/domain/models"
	drepo "StockSage/internal/domain/repository"
	"StockSage/internal/indicator"
	"StockSage/internal/service/openrouter"
	"StockSage/internal/service/yahoo"
	"StockSage/pkg/logger"
)

// minSymbolLen rejects one-letter noise before any network call is made.
const minSymbolLen = 2

// Analyzer runs one analysis task: validate the symbol, fetch market data,
// derive indicators, compose the prompt, and obtain the narrative. Each
// task is sequential and worker-local; the only shared state is the
// collaborators, which are safe for concurrent use.
//
// Analyze never returns an error: every failure, including a panic, becomes
// a categorized Outcome so the dispatcher worker is never taken down.
type Analyzer struct {
	market   drepo.MarketData
	narrator drepo.Narrator
	metrics  drepo.Metrics
	log      *logger.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(market drepo.MarketData, narrator drepo.Narrator, metrics drepo.Metrics, lgr *logger.Logger) *Analyzer {
	return &Analyzer{
		market:   market,
		narrator: narrator,
		metrics:  metrics,
		log:      lgr,
	}
}

// Analyze produces exactly one Outcome for the given raw symbol text.
func (a *Analyzer) Analyze(ctx context.Context, rawSymbol string) (out *models.Outcome) {
	symbol := strings.ToUpper(strings.TrimSpace(rawSymbol))

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("analysis panic recovered",
				logger.String("symbol", symbol),
				logger.Any("panic", r))
			a.metrics.RecordError("analysis_panic")
			out = a.failure(symbol, models.NewUnexpectedError(fmt.Errorf("panic: %v", r)))
		}
	}()

	// Validate
	if len(symbol) < minSymbolLen {
		return a.failure(symbol, models.NewValidationError(rawSymbol))
	}

	// Fetch
	start := time.Now()
	snap, err := a.market.Snapshot(ctx, symbol)
	a.metrics.RecordLatency("fetch", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			return a.failure(symbol, models.NewDataUnavailableError(symbol, err))
		}
		return a.failure(symbol, models.NewTransportError(err))
	}
	if len(snap.Series) == 0 {
		return a.failure(symbol, models.NewDataUnavailableError(symbol, nil))
	}

	// Compute; an indicator fault degrades to N/A, it never ends the task.
	set := a.computeIndicators(symbol, snap.Series)

	// Compose
	prompt := BuildPrompt(symbol, snap.Info, set)

	// Narrate
	start = time.Now()
	narrative, err := a.narrator.Narrate(ctx, prompt)
	a.metrics.RecordLatency("narrate", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, openrouter.ErrBadResponse) {
			return a.failure(symbol, models.NewNarrativeError(err))
		}
		return a.failure(symbol, models.NewTransportError(err))
	}

	return &models.Outcome{
		Symbol:   symbol,
		Category: models.CategorySuccess,
		Reply:    fmt.Sprintf("📈 %s:\n\n%s", symbol, narrative),
	}
}

func (a *Analyzer) computeIndicators(symbol string, series models.PriceSeries) (set models.IndicatorSet) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("indicator computation failed",
				logger.String("symbol", symbol),
				logger.Any("panic", r))
			a.metrics.RecordError(string(models.CategoryIndicator))
			set = models.IndicatorSet{}
		}
	}()

	start := time.Now()
	set = indicator.Summarize(series.Closes())
	a.metrics.RecordLatency("compute", time.Since(start).Seconds())
	return set
}

func (a *Analyzer) failure(symbol string, terr *models.TaskError) *models.Outcome {
	a.log.Warn("analysis failed",
		logger.String("symbol", symbol),
		logger.String("category", string(terr.Category)),
		logger.Error(terr))
	return &models.Outcome{
		Symbol:   symbol,
		Category: terr.Category,
		Reply:    "❌ " + terr.UserMessage,
	}
}
