//go:build wireinject
// +build wireinject

package di

import (
	"StockSage/pkg/config"
	"StockSage/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// External collaborators
		ProvideMarketData,
		ProvideNarrator,
		ProvideReplier,
		ProvideOutcomePublisher,

		// Use cases
		ProvideAnalyzer,
		ProvideAnalysisJob,

		// Intake queue + HTTP
		ProvideQueue,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
