package usecase

import (
	"testing"

	"StockSage/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func TestBuildPromptAllFieldsPresent(t *testing.T) {
	info := models.StockInfo{
		Symbol:       "INFY.NS",
		ShortName:    str("Infosys Limited"),
		TrailingPE:   f64(24.567),
		ProfitMargin: f64(0.16234),
		TotalRevenue: f64(1536780000000),
	}
	set := models.IndicatorSet{
		RSI:  models.IndicatorValue{Value: 57.123, Valid: true},
		MACD: models.IndicatorValue{Value: -1.23459, Valid: true},
	}

	prompt := BuildPrompt("INFY.NS", info, set)

	assert.Contains(t, prompt, "You're an AI stock analyst. Give a Buy/Sell/Hold for:")
	assert.Contains(t, prompt, "Name: Infosys Limited")
	assert.Contains(t, prompt, "Symbol: INFY.NS")
	assert.Contains(t, prompt, "PE Ratio: 24.57")
	assert.Contains(t, prompt, "Profit Margin: 0.1623")
	assert.Contains(t, prompt, "Revenue: 1536780000000")
	assert.Contains(t, prompt, "RSI: 57.12")
	assert.Contains(t, prompt, "MACD: -1.2346")
	assert.Contains(t, prompt, "Explain in simple words.")
	assert.NotContains(t, prompt, "N/A")
}

func TestBuildPromptAllFieldsAbsent(t *testing.T) {
	prompt := BuildPrompt("AA", models.StockInfo{Symbol: "AA"}, models.IndicatorSet{})

	assert.Contains(t, prompt, "Name: N/A")
	assert.Contains(t, prompt, "Symbol: AA")
	assert.Contains(t, prompt, "PE Ratio: N/A")
	assert.Contains(t, prompt, "Profit Margin: N/A")
	assert.Contains(t, prompt, "Revenue: N/A")
	assert.Contains(t, prompt, "RSI: N/A")
	assert.Contains(t, prompt, "MACD: N/A")
}
