package usecase

import (
	"fmt"

	"StockSage/internal/domain/models"
)

const promptTemplate = `You're an AI stock analyst. Give a Buy/Sell/Hold for:

Name: %s
Symbol: %s
PE Ratio: %s
Profit Margin: %s
Revenue: %s
RSI: %s
MACD: %s

Explain in simple words.`

// BuildPrompt assembles the fixed-shape analysis prompt. Every absent field
// is substituted with "N/A"; the symbol is always present.
func BuildPrompt(symbol string, info models.StockInfo, set models.IndicatorSet) string {
	name := "N/A"
	if info.ShortName != nil {
		name = *info.ShortName
	}

	return fmt.Sprintf(promptTemplate,
		name,
		symbol,
		naFloat(info.TrailingPE, "%.2f"),
		naFloat(info.ProfitMargin, "%.4f"),
		naFloat(info.TotalRevenue, "%.0f"),
		naIndicator(set.RSI, "%.2f"),
		naIndicator(set.MACD, "%.4f"),
	)
}

func naFloat(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

func naIndicator(v models.IndicatorValue, format string) string {
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf(format, v.Value)
}
