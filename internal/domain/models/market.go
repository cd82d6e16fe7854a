package models

// PricePoint is one daily close bar.
type PricePoint struct {
	Timestamp int64   `json:"t"` // unix seconds
	Close     float64 `json:"c"`
}

// PriceSeries is a chronologically ascending series of close prices.
// Timestamps are strictly increasing; gaps (non-trading days) are allowed.
type PriceSeries []PricePoint

// Closes extracts the close prices in order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// StockInfo holds descriptive metadata for a symbol. Every field except the
// symbol itself may be absent from the provider response.
type StockInfo struct {
	Symbol       string   `json:"symbol"`
	ShortName    *string  `json:"short_name,omitempty"`
	TrailingPE   *float64 `json:"trailing_pe,omitempty"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
	TotalRevenue *float64 `json:"total_revenue,omitempty"`
}

// Snapshot is one market-data fetch: metadata plus the lookback price series.
// Built fresh per analysis and discarded when the task completes.
type Snapshot struct {
	Info   StockInfo   `json:"info"`
	Series PriceSeries `json:"series"`
}

// IndicatorValue is a derived indicator that is only meaningful once enough
// history has accumulated.
type IndicatorValue struct {
	Value float64
	Valid bool
}

// IndicatorSet holds the indicators derived from one price series. MACD is
// the MACD line (fast EMA minus slow EMA); Signal is its smoothed signal
// line, computed but not displayed.
type IndicatorSet struct {
	RSI    IndicatorValue
	MACD   IndicatorValue
	Signal IndicatorValue
}
