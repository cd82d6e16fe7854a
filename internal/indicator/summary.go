package indicator

import "StockSage/internal/domain/models"

// Summarize derives the reported indicator set from a close series using the
// default windows. Series too short for an indicator leave it invalid; the
// caller degrades such values to "N/A" rather than failing.
func Summarize(closes []float64) models.IndicatorSet {
	var set models.IndicatorSet

	if rsi, ok := LastRSI(closes, DefaultRSIPeriod); ok {
		set.RSI = models.IndicatorValue{Value: rsi, Valid: true}
	}
	if line, sig, ok := LastMACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal); ok {
		set.MACD = models.IndicatorValue{Value: line, Valid: true}
		set.Signal = models.IndicatorValue{Value: sig, Valid: true}
	}
	return set
}
