package indicator

import "errors"

// Default MACD spans (fast/slow/signal).
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// EMA computes the exponential moving average of the series with the given
// span. The first value seeds from the first price; each subsequent value is
// prev + k*(price-prev) with k = 2/(span+1). Seeding from the first price
// makes every position defined, so MACD on a constant series is exactly zero
// everywhere.
func EMA(series []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(series) == 0 {
		return nil, nil
	}

	k := 2.0 / float64(span+1)
	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = out[i-1] + k*(series[i]-out[i-1])
	}
	return out, nil
}

// MACDSeries computes the MACD line (fast EMA minus slow EMA) and its signal
// line (EMA of the MACD line). A series with fewer than 2 points has no
// defined MACD and returns nil slices.
func MACDSeries(closes []float64, fast, slow, signal int) (line, signalLine []float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, errors.New("spans must be positive")
	}
	if len(closes) < 2 {
		return nil, nil, nil
	}

	emaFast, err := EMA(closes, fast)
	if err != nil {
		return nil, nil, err
	}
	emaSlow, err := EMA(closes, slow)
	if err != nil {
		return nil, nil, err
	}

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine, err = EMA(line, signal)
	if err != nil {
		return nil, nil, err
	}
	return line, signalLine, nil
}

// LastMACD returns the most recent MACD line and signal values, or ok=false
// when the series is too short to define them.
func LastMACD(closes []float64, fast, slow, signal int) (line, signalValue float64, ok bool) {
	lineSeries, signalSeries, err := MACDSeries(closes, fast, slow, signal)
	if err != nil || len(lineSeries) == 0 {
		return 0, 0, false
	}
	return lineSeries[len(lineSeries)-1], signalSeries[len(signalSeries)-1], true
}
