package indicator

import (
	"errors"
	"math"
)

// DefaultRSIPeriod is the standard RSI lookback.
const DefaultRSIPeriod = 14

// RSISeries computes the Relative Strength Index at every position of the
// close series using a rolling arithmetic mean of gains and losses over
// `period` deltas. Positions where the window has not filled yet are NaN.
//
// When the mean loss over the window is exactly zero the RSI saturates at
// 100 rather than dividing by zero; a window of pure losses yields 0.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}

	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) < 2 {
		return out, nil
	}

	// Per-step deltas split into gains and losses.
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	var sumGain, sumLoss float64
	for i, g := range gains {
		sumGain += g
		sumLoss += losses[i]
		if i >= period {
			sumGain -= gains[i-period]
			sumLoss -= losses[i-period]
		}
		if i < period-1 {
			continue
		}

		meanLoss := sumLoss / float64(period)
		pos := i + 1 // price position this window ends at
		if meanLoss == 0 {
			out[pos] = 100.0
			continue
		}
		meanGain := sumGain / float64(period)
		rs := meanGain / meanLoss
		out[pos] = 100.0 - 100.0/(1.0+rs)
	}

	return out, nil
}

// LastRSI returns the most recent defined RSI value of the series, or
// ok=false when no position has accumulated enough history.
func LastRSI(closes []float64, period int) (float64, bool) {
	series, err := RSISeries(closes, period)
	if err != nil {
		return 0, false
	}
	return lastDefined(series)
}

func lastDefined(series []float64) (float64, bool) {
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) {
			return series[i], true
		}
	}
	return 0, false
}
