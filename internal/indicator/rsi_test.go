package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSISeriesShortSeriesAllUndefined(t *testing.T) {
	closes := []float64{100, 101, 102, 101, 103}

	series, err := RSISeries(closes, DefaultRSIPeriod)
	require.NoError(t, err)
	require.Len(t, series, len(closes))
	for i, v := range series {
		assert.True(t, math.IsNaN(v), "position %d should be undefined", i)
	}

	_, ok := LastRSI(closes, DefaultRSIPeriod)
	assert.False(t, ok)
}

func TestRSISeriesMonotoneIncreasing(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi, ok := LastRSI(closes, DefaultRSIPeriod)
	require.True(t, ok)
	assert.Equal(t, 100.0, rsi)
}

func TestRSISeriesMonotoneDecreasing(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	rsi, ok := LastRSI(closes, DefaultRSIPeriod)
	require.True(t, ok)
	assert.Equal(t, 0.0, rsi)
}

func TestRSISeriesBounds(t *testing.T) {
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64, 46.21, 46.25, 45.71, 46.45,
	}

	series, err := RSISeries(closes, DefaultRSIPeriod)
	require.NoError(t, err)

	defined := 0
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		defined++
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	// 23 deltas, first window closes after 14 of them
	assert.Equal(t, len(closes)-DefaultRSIPeriod, defined)
}

func TestRSISeriesFirstDefinedPosition(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50 + float64(i%3)
	}

	series, err := RSISeries(closes, DefaultRSIPeriod)
	require.NoError(t, err)

	for i := 0; i < DefaultRSIPeriod; i++ {
		assert.True(t, math.IsNaN(series[i]), "position %d should be undefined", i)
	}
	assert.False(t, math.IsNaN(series[DefaultRSIPeriod]))
}

func TestRSISeriesWindowValue(t *testing.T) {
	// With period 2: deltas +2, -1 give mean gain 1, mean loss 0.5,
	// RS=2, RSI=100-100/3.
	closes := []float64{10, 12, 11}

	series, err := RSISeries(closes, 2)
	require.NoError(t, err)
	require.False(t, math.IsNaN(series[2]))
	assert.InDelta(t, 100.0-100.0/3.0, series[2], 1e-9)
}

func TestRSISeriesInvalidPeriod(t *testing.T) {
	_, err := RSISeries([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}
