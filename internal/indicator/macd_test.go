package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMAConstantSeries(t *testing.T) {
	closes := []float64{42, 42, 42, 42, 42}

	ema, err := EMA(closes, 3)
	require.NoError(t, err)
	for _, v := range ema {
		assert.Equal(t, 42.0, v)
	}
}

func TestEMASeedsFromFirstPrice(t *testing.T) {
	closes := []float64{10, 20}

	ema, err := EMA(closes, 9)
	require.NoError(t, err)
	require.Len(t, ema, 2)
	assert.Equal(t, 10.0, ema[0])
	// k = 2/10 = 0.2, so 10 + 0.2*(20-10) = 12
	assert.InDelta(t, 12.0, ema[1], 1e-9)
}

func TestMACDConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100.0
	}

	line, signal, err := MACDSeries(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	require.NoError(t, err)
	require.Len(t, line, len(closes))
	for i := range line {
		assert.Equal(t, 0.0, line[i])
		assert.Equal(t, 0.0, signal[i])
	}
}

func TestMACDTooShort(t *testing.T) {
	line, signal, err := MACDSeries([]float64{100}, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	require.NoError(t, err)
	assert.Nil(t, line)
	assert.Nil(t, signal)

	_, _, ok := LastMACD([]float64{100}, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	assert.False(t, ok)
}

func TestMACDUptrendPositive(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}

	line, _, ok := LastMACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	require.True(t, ok)
	assert.Greater(t, line, 0.0)
}

func TestMACDInvalidSpan(t *testing.T) {
	_, _, err := MACDSeries([]float64{1, 2, 3}, 0, 26, 9)
	assert.Error(t, err)
}

func TestSummarizeShortSeries(t *testing.T) {
	set := Summarize([]float64{100})
	assert.False(t, set.RSI.Valid)
	assert.False(t, set.MACD.Valid)
	assert.False(t, set.Signal.Valid)
}

func TestSummarizeFullSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}

	set := Summarize(closes)
	assert.True(t, set.RSI.Valid)
	assert.True(t, set.MACD.Valid)
	assert.True(t, set.Signal.Valid)
}
