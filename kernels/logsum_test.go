package kernels

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAdd(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		delta  float64
	}{
		{"empty", nil, math.Inf(-1), 0},
		{"all -Inf", []float64{math.Inf(-1), math.Inf(-1)}, math.Inf(-1), 0},
		{"single", []float64{-2}, -2, 0},
		{"close values", []float64{math.Log(1), math.Log(2)}, math.Log(3), 1e-3},
		{"three equal", []float64{0, 0, 0}, math.Log(3), 1e-3},
		{"gap beyond window", []float64{0, -40}, 0, 0},
		{"with -Inf", []float64{math.Log(5), math.Inf(-1)}, math.Log(5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogAdd(tt.values)
			if math.IsInf(tt.want, -1) {
				assert.True(t, math.IsInf(got, -1), "got %v", got)
				return
			}
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestLogAdd2(t *testing.T) {
	assert.InDelta(t, math.Log(3), LogAdd2(math.Log(1), math.Log(2)), 1e-3)
	assert.InDelta(t, math.Log(3), LogAdd2(math.Log(2), math.Log(1)), 1e-3)
	assert.Equal(t, 0.0, LogAdd2(0, -40))
	assert.Equal(t, -1.0, LogAdd2(math.Inf(-1), -1))
	assert.True(t, math.IsInf(LogAdd2(math.Inf(-1), math.Inf(-1)), -1))

	nan := math.NaN()
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"nan second", 0, nan, 0},
		{"nan first", nan, -2, -2},
		{"huge", 1e20, 0, 1e20},
		{"positive infinity", math.Inf(1), 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogAdd2(tt.a, tt.b))
			assert.Equal(t, LogAdd([]float64{tt.a, tt.b}), LogAdd2(tt.a, tt.b))
		})
	}
	assert.True(t, math.IsInf(LogAdd2(nan, nan), -1))
}

func TestLogSumExpExact(t *testing.T) {
	l := NewLogSumExp(WithBins(0))

	assert.Equal(t, 0, l.Bins())
	assert.InDelta(t, math.Log(3), l.Add([]float64{0, math.Log(2)}), 1e-12)
	assert.InDelta(t, math.Exp(-1.5), l.ExpNegative(-1.5), 1e-15)
}

func TestLogSumExpTolerance(t *testing.T) {
	l := NewLogSumExp(WithTolerance(5), WithBins(0))
	assert.Equal(t, 5.0, l.Tolerance())

	// A term 6 below the maximum is pruned with a window of 5.
	assert.Equal(t, 0.0, l.Add([]float64{0, -6}))
	assert.InDelta(t, math.Log1p(math.Exp(-4)), l.Add([]float64{0, -4}), 1e-12)

	d := NewLogSumExp(WithTolerance(-1), WithBins(-3))
	assert.Equal(t, DefaultTolerance, d.Tolerance())
	assert.Equal(t, DefaultBins, d.Bins())
}

func TestExpNegative(t *testing.T) {
	assert.Equal(t, 0.0, ExpNegative(-30))
	assert.Equal(t, 0.0, ExpNegative(-100))
	assert.Equal(t, 1.0, ExpNegative(0))

	for _, l := range []*LogSumExp{NewLogSumExp(), NewLogSumExp(WithBins(0))} {
		for _, x := range []float64{0.5, 1e20, math.Inf(1), math.MaxFloat64} {
			assert.Equal(t, 1.0, l.ExpNegative(x), "x=%v bins=%d", x, l.Bins())
		}
		assert.True(t, math.IsNaN(l.ExpNegative(math.NaN())))
		assert.Equal(t, 0.0, l.ExpNegative(math.Inf(-1)))
	}

	for x := -29.9; x < 0; x += 0.37 {
		want := math.Exp(x)
		require.InEpsilon(t, want, ExpNegative(x), 2e-4, "x=%v", x)
	}
}

func TestExpNegativeConcurrentInit(t *testing.T) {
	l := NewLogSumExp()

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = l.ExpNegative(-1)
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.InEpsilon(t, math.Exp(-1), results[0], 2e-4)
}

func TestSloppyExp(t *testing.T) {
	assert.Equal(t, 0.0, SloppyExp(-31))
	assert.InDelta(t, 1.0005, SloppyExp(0.0005), 1e-15)
	assert.InDelta(t, math.E, SloppyExp(1), 1e-15)
}

func BenchmarkLogAdd(b *testing.B) {
	values := make([]float64, 64)
	for i := range values {
		values[i] = -float64(i) * 0.5
	}

	for b.Loop() {
		_ = LogAdd(values)
	}
}
