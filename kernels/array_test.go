package kernels

import (
	"math/rand"
	"testing"

	"github.com/hupe1980/flop"
	"github.com/hupe1980/flop/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestSampleDiscrete(t *testing.T) {
	dist := []float64{0.2, 0.3, 0.5}

	assert.Equal(t, 0, SampleDiscrete(constSource(0.1), dist))
	assert.Equal(t, 0, SampleDiscrete(constSource(0.2), dist))
	assert.Equal(t, 1, SampleDiscrete(constSource(0.45), dist))
	assert.Equal(t, 2, SampleDiscrete(constSource(0.99), dist))

	// Exhausted scan falls back to index 0.
	assert.Equal(t, 0, SampleDiscrete(constSource(0.9), []float64{0.1, 0.1}))
}

func TestSampleDiscreteConvergence(t *testing.T) {
	dist := []float64{0.2, 0.3, 0.5}
	src := rand.New(rand.NewSource(4711))

	const n = 100000
	counts := make([]int, len(dist))
	for range n {
		counts[SampleDiscrete(src, dist)]++
	}

	for i, p := range dist {
		assert.InDelta(t, p, float64(counts[i])/n, 0.01, "index %d", i)
	}
}

func TestSampleDiscreteRNG(t *testing.T) {
	rng := testutil.NewRNG(4711)
	dist := rng.Distribution(10)

	for range 1000 {
		i := SampleDiscrete(rng, dist)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, len(dist))
	}
}

func TestSampleDiscreteEmpty(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, flop.ErrPrecondition)
	}()
	SampleDiscrete(constSource(0.5), nil)
}

func TestAddInPlace(t *testing.T) {
	acc := []float64{1, 2, 3}

	AddInPlace(acc, []float64{1, 0, -1}, 2, 1)

	assert.Equal(t, []float64{4, 3, 2}, acc)
}

func TestMultiplyInPlace(t *testing.T) {
	acc := []float64{1, 2, 3}

	MultiplyInPlace(acc, []float64{2, 0, -1})

	assert.Equal(t, []float64{2, 0, -3}, acc)
}

func TestLengthMismatch(t *testing.T) {
	for name, fn := range map[string]func(){
		"AddInPlace":      func() { AddInPlace(make([]float64, 2), make([]float64, 3), 1, 0) },
		"MultiplyInPlace": func() { MultiplyInPlace(make([]float64, 2), make([]float64, 3)) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				var pe *flop.PreconditionError
				err, _ := recover().(error)
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, name, pe.Op)
			}()
			fn()
		})
	}
}
