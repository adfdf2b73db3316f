package sparse

import (
	"math"
	"testing"

	"github.com/hupe1980/flop/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNorm(t *testing.T) {
	assert.Equal(t, 0.0, New().Norm())
	assert.InDelta(t, 5.0, FromMap(map[int64]float64{1: 3, 2: -4}).Norm(), 1e-12)
}

func TestDiffNorm(t *testing.T) {
	a := FromMap(map[int64]float64{1: 1, 2: 2})
	b := FromMap(map[int64]float64{2: 1, 3: 2})

	assert.InDelta(t, math.Sqrt(6), a.DiffNorm(b), 1e-12)
	assert.InDelta(t, math.Sqrt(6), b.DiffNorm(a), 1e-12)
	assert.Equal(t, 0.0, a.DiffNorm(a.Clone()))
	assert.InDelta(t, a.Norm(), a.DiffNorm(nil), 1e-12)
}

func TestDiffNormRandom(t *testing.T) {
	rng := testutil.NewRNG(4711)
	ma := rng.SparseEntries(60, 200)
	mb := rng.SparseEntries(60, 200)

	var want float64
	for k, x := range ma {
		d := x - mb[k]
		want += d * d
	}
	for k, y := range mb {
		if _, ok := ma[k]; !ok {
			want += y * y
		}
	}

	assert.InDelta(t, math.Sqrt(want), FromMap(ma).DiffNorm(FromMap(mb)), 1e-9)
}

func TestScaleInPlace(t *testing.T) {
	v := FromMap(map[int64]float64{1: 1, 2: -2})

	v.ScaleInPlace(3)
	assert.Equal(t, map[int64]float64{1: 3, 2: -6}, v.ToMap())

	v.ScaleInPlace(0)
	assert.Equal(t, 0, v.Len())
	checkIndex(t, v)
}

func TestNormalize(t *testing.T) {
	v := FromMap(map[int64]float64{1: 3, 2: 4})

	n := v.Normalized()
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
	assert.InDelta(t, 5.0, v.Norm(), 1e-12)

	v.NormalizeInPlace()
	assert.InDelta(t, 0.6, v.Get(1), 1e-12)
	assert.InDelta(t, 0.8, v.Get(2), 1e-12)

	z := New().NormalizeInPlace()
	assert.Equal(t, 0, z.Len())
}

func TestDotDense(t *testing.T) {
	v := FromMap(map[int64]float64{0: 2, 3: 1})

	assert.Equal(t, 6.0, v.DotDense([]float64{1, 2, 3, 4}))
	assert.Equal(t, 6.0, v.DotDense32([]float32{1, 2, 3, 4}))
	assert.Equal(t, 0.0, v.DotDense(nil))
}

func TestDotMap(t *testing.T) {
	v := FromMap(map[int64]float64{1: 2, 3: 1})

	assert.Equal(t, 4.0, v.DotMap(map[int64]float64{1: 2, 2: 100}))
	assert.Equal(t, 0.0, v.DotMap(nil))
}

func TestDotSymmetry(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for range 20 {
		ma := rng.SparseEntries(1+rng.Intn(50), 128)
		mb := rng.SparseEntries(1+rng.Intn(50), 128)
		a, b := FromMap(ma), FromMap(mb)

		var want float64
		for k, x := range ma {
			want += x * mb[k]
		}

		require.InDelta(t, Dot(a, b), Dot(b, a), 1e-12)
		require.InDelta(t, a.DotSparse(b), b.DotSparse(a), 1e-12)
		require.InDelta(t, want, Dot(a, b), 1e-9)
		require.InDelta(t, want, a.DotMap(mb), 1e-9)
	}

	assert.Equal(t, 0.0, Dot(nil, New()))
	assert.Equal(t, 0.0, New().DotSparse(nil))
}

func BenchmarkDotSparse(b *testing.B) {
	rng := testutil.NewRNG(4711)
	x := FromMap(rng.SparseEntries(1000, 1<<14))
	y := FromMap(rng.SparseEntries(5000, 1<<14))

	for b.Loop() {
		_ = Dot(x, y)
	}
}
