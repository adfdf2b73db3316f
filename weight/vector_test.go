package weight

import (
	"testing"

	"github.com/hupe1980/flop/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implementations returns one empty instance of every Vector implementation
// with room for keys in [0, 16).
func implementations() map[string]func() Vector {
	return map[string]func() Vector{
		"sparse": func() Vector { return sparse.New() },
		"dense":  func() Vector { return NewDense(16) },
		"object": func() Vector { return NewObject[string](nil, nil) },
		"hashed": func() Vector { return NewHashed(16, 0) },
	}
}

func TestContract(t *testing.T) {
	for name, mk := range implementations() {
		t.Run(name, func(t *testing.T) {
			v := mk()

			assert.Equal(t, 0.0, v.At(3))
			assert.Equal(t, int64(0), v.ActiveDimension())

			v.Inc(3, 2)
			v.Inc(5, -1)
			v.Inc(3, 1)
			assert.Equal(t, 3.0, v.At(3))
			assert.Equal(t, int64(2), v.ActiveDimension())
			assert.Equal(t, map[int64]float64{3: 3, 5: -1}, v.ToData())

			v.Inc(5, 1)
			assert.Equal(t, 0.0, v.At(5))
			assert.Equal(t, int64(1), v.ActiveDimension())

			dense := make([]float64, 16)
			dense[3] = 2
			assert.Equal(t, 6.0, v.DotDense(dense))

			other := sparse.FromMap(map[int64]float64{3: 0.5, 9: 100})
			assert.Equal(t, 1.5, v.DotSparse(other))

			sum := Fold(v, 0.0, func(acc float64, _ int64, x float64) float64 { return acc + x })
			assert.Equal(t, 3.0, sum)
		})
	}
}

func TestSupportAndOverlap(t *testing.T) {
	a := DenseFrom([]float64{1, 0, 2, 3})
	b := sparse.FromMap(map[int64]float64{2: 1, 3: 1, 7: 1})

	assert.Equal(t, uint64(3), Support(a).GetCardinality())
	assert.Equal(t, uint64(3), Support(b).GetCardinality())
	assert.Equal(t, uint64(2), Overlap(a, b))
}

func TestToSparse(t *testing.T) {
	d := DenseFrom([]float64{0, 1.5, 0, -2})

	s := ToSparse(d)
	assert.Equal(t, map[int64]float64{1: 1.5, 3: -2}, s.ToMap())
	assert.Equal(t, int64(4), s.Dimension())

	c := ToSparse(s)
	require.True(t, c.Equal(s))
	c.Inc(1, 1)
	assert.False(t, c.Equal(s))
}
