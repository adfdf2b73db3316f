package kernels

import (
	"math"
	"sync"
)

// LogSumExp computes sums in the log domain, pruning terms that fall more
// than a tolerance below the largest one.
//
// A LogSumExp is immutable after construction and safe for concurrent use.
type LogSumExp struct {
	tolerance float64
	bins      int
	invBin    float64
	table     func() []float64
}

// NewLogSumExp creates a LogSumExp. The exp table is built on first use.
func NewLogSumExp(opts ...Option) *LogSumExp {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	l := &LogSumExp{
		tolerance: o.tolerance,
		bins:      o.bins,
	}
	if o.bins > 0 {
		l.invBin = float64(o.bins) / o.tolerance
		l.table = sync.OnceValue(l.buildTable)
	}
	return l
}

// Tolerance returns the pruning window.
func (l *LogSumExp) Tolerance() float64 { return l.tolerance }

// Bins returns the exp table resolution, 0 when exp is computed exactly.
func (l *LogSumExp) Bins() int { return l.bins }

// buildTable samples exp at the center of each bucket of [-tolerance, 0).
// The extra last slot holds exp(0).
func (l *LogSumExp) buildTable() []float64 {
	t := make([]float64, l.bins+1)
	width := l.tolerance / float64(l.bins)
	half := width / 2
	for i := range l.bins {
		t[i] = math.Exp(float64(i)*width - l.tolerance + half)
	}
	t[l.bins] = 1.0
	return t
}

// ExpNegative approximates exp(x) for x <= 0. Arguments at or below
// -tolerance return 0, non-negative arguments return 1 and NaN stays NaN.
func (l *LogSumExp) ExpNegative(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x <= -l.tolerance:
		return 0.0
	case x >= 0:
		return 1.0
	case l.bins == 0:
		return math.Exp(x)
	}
	i := int((x + l.tolerance) * l.invBin)
	return l.table()[min(i, l.bins)]
}

// Exp is exp(x) that returns 0 below -tolerance and 1+x for |x| < 0.001.
func (l *LogSumExp) Exp(x float64) float64 {
	if x < -l.tolerance {
		return 0.0
	}
	if math.Abs(x) < 0.001 {
		return 1 + x
	}
	return math.Exp(x)
}

// Add returns log(sum(exp(v))) over values. An empty input, or one where
// every value is -Inf, returns -Inf.
func (l *LogSumExp) Add(values []float64) float64 {
	maxIndex := -1
	maxV := math.Inf(-1)
	for i, v := range values {
		if v > maxV {
			maxV = v
			maxIndex = i
		}
	}
	if maxIndex < 0 || math.IsInf(maxV, 1) {
		return maxV
	}

	threshold := maxV - l.tolerance
	var sum float64
	for i, v := range values {
		if i != maxIndex && v > threshold {
			sum += l.ExpNegative(v - maxV)
		}
	}
	if sum > 0 {
		return maxV + math.Log1p(sum)
	}
	return maxV
}

// Add2 returns log(exp(a) + exp(b)). Like Add it ignores NaN operands, so
// two NaN operands give -Inf.
func (l *LogSumExp) Add2(a, b float64) float64 {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.Inf(-1)
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, 0) || b <= a-l.tolerance {
		return a
	}
	return a + math.Log1p(l.ExpNegative(b-a))
}

var std = NewLogSumExp()

// LogAdd returns log(sum(exp(v))) with the default tolerance and table.
func LogAdd(values []float64) float64 { return std.Add(values) }

// LogAdd2 returns log(exp(a) + exp(b)) with the default tolerance and table.
func LogAdd2(a, b float64) float64 { return std.Add2(a, b) }

// ExpNegative approximates exp(x) for x <= 0 with the default table.
func ExpNegative(x float64) float64 { return std.ExpNegative(x) }

// SloppyExp is LogSumExp.Exp with the default tolerance.
func SloppyExp(x float64) float64 { return std.Exp(x) }
