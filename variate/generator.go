package variate

import (
	"math/rand/v2"

	"github.com/hupe1980/flop/kernels"
	"github.com/hupe1980/flop/sparse"
)

// Generator draws variates from a bound Source.
// It is not safe for concurrent use.
type Generator struct {
	src Source
}

// New creates a Generator reading from src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeeded creates a Generator over a PCG source seeded with seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Float64 returns the next uniform value in [0, 1).
func (g *Generator) Float64() float64 { return g.src.Float64() }

// Gaussian returns a standard normal variate.
func (g *Generator) Gaussian() float64 { return Gaussian(g.src) }

// Normal returns a normal variate with the given mean and standard deviation.
func (g *Generator) Normal(mean, stddev float64) float64 {
	return mean + stddev*Gaussian(g.src)
}

// StudentT returns a Student-t variate.
func (g *Generator) StudentT(dof float64) float64 { return StudentT(g.src, dof) }

// Gamma returns a Gamma(shape, rate) variate.
func (g *Generator) Gamma(shape, rate float64) float64 { return Gamma(g.src, shape, rate) }

// Beta returns a Beta(alpha, beta) variate.
func (g *Generator) Beta(alpha, beta float64) float64 { return Beta(g.src, alpha, beta) }

// Discrete draws an index from the categorical distribution dist.
func (g *Generator) Discrete(dist []float64) int { return kernels.SampleDiscrete(g.src, dist) }

// FillGaussian fills dst with standard normal variates.
func (g *Generator) FillGaussian(dst []float64) {
	for i := range dst {
		dst[i] = Gaussian(g.src)
	}
}

// Dirichlet returns a draw from the Dirichlet distribution with the given
// concentration parameters. If every component underflows to zero the mass
// is placed on a uniformly chosen index.
func (g *Generator) Dirichlet(alphas []float64) []float64 {
	out := make([]float64, len(alphas))
	if len(alphas) == 0 {
		return out
	}
	var sum float64
	for i, a := range alphas {
		out[i] = Gamma(g.src, a, 1)
		sum += out[i]
	}
	if sum == 0 {
		out[int(g.src.Float64()*float64(len(out)))] = 1
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Perturb adds scale times a standard normal variate to every populated
// entry of v. Entries that land exactly on zero are removed.
func (g *Generator) Perturb(v *sparse.Vector, scale float64) {
	if scale == 0 {
		return
	}
	for _, k := range v.Keys() {
		v.Inc(k, scale*Gaussian(g.src))
	}
}
