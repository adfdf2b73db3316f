package variate

import (
	"math"
)

// Source supplies uniform values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 satisfy it.
type Source interface {
	Float64() float64
}

// Gaussian returns a standard normal variate using the Box-Muller transform.
func Gaussian(src Source) float64 {
	u1 := 1 - src.Float64() // (0, 1]
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// StudentT returns a Student-t variate with dof degrees of freedom using
// Bailey's polar method.
func StudentT(src Source, dof float64) float64 {
	for {
		u := 2*src.Float64() - 1
		v := 2*src.Float64() - 1
		w := u*u + v*v
		if w > 0 && w <= 1 {
			r2 := dof * (math.Pow(w, -2/dof) - 1)
			return u * math.Sqrt(r2/w)
		}
	}
}

// Gamma returns a Gamma(shape, rate) variate using Marsaglia and Tsang's
// method. Shapes below 1 are boosted via Gamma(a) = Gamma(a+1) * U^(1/a).
func Gamma(src Source, shape, rate float64) float64 {
	boost := 1.0
	if shape < 1 {
		boost = math.Exp(math.Log(1-src.Float64()) / shape)
		shape++
	}

	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	var v float64
	for {
		var x float64
		for {
			x = Gaussian(src)
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		x = x * x
		u := src.Float64()
		if u < 1-0.0331*x*x || math.Log(u) < 0.5*x+d*(1-v+math.Log(v)) {
			break
		}
	}
	return boost * d * v / rate
}

// Beta returns a Beta(alpha, beta) variate as the ratio of two Gamma draws.
func Beta(src Source, alpha, beta float64) float64 {
	x := Gamma(src, alpha, 1)
	y := Gamma(src, beta, 1)
	return x / (x + y)
}

// Digamma returns the logarithmic derivative of the Gamma function for x > 0.
// The argument is shifted above 5 with the recurrence
// psi(x) = psi(x+1) - 1/x before the asymptotic series is applied.
func Digamma(x float64) float64 {
	var r float64
	for x <= 5 {
		r -= 1 / x
		x++
	}
	f := 1 / (x * x)
	t := f * (-1/12.0 +
		f*(1/120.0+
			f*(-1/252.0+
				f*(1/240.0+
					f*(-1/132.0+
						f*(691/32760.0+
							f*(-1/12.0+
								f*3617.0/8160.0)))))))
	return r + math.Log(x) - 0.5/x + t
}

// lanczos holds the six-term series coefficients used by LogGamma.
var lanczos = [6]float64{
	76.18009173,
	-86.50532033,
	24.01409822,
	-1.231739516,
	0.00120858003,
	-0.00000536382,
}

// LogGamma returns log(Gamma(x)) for x > 0 using a six-coefficient Lanczos
// approximation.
func LogGamma(x float64) float64 {
	tmp := (x-0.5)*math.Log(x+4.5) - (x + 4.5)
	ser := 1.0
	for i, c := range lanczos {
		ser += c / (x + float64(i))
	}
	return tmp + math.Log(ser*math.Sqrt(2*math.Pi))
}
