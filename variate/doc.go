// Package variate draws random variates (Gaussian, Student-t, Gamma, Beta,
// Dirichlet) from a caller-supplied uniform Source and evaluates the special
// functions Digamma and LogGamma.
//
// The package functions take the Source explicitly. Generator binds one
// Source and adds bulk helpers such as FillGaussian and Perturb. Neither
// synchronizes access to the Source: give each goroutine its own.
package variate
