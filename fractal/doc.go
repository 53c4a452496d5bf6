// Package fractal classifies points of the complex plane by escape time.
//
// Classification is a pure function of (point, iterations) and is safe to call
// from any number of goroutines.
package fractal
