// SPDX-License-Identifier: MIT
package spectrum

import "gonum.org/v1/gonum/dsp/fourier"

// plan bundles a transform execution plan with the fixed-size buffers it
// operates on. Building the fourier.FFT is the expensive part of an analysis
// call; a plan is built once per signal length and reused.
//
// A plan is not safe for concurrent use: execute overwrites both buffers.
// The cache hands each plan to at most one caller at a time.
type plan struct {
	length int
	fft    *fourier.FFT
	input  []float64
	output []complex128
	gen    uint64 // cache generation at checkout, see planCache
}

// newPlan builds an execution plan for real signals of exactly length n.
// The output buffer holds the n/2+1 coefficients of the one-sided spectrum.
func newPlan(n int) *plan {
	return &plan{
		length: n,
		fft:    fourier.NewFFT(n),
		input:  make([]float64, n),
		output: make([]complex128, n/2+1),
	}
}

// execute runs the transform over the plan's input buffer, filling the
// output buffer with the one-sided coefficients.
func (p *plan) execute() []complex128 {
	return p.fft.Coefficients(p.output, p.input)
}
