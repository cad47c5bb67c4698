// SPDX-License-Identifier: MIT

// Package spectrum computes the one-sided discrete Fourier spectrum of
// real-valued time-domain signals. Execution plans and their buffers are
// pooled by signal length, so repeated analyses of same-length signals skip
// the transform planning and allocation cost.
package spectrum

import (
	"errors"
	"math/cmplx"
)

// DefaultMaxCacheEntries bounds the number of distinct signal lengths held
// by an analyzer's plan cache before a full clear.
const DefaultMaxCacheEntries = 200

// Validation errors returned by Analyze before any cache or transform work.
var (
	ErrEmptySignal    = errors.New("Input signal cannot be empty")
	ErrSampleInterval = errors.New("Sample spacing must be positive")
)

// Analyzer performs spectrum analysis over real-valued signals. One
// long-lived instance is expected to back a service for its whole process
// lifetime; all methods are safe for concurrent use.
type Analyzer struct {
	cache *planCache
}

// NewAnalyzer creates an analyzer with an empty plan cache bounded at
// DefaultMaxCacheEntries distinct signal lengths.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithCacheLimit(DefaultMaxCacheEntries)
}

// NewAnalyzerWithCacheLimit creates an analyzer whose plan cache clears
// itself once maxEntries distinct signal lengths are held.
func NewAnalyzerWithCacheLimit(maxEntries int) *Analyzer {
	return &Analyzer{cache: newPlanCache(maxEntries)}
}

// Analyze computes the one-sided spectrum of signal, where sampleInterval is
// the time in seconds between consecutive samples. It returns len(signal)/2+1
// bins in ascending frequency order, starting at the DC bin.
//
// Magnitudes are scaled so a pure cosine of amplitude A at an exact bin
// frequency reports magnitude A: every bin is scaled by 2/n, except DC and
// (for even-length signals) Nyquist, which have no mirrored negative
// frequency and are scaled by 1/n.
func (a *Analyzer) Analyze(signal []float64, sampleInterval float64) ([]FrequencyBin, error) {
	n := len(signal)
	if n == 0 {
		return nil, ErrEmptySignal
	}
	if sampleInterval <= 0 {
		return nil, ErrSampleInterval
	}

	p := a.cache.acquire(n)
	defer a.cache.release(p)

	copy(p.input, signal)
	coeffs := p.execute()

	sampleRate := 1 / sampleInterval
	bins := make([]FrequencyBin, len(coeffs))
	for k, c := range coeffs {
		magnitude := cmplx.Abs(c) * 2 / float64(n)
		if k == 0 || (n%2 == 0 && k == len(coeffs)-1) {
			magnitude /= 2 // DC and Nyquist have no mirror to fold in
		}
		bins[k] = newBin(p.fft.Freq(k)*sampleRate, magnitude, cmplx.Phase(c))
	}

	return bins, nil
}

// ClearCache releases all cached plans and buffers. Called at process
// shutdown, or explicitly by an operator.
func (a *Analyzer) ClearCache() {
	a.cache.clear()
}

// CacheInfo reports the current cache state.
func (a *Analyzer) CacheInfo() CacheInfo {
	return a.cache.info()
}
