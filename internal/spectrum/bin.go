// SPDX-License-Identifier: MIT
package spectrum

import "math"

// Tolerances below which a spectral component is considered absent. Raw
// transform output carries floating-point noise in bins that hold no real
// energy; values inside these bands are reported as exactly zero.
const (
	MagnitudeTolerance = 1e-4
	PhaseTolerance     = 1e-2
)

// FrequencyBin is one component of a one-sided spectrum. Magnitude follows
// the 2/n convention (DC and Nyquist not doubled), so a pure cosine of
// amplitude A at an exact bin frequency reports magnitude A. Immutable once
// constructed.
type FrequencyBin struct {
	Frequency float64 `json:"frequency"`
	Magnitude float64 `json:"module"`
	Phase     float64 `json:"phase"`
}

// newBin builds a FrequencyBin, snapping near-zero magnitude and phase to
// exactly 0.0. The two snaps are independent: a bin may keep its phase while
// its magnitude snaps, and vice versa.
func newBin(frequency, magnitude, phase float64) FrequencyBin {
	if math.Abs(magnitude) < MagnitudeTolerance {
		magnitude = 0.0
	}
	if math.Abs(phase) < PhaseTolerance {
		phase = 0.0
	}
	return FrequencyBin{Frequency: frequency, Magnitude: magnitude, Phase: phase}
}
