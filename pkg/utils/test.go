package utils

import "math"

// Tone describes one sinusoidal component of a synthetic test signal.
type Tone struct {
	Frequency float64 // Hz
	Amplitude float64
	Phase     float64 // radians
}

// GenerateToneSignal synthesizes the sum of A·cos(2πft + φ) over all tones,
// sampled at sampleRate for duration seconds.
func GenerateToneSignal(tones []Tone, sampleRate, duration float64) []float64 {
	n := int(sampleRate * duration)
	signal := make([]float64, n)
	for i := range signal {
		t := float64(i) / sampleRate
		for _, tone := range tones {
			signal[i] += tone.Amplitude * math.Cos(2*math.Pi*tone.Frequency*t+tone.Phase)
		}
	}
	return signal
}

// GenerateSineWave synthesizes a unit-amplitude sine at the given frequency.
func GenerateSineWave(size int, sampleRate, frequency float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2 * math.Pi * frequency * t)
	}
	return buffer
}

// FindPeakBin returns the index of the largest magnitude within
// magnitudes[startBin..endBin].
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
