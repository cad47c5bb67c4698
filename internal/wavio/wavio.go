// SPDX-License-Identifier: MIT

// Package wavio reads WAV files into the sample format the analyzer
// consumes: normalized float64 samples plus the sampling interval derived
// from the file header.
package wavio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadMono decodes a WAV file into float64 samples in [-1, 1) and returns
// them with the sample interval in seconds. Multi-channel files are reduced
// to their first channel.
func ReadMono(path string) ([]float64, float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open wav file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid wav file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode wav data: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%s has no usable sample rate", path)
	}
	if decoder.BitDepth == 0 {
		return nil, 0, fmt.Errorf("%s has an unsupported bit depth", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	scale := float64(int(1) << (decoder.BitDepth - 1))
	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float64(buf.Data[i])/scale)
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("%s contains no samples", path)
	}

	return samples, 1 / float64(buf.Format.SampleRate), nil
}
