package debug

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrSignalTooShort is returned when a buffer holds fewer samples than the
// smallest supported transform.
var ErrSignalTooShort = errors.New("signal too short for spectral analysis")

const minFFTSize = 64

// Spectrum returns the Hann-windowed magnitude spectrum of signal over bins
// [0, N/2], where N is the largest power of two not exceeding len(signal).
func Spectrum(signal []float32) ([]float64, error) {
	if len(signal) < minFFTSize {
		return nil, fmt.Errorf("%w: %d samples", ErrSignalTooShort, len(signal))
	}
	size := 1 << (bits.Len(uint(len(signal))) - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("create fft plan: %w", err)
	}

	in := make([]complex128, size)
	for i := range in {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
		in[i] = complex(float64(signal[i])*w, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("forward fft: %w", err)
	}

	mags := make([]float64, size/2+1)
	for i := range mags {
		re, im := real(out[i]), imag(out[i])
		mags[i] = math.Sqrt(re*re + im*im)
	}
	return mags, nil
}

// GainMeasurement compares the dominant component of an input signal with
// the same bin of the processed output.
type GainMeasurement struct {
	Bin       int
	Frequency float64 // Hz, zero when no sample rate was given
	InputDB   float64
	OutputDB  float64
}

// GainDB returns the measured gain in decibels.
func (m GainMeasurement) GainDB() float64 {
	return m.OutputDB - m.InputDB
}

// MeasureGain finds the strongest non-DC bin of input and reports the level
// change of that bin in output. Both buffers must hold the same signal
// length.
func MeasureGain(input, output []float32, sampleRate float64) (GainMeasurement, error) {
	if len(input) != len(output) {
		return GainMeasurement{}, fmt.Errorf("measure gain: length mismatch %d vs %d", len(input), len(output))
	}

	inSpec, err := Spectrum(input)
	if err != nil {
		return GainMeasurement{}, fmt.Errorf("measure gain: %w", err)
	}
	outSpec, err := Spectrum(output)
	if err != nil {
		return GainMeasurement{}, fmt.Errorf("measure gain: %w", err)
	}

	peak := 1
	for i := 2; i < len(inSpec); i++ {
		if inSpec[i] > inSpec[peak] {
			peak = i
		}
	}
	if inSpec[peak] == 0 {
		return GainMeasurement{}, errors.New("measure gain: input is silent")
	}

	m := GainMeasurement{
		Bin:      peak,
		InputDB:  amplitudeToDB(inSpec[peak]),
		OutputDB: amplitudeToDB(outSpec[peak]),
	}
	if sampleRate > 0 {
		size := 2 * (len(inSpec) - 1)
		m.Frequency = float64(peak) * sampleRate / float64(size)
	}
	return m, nil
}
