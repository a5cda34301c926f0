package gain

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Channels is the channel count the stereo engine processes.
const Channels = 2

// Process writes output[c][i] = input[c][i] * coeffs[i] for both channels
// and every frame in [0, frames). Both channels use the same coefficient
// array and are processed independently; output may alias input.
//
// It never allocates, locks or blocks. Anything other than two input and
// two output channels, or buffers shorter than frames, is a caller bug and
// panics.
func Process(input, output [][]float32, frames int, coeffs []float32) {
	checkStereo(len(input), len(output))
	coeffs = coeffs[:frames]

	for c := 0; c < Channels; c++ {
		in := input[c][:frames]
		out := output[c][:frames]
		for i, g := range coeffs {
			out[i] = in[i] * g
		}
	}
}

// ProcessConstant is Process with one coefficient for the whole block.
func ProcessConstant(input, output [][]float32, frames int, coeff float32) {
	checkStereo(len(input), len(output))

	for c := 0; c < Channels; c++ {
		in := input[c][:frames]
		out := output[c][:frames]
		for i := range in {
			out[i] = in[i] * coeff
		}
	}
}

// Process64 is Process for 64-bit buffers, using the vectorized multiply
// kernel selected for the running CPU.
func Process64(input, output [][]float64, frames int, coeffs []float64) {
	checkStereo(len(input), len(output))
	coeffs = coeffs[:frames]

	for c := 0; c < Channels; c++ {
		vecmath.MulBlock(output[c][:frames], input[c][:frames], coeffs)
	}
}

func checkStereo(inputs, outputs int) {
	if inputs != Channels || outputs != Channels {
		panic(fmt.Sprintf("gain: need %d input and %d output channels, got %d and %d",
			Channels, Channels, inputs, outputs))
	}
}
