package debug

import (
	"fmt"
	"math"
)

// AudioAnalyzer reports level statistics of audio buffers.
type AudioAnalyzer struct {
	clippingThreshold float32
	dcThreshold       float32
	silenceThreshold  float32
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		dcThreshold:       0.01,
		silenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	NaNCount       int
}

// PeakDB returns the peak level in dBFS.
func (r AnalysisResult) PeakDB() float64 {
	return amplitudeToDB(float64(r.Peak))
}

// RMSDB returns the RMS level in dBFS.
func (r AnalysisResult) RMSDB() float64 {
	return amplitudeToDB(float64(r.RMS))
}

// Analyze computes level statistics. NaN samples are counted and skipped.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	result := AnalysisResult{}

	var sum, sumSquares float64
	n := 0

	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			result.NaNCount++
			continue
		}
		n++

		abs := float32(math.Abs(float64(sample)))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.clippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		sum += float64(sample)
		sumSquares += float64(sample) * float64(sample)
	}

	if n == 0 {
		result.Silent = true
		return result
	}

	result.RMS = float32(math.Sqrt(sumSquares / float64(n)))
	result.DC = float32(sum / float64(n))
	result.Silent = result.RMS < a.silenceThreshold

	return result
}

// Check returns a description of each problem found in the buffer.
func (a *AudioAnalyzer) Check(buffer []float32, name string) []string {
	var issues []string
	result := a.Analyze(buffer)

	if result.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > float64(a.dcThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}

	return issues
}

// CompareBuffers returns the largest absolute difference between a and b
// and its index. Buffers of different length compare over the shorter one.
func CompareBuffers(a, b []float32) (maxDiff float32, index int) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		d := float32(math.Abs(float64(a[i] - b[i])))
		if d > maxDiff {
			maxDiff = d
			index = i
		}
	}
	return maxDiff, index
}

var defaultAnalyzer = NewAudioAnalyzer()

// AnalyzeBuffer performs analysis on a buffer using the default analyzer.
func AnalyzeBuffer(buffer []float32) AnalysisResult {
	return defaultAnalyzer.Analyze(buffer)
}

// LogBufferStats logs statistics about an audio buffer.
func LogBufferStats(buffer []float32, name string) {
	result := defaultAnalyzer.Analyze(buffer)

	Info("buffer %q: %d samples, peak %.1f dBFS, rms %.1f dBFS, dc %.6f",
		name, len(buffer), result.PeakDB(), result.RMSDB(), result.DC)

	for _, issue := range defaultAnalyzer.Check(buffer, name) {
		Warn("%s", issue)
	}
}

func amplitudeToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
