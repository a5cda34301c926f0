// Package gain is the stereo gain engine and its decibel conversions.
package gain

import "math"

// MinDB is what LinearToDb reports for zero, negative and NaN amplitudes.
const MinDB = -200.0

// DbToLinear returns the amplitude coefficient 10^(db/20). It is positive
// for every finite db, strictly increasing, and exactly 1 at 0 dB.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDb is the inverse of DbToLinear.
func LinearToDb(linear float64) float64 {
	if !(linear > 0) {
		return MinDB
	}
	return 20 * math.Log10(linear)
}

// DbToLinear32 computes in float64 and rounds once.
func DbToLinear32(db float32) float32 {
	return float32(DbToLinear(float64(db)))
}

func LinearToDb32(linear float32) float32 {
	return float32(LinearToDb(float64(linear)))
}
