package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecibelFloor is the lowest level DecibelFormatter prints as a number;
// anything below reads as -∞ and parses back as DecibelFloor.
const DecibelFloor = -90.0

// DecibelFormatter prints one decimal, or -∞ below the floor.
func DecibelFormatter(db float64) string {
	if db < DecibelFloor || math.IsInf(db, -1) {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser accepts what DecibelFormatter prints, with or without the
// unit, plus "-inf".
func DecibelParser(text string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.TrimSpace(strings.TrimSuffix(s, "db"))
	switch s {
	case "-∞", "∞", "-inf", "inf":
		return DecibelFloor, nil
	}
	return strconv.ParseFloat(s, 64)
}
