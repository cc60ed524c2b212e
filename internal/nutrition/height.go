package nutrition

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	cmPerInch     = 2.54
	inchesPerFt   = 12
	maxBareFeet   = 8.0
	minBareCm     = 100.0
	maxBareInches = 100.0
)

// HeightToCm parses a free-form height and returns centimetres.
//
// Accepted forms:
//
//	5'10"   5'10   5' 10"   5 10   feet and inches
//	5   5.5                  bare number up to 8 is feet
//	70                       bare number above 8 and up to 100 is inches
//	178  178.5               bare number above 100 is centimetres
//
// Anything else yields 0, which callers treat as "invalid".
func HeightToCm(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}

	if strings.ContainsAny(s, "'\" ") {
		return parseFeetInches(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	switch {
	case v <= maxBareFeet:
		return v * inchesPerFt * cmPerInch
	case v > minBareCm:
		return v
	case v <= maxBareInches:
		return v * cmPerInch
	}
	return 0
}

func parseFeetInches(s string) float64 {
	s = strings.NewReplacer("\"", " ", "'", " ", "″", " ", "′", " ").Replace(s)
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 2 {
		return 0
	}

	feet, err := strconv.Atoi(parts[0])
	if err != nil || feet < 0 {
		return 0
	}

	var inches float64
	if len(parts) == 2 {
		inches, err = strconv.ParseFloat(parts[1], 64)
		if err != nil || inches < 0 || inches >= inchesPerFt {
			return 0
		}
	}

	cm := (float64(feet)*inchesPerFt + inches) * cmPerInch
	if cm <= 0 {
		return 0
	}
	return cm
}

// CmToHeightText renders cm as feet and inches, truncating both parts.
func CmToHeightText(cm float64) string {
	if cm <= 0 {
		return `0'0"`
	}
	totalInches := math.Round(cm/cmPerInch*1e6) / 1e6
	feet := math.Floor(totalInches / inchesPerFt)
	inches := math.Floor(math.Mod(totalInches, inchesPerFt))
	return fmt.Sprintf(`%d'%d"`, int(feet), int(inches))
}
