package util

import (
	"math"
	"strings"
)

const bytesPerGB = 1024.0 * 1024.0 * 1024.0

// Round rounds to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// BytesToGB converts a value in bytes to gigabytes (GB), rounded to 2 decimals.
func BytesToGB[T ~int | ~int64 | ~float64](bytes T) float64 {
	return Round(float64(bytes) / bytesPerGB)
}

// MBToGB converts a value in MB to GB, rounded to 2 decimals.
func MBToGB[T ~int | ~int32 | ~int64 | ~float64](mb T) float64 {
	return Round(float64(mb) / 1024.0)
}

// Ratio returns part/total rounded to 2 decimals, or 0 when total is not positive.
func Ratio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round(part / total)
}

// Percent returns part as a percentage of total rounded to 2 decimals, or 0
// when total is not positive.
func Percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round(part / total * 100)
}

// StringOr returns s, or fallback when s is blank.
func StringOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// BoolPtr returns a pointer to the given bool
func BoolPtr(b bool) *bool {
	return &b
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
