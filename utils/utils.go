package utils

import "math"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// Round2 rounds to 2 decimal places, half away from zero
// on the scaled integer (i.e. round(x*100)/100)
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
