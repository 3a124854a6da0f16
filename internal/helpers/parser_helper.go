package helpers

import "strconv"

func StringToFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
