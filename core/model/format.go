package model

import (
	"math"
	"strconv"
)

func formatReal(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string { return strconv.Itoa(v) }

func formatBool(v bool) string { return strconv.FormatBool(v) }
