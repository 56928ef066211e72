package view

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
)

// fixedLimit is where fixed-point printing switches to exponent form.
const fixedLimit = 1e21

// exactDigits is enough fraction digits to print any float64 exactly.
const exactDigits = 1100

// FormatScore prints a relevance score with exactly two fraction digits.
// Exact midpoints round away from zero, matching how browsers print fixed-point numbers.
func FormatScore(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if v == 0 {
		return "0.00"
	}
	if math.Abs(v) >= fixedLimit {
		return raw.FormatNumber(v)
	}

	out := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	if isMidpoint(math.Abs(v)) {
		out = roundUp(math.Abs(v))
	}
	if v < 0 {
		return "-" + out
	}
	return out
}

// isMidpoint reports whether v lies exactly halfway between two hundredths.
func isMidpoint(v float64) bool {
	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	_, frac, _ := strings.Cut(exact, ".")
	if len(frac) < 3 || frac[2] != '5' {
		return false
	}
	return strings.TrimRight(frac[3:], "0") == ""
}

func roundUp(v float64) string {
	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	whole, frac, _ := strings.Cut(exact, ".")
	truncated, _, _ := new(big.Float).SetPrec(256).Parse(whole+"."+frac[:2], 10)
	step, _, _ := new(big.Float).SetPrec(256).Parse("0.01", 10)
	return truncated.Add(truncated, step).Text('f', 2)
}
