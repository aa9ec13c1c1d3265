package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeHeader lower-cases and trims a CSV column name.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

var moneyReplacer = strings.NewReplacer(",", "", "$", "", " ", "")

// ParseMoney parses amounts such as "$1,234.50" or "-12.3".
func ParseMoney(s string) (decimal.Decimal, error) {
	clean := moneyReplacer.Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// ParseNumber parses a finite float from a trimmed cell. NaN and Inf spellings
// count as missing, as do suffixed forms such as "2x".
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
