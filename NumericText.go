package main

import (
	"math"
	"strconv"
	"strings"
)

var currencyDecorationReplacer = strings.NewReplacer("$", "", ",", "")

// IsNumeric reports whether text, after trimming, parses as a finite
// decimal number. "12abc" and "" are not numeric; "  -3.5 " and "007" are.
func IsNumeric(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	return err == nil && !math.IsInf(value, 0) && !math.IsNaN(value)
}

// StripCurrencyFormatting removes dollar signs and thousands separators so
// pasted currency text like "$1,200.50" can participate in arithmetic. It
// is purely textual: no numeric validation happens here.
func StripCurrencyFormatting(text string) string {
	return currencyDecorationReplacer.Replace(strings.TrimSpace(text))
}

func parseNumber(text string) float64 {
	value, _ := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return value
}

// formatNumber is the canonical numeric-to-text form for evaluation
// results: shortest decimal representation, no grouping, no forced ".0".
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
