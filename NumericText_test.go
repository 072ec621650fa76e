package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	numeric := []string{"0", "12", "  12 ", "-3.5", "+4", "007", ".5", "1e3"}
	for _, text := range numeric {
		assert.True(t, IsNumeric(text), text)
	}

	notNumeric := []string{"", "   ", "12abc", "abc", "1.2.3", "$5", "1,000", "Inf", "NaN", "#ERROR"}
	for _, text := range notNumeric {
		assert.False(t, IsNumeric(text), text)
	}
}

func TestStripCurrencyFormatting(t *testing.T) {
	assert.Equal(t, "1200.50", StripCurrencyFormatting("$1,200.50"))
	assert.Equal(t, "-42", StripCurrencyFormatting(" -$42 "))
	assert.Equal(t, "1000000", StripCurrencyFormatting("1,000,000"))
	assert.Equal(t, "abc", StripCurrencyFormatting("abc"))
	assert.Equal(t, "", StripCurrencyFormatting("$,"))

	// purely textual, no validation
	assert.Equal(t, "1.2.3", StripCurrencyFormatting("$1.2.3"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "14", formatNumber(14))
	assert.Equal(t, "0.5", formatNumber(0.5))
	assert.Equal(t, "-54", formatNumber(-54))
	assert.Equal(t, "130.5", formatNumber(130.5))
}
