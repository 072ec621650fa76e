package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders plain numeric text as USD display text:
// "1000" -> "$1,000.00". Error sentinels, empty strings and any other
// non-numeric text pass through unchanged, so the formatter is safe to
// apply at the display boundary without inspecting the value first.
func FormatCurrency(text string) string {
	if isErrorSentinel(text) || !IsNumeric(text) {
		return text
	}

	return currencyPrinter.Sprintf("$%v", number.Decimal(parseNumber(text), number.Scale(2)))
}
