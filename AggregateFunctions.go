package main

import (
	"strconv"
	"strings"

	"runwayGridExcel/contracts"
)

// aggregateNames is the full set of recognized function names.
var aggregateNames = map[string]bool{
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
	"COUNT": true,
}

// aggregateOperands accumulates resolved operands for one call. Every
// non-empty raw operand counts for COUNT; only operands whose
// currency-stripped text is numeric join the numeric list.
type aggregateOperands struct {
	numbers  []float64
	nonEmpty int
}

func (a *aggregateOperands) collect(raw string) {
	if raw != "" {
		a.nonEmpty++
	}

	stripped := StripCurrencyFormatting(raw)
	if IsNumeric(stripped) {
		a.numbers = append(a.numbers, parseNumber(stripped))
	}
}

// EvaluateAggregate computes a named function over literal, reference and
// range arguments. Each argument classifies itself: text with a ":" is a
// range, text shaped like a cell label is a single reference, everything
// else is a literal operand. References and ranges resolve to the
// referenced cells' raw grid values; formulas inside them are not
// re-evaluated here.
func EvaluateAggregate(name string, args []string, grid contracts.Grid) string {
	name = strings.ToUpper(name)
	if !aggregateNames[name] {
		return ErrorFuncSentinel
	}
	if len(args) == 0 {
		return ErrorArgsSentinel
	}

	operands := &aggregateOperands{numbers: make([]float64, 0, len(args))}

	for _, arg := range args {
		switch {
		case strings.Contains(arg, ":"):
			for _, coord := range ParseRange(arg, grid.Rows(), grid.Cols()) {
				operands.collect(grid.Value(coord.Row, coord.Col))
			}

		case isCellRefText(arg):
			if row, col, ok := ParseAddress(arg, grid.Rows(), grid.Cols()); ok {
				operands.collect(grid.Value(row, col))
			} else {
				// in-pattern but out-of-bounds: the operand resolves to
				// the sentinel itself, which is non-empty and non-numeric
				operands.collect(ErrorRefSentinel)
			}

		default:
			operands.collect(arg)
		}
	}

	switch name {
	case "SUM":
		return formatNumber(sumOf(operands.numbers))

	case "AVG":
		if len(operands.numbers) == 0 {
			return "0"
		}
		return formatNumber(sumOf(operands.numbers) / float64(len(operands.numbers)))

	case "MIN":
		if len(operands.numbers) == 0 {
			return "0"
		}
		minimum := operands.numbers[0]
		for _, value := range operands.numbers[1:] {
			if value < minimum {
				minimum = value
			}
		}
		return formatNumber(minimum)

	case "MAX":
		if len(operands.numbers) == 0 {
			return "0"
		}
		maximum := operands.numbers[0]
		for _, value := range operands.numbers[1:] {
			if value > maximum {
				maximum = value
			}
		}
		return formatNumber(maximum)

	case "COUNT":
		return strconv.Itoa(operands.nonEmpty)
	}

	return ErrorFuncSentinel
}

func sumOf(values []float64) float64 {
	total := float64(0)
	for _, value := range values {
		total += value
	}
	return total
}
