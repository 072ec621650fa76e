package main

import (
	"regexp"
	"strconv"
	"strings"
)

// Coord is a 0-based (row, col) grid coordinate.
type Coord struct {
	Row int
	Col int
}

// One or more letters, then a 1-based row number without a leading zero.
var cellAddressRegex = regexp.MustCompile(`^([A-Z]+)([1-9][0-9]*)$`)

// Column labels longer than this overflow int during decoding long before
// any realistic grid width is reached.
const maxColumnLetters = 7

// ColumnLabel converts a 0-based column index to its bijective base-26
// letter label: 0 -> "A", 25 -> "Z", 26 -> "AA", 702 -> "AAA".
func ColumnLabel(index int) string {
	letters := make([]byte, 0, 3)

	remaining := index + 1
	for remaining > 0 {
		remaining--
		letters = append(letters, byte('A'+remaining%26))
		remaining /= 26
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters)
}

// CellLabel is the canonical label for a coordinate: "A1" for (0, 0).
func CellLabel(row int, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}

// ParseAddress decodes a cell label (case-insensitive, e.g. "b3") into a
// 0-based coordinate. ok is false for malformed labels and for coordinates
// outside [0, maxRows) x [0, maxCols).
func ParseAddress(label string, maxRows int, maxCols int) (row int, col int, ok bool) {
	match := cellAddressRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(label)))
	if match == nil || len(match[1]) > maxColumnLetters {
		return 0, 0, false
	}

	col = 0
	for _, letter := range match[1] {
		col = col*26 + int(letter-'A') + 1
	}
	col--

	rowNumber, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, false
	}
	row = rowNumber - 1

	if row < 0 || row >= maxRows || col < 0 || col >= maxCols {
		return 0, 0, false
	}

	return row, col, true
}

// isCellRefText reports whether text has the shape of a single cell
// reference, regardless of grid bounds.
func isCellRefText(text string) bool {
	return cellAddressRegex.MatchString(strings.ToUpper(strings.TrimSpace(text)))
}

// ParseRange expands a range like "A1:C3" into the ordered row-major list
// of contained coordinates. The endpoints may come in any order ("C3:A1"
// covers the same rectangle). Anything malformed yields an empty list, not
// an error: a bad range is simply an empty operand set.
func ParseRange(rangeText string, maxRows int, maxCols int) []Coord {
	parts := strings.Split(rangeText, ":")
	if len(parts) != 2 {
		return nil
	}

	row1, col1, ok1 := ParseAddress(parts[0], maxRows, maxCols)
	row2, col2, ok2 := ParseAddress(parts[1], maxRows, maxCols)
	if !ok1 || !ok2 {
		return nil
	}

	if row2 < row1 {
		row1, row2 = row2, row1
	}
	if col2 < col1 {
		col1, col2 = col2, col1
	}

	coords := make([]Coord, 0, (row2-row1+1)*(col2-col1+1))
	for row := row1; row <= row2; row++ {
		for col := col1; col <= col2; col++ {
			coords = append(coords, Coord{Row: row, Col: col})
		}
	}

	return coords
}
