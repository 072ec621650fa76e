package contracts

// Grid is a rectangular row-major snapshot of raw cell values. The formula
// engine only ever reads it; empty string means an empty cell.
type Grid [][]string

func NewGrid(rows int, cols int) Grid {
	grid := make(Grid, rows)
	for row := range grid {
		grid[row] = make([]string, cols)
	}
	return grid
}

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Value returns the raw text at (row, col), or "" when the coordinate is
// outside the grid.
func (g Grid) Value(row int, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}
