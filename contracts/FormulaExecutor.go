package contracts

// FormulaExecutor evaluates one cell's raw text against a grid snapshot.
// The result is always a plain string: decimal numeric text, an error
// sentinel beginning with "#", or the raw text itself when the input is
// not a formula. Evaluation never mutates the grid.
type FormulaExecutor interface {
	Evaluate(formula string, grid Grid, row int, col int) string
	IsFormula(value string) bool

	// ExtractReferences lists the cell labels a formula reads, ranges
	// expanded, for dependency tracking. Non-formulas yield nothing.
	ExtractReferences(formula string, maxRows int, maxCols int) []string
}
