package main

import (
	"regexp"
	"strings"

	"runwayGridExcel/contracts"
)

const FormulaPrefix = "="

// BurnRateMarker is a reserved formula body. The engine returns an inert
// empty result for it; the presentation layer owns the actual effect.
const BurnRateMarker = "BURNRATE()"

const BurnRateEffect = "burnrate"

// Error sentinels. Evaluation failures are ordinary string values that flow
// through arithmetic, never Go errors crossing the evaluation boundary.
const (
	ErrorSentinel      = "#ERROR"
	ErrorRefSentinel   = "#ERROR:REF"
	ErrorValueSentinel = "#ERROR:VALUE"
	ErrorDiv0Sentinel  = "#ERROR:DIV0"
	ErrorArgsSentinel  = "#ERROR:ARGS"
	ErrorFuncSentinel  = "#ERROR:FUNC"
	CycleSentinel      = "#CYCLE"
)

func isErrorSentinel(value string) bool {
	return strings.HasPrefix(value, "#")
}

// An identifier immediately followed by a parenthesized span that may close
// the whole body. Balance is verified separately.
var functionCallRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)\((.*)\)$`)

// EvalContext is the per-top-level-evaluation state: the set of cell keys
// currently suspended on the call stack. A key present here means an
// ancestor call for that cell has not returned yet, so re-entering it is a
// cycle. The context is created once per outer Evaluate call and threaded
// by reference through every recursive step.
type EvalContext struct {
	visiting map[string]bool
}

func NewEvalContext() *EvalContext {
	return &EvalContext{visiting: map[string]bool{}}
}

type FormulaExecutor struct{}

func NewFormulaExecutor() *FormulaExecutor {
	return &FormulaExecutor{}
}

func (e *FormulaExecutor) IsFormula(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), FormulaPrefix)
}

// IsBurnRateMarker reports whether raw is the reserved presentation-effect
// formula.
func IsBurnRateMarker(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, FormulaPrefix) {
		return false
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, FormulaPrefix))
	return strings.EqualFold(body, BurnRateMarker)
}

// Evaluate computes the display value of one cell's raw text against a grid
// snapshot. Non-formulas come back verbatim. The result is either decimal
// numeric text, an empty string, or a "#" error sentinel.
func (e *FormulaExecutor) Evaluate(formula string, grid contracts.Grid, row int, col int) string {
	return e.evaluateInContext(formula, grid, row, col, NewEvalContext())
}

func (e *FormulaExecutor) evaluateInContext(raw string, grid contracts.Grid, row int, col int, ctx *EvalContext) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, FormulaPrefix) {
		return raw
	}

	key := CellLabel(row, col)
	if ctx.visiting[key] {
		return CycleSentinel
	}
	ctx.visiting[key] = true
	defer delete(ctx.visiting, key)

	body := strings.TrimSpace(strings.TrimPrefix(trimmed, FormulaPrefix))
	if body == "" {
		return ""
	}
	if strings.EqualFold(body, BurnRateMarker) {
		return ""
	}

	if name, args, isCall := splitFunctionCall(body); isCall {
		return EvaluateAggregate(name, args, grid)
	}

	tokens, ok := Tokenize(body)
	if !ok {
		return ErrorSentinel
	}

	parser := &expressionParser{tokens: tokens, grid: grid, executor: e, ctx: ctx}
	result := parser.parseExpression()
	if parser.pos != len(parser.tokens) {
		return ErrorSentinel
	}
	return result
}

// ExtractReferences lists the distinct cell labels a formula reads, with
// ranges expanded, in first-seen order. Used by the dependency index to
// know which cells to re-announce when one changes.
func (e *FormulaExecutor) ExtractReferences(formula string, maxRows int, maxCols int) []string {
	if !e.IsFormula(formula) {
		return nil
	}

	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(formula), FormulaPrefix))
	tokens, ok := Tokenize(body)
	if !ok {
		return nil
	}

	seen := map[string]bool{}
	refs := make([]string, 0)
	add := func(row, col int) {
		label := CellLabel(row, col)
		if !seen[label] {
			seen[label] = true
			refs = append(refs, label)
		}
	}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token.Kind != TokenIdentifier {
			continue
		}

		// function name, not a reference
		if i+1 < len(tokens) && tokens[i+1].Kind == TokenLeftParen {
			continue
		}

		if i+2 < len(tokens) && tokens[i+1].Kind == TokenColon && tokens[i+2].Kind == TokenIdentifier {
			for _, coord := range ParseRange(token.Text+":"+tokens[i+2].Text, maxRows, maxCols) {
				add(coord.Row, coord.Col)
			}
			i += 2
			continue
		}

		if row, col, ok := ParseAddress(token.Text, maxRows, maxCols); ok {
			add(row, col)
		}
	}

	return refs
}

// splitFunctionCall matches a body that is exactly one function call, e.g.
// "SUM(A1:A4, 5)". The opening parenthesis must close at the very end of
// the body, otherwise the body is a general expression ("SUM(1)+SUM(2)").
func splitFunctionCall(body string) (name string, args []string, ok bool) {
	match := functionCallRegex.FindStringSubmatch(body)
	if match == nil {
		return "", nil, false
	}

	inner := match[2]
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", nil, false
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}

	return strings.ToUpper(match[1]), splitTopLevelArgs(inner), true
}

// splitTopLevelArgs splits an argument span on depth-0 commas, trimming
// each piece. A blank span is zero arguments, so "SUM()" reaches the
// aggregate evaluator with no operands at all.
func splitTopLevelArgs(span string) []string {
	if strings.TrimSpace(span) == "" {
		return nil
	}

	args := make([]string, 0, 4)
	depth, start := 0, 0
	for i := 0; i < len(span); i++ {
		switch span[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(span[start:i]))
				start = i + 1
			}
		}
	}

	return append(args, strings.TrimSpace(span[start:]))
}
