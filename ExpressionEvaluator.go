package main

import (
	"strings"

	"runwayGridExcel/contracts"
)

// expressionParser is a recursive-descent evaluator over a token sequence.
// Every intermediate value is carried as text: decimal numeric strings and
// "#" sentinels share one channel, and applyOp re-propagates sentinels the
// way a number would flow.
//
// Grammar, loosest binding first:
//
//	expression := term (('+' | '-') term)*
//	term       := unary (('*' | '/') unary)*
//	unary      := ('+' | '-') unary | primary
//	primary    := '(' expression ')' | functionCall | reference | number
type expressionParser struct {
	tokens   []Token
	pos      int
	grid     contracts.Grid
	executor *FormulaExecutor
	ctx      *EvalContext
}

func (p *expressionParser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *expressionParser) next() (Token, bool) {
	token, ok := p.peek()
	if ok {
		p.pos++
	}
	return token, ok
}

func (p *expressionParser) parseExpression() string {
	left := p.parseTerm()

	for {
		token, ok := p.peek()
		if !ok || token.Kind != TokenOperator || (token.Text != "+" && token.Text != "-") {
			return left
		}
		p.pos++
		left = applyOp(left, p.parseTerm(), token.Text)
	}
}

func (p *expressionParser) parseTerm() string {
	left := p.parseUnary()

	for {
		token, ok := p.peek()
		if !ok || token.Kind != TokenOperator || (token.Text != "*" && token.Text != "/") {
			return left
		}
		p.pos++
		left = applyOp(left, p.parseUnary(), token.Text)
	}
}

func (p *expressionParser) parseUnary() string {
	token, ok := p.peek()
	if ok && token.Kind == TokenOperator && (token.Text == "+" || token.Text == "-") {
		p.pos++

		operand := p.parseUnary()
		if isErrorSentinel(operand) {
			return operand
		}
		if !IsNumeric(operand) {
			return ErrorValueSentinel
		}
		if token.Text == "-" {
			return formatNumber(-parseNumber(operand))
		}
		return formatNumber(parseNumber(operand))
	}

	return p.parsePrimary()
}

func (p *expressionParser) parsePrimary() string {
	token, ok := p.next()
	if !ok {
		return ErrorSentinel
	}

	switch token.Kind {
	case TokenLeftParen:
		value := p.parseExpression()
		closing, ok := p.next()
		if !ok || closing.Kind != TokenRightParen {
			return ErrorSentinel
		}
		return value

	case TokenNumber:
		return token.Text

	case TokenIdentifier:
		if following, ok := p.peek(); ok && following.Kind == TokenLeftParen {
			return p.parseFunctionCall(token.Text)
		}
		return p.resolveReference(token.Text)

	default:
		return ErrorSentinel
	}
}

// parseFunctionCall consumes the balanced parenthesized span after a
// function name, reassembles each depth-1 comma-separated slice of it back
// into argument text, and hands the call to the aggregate evaluator. The
// aggregate resolves its own references and ranges from the raw grid; it
// does not receive pre-evaluated operands.
func (p *expressionParser) parseFunctionCall(name string) string {
	p.pos++ // consume '('

	depth := 1
	args := make([]string, 0, 4)
	var current strings.Builder

	for depth > 0 {
		token, ok := p.next()
		if !ok {
			return ErrorSentinel
		}

		switch {
		case token.Kind == TokenLeftParen:
			depth++
			current.WriteString(token.Text)

		case token.Kind == TokenRightParen:
			depth--
			if depth > 0 {
				current.WriteString(token.Text)
			}

		case token.Kind == TokenComma && depth == 1:
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()

		default:
			current.WriteString(token.Text)
		}
	}

	last := strings.TrimSpace(current.String())
	if len(args) == 0 && last == "" {
		return EvaluateAggregate(name, nil, p.grid)
	}

	return EvaluateAggregate(name, append(args, last), p.grid)
}

// resolveReference turns a reference token into a value. A referenced cell
// holding a formula is evaluated recursively with the shared context, so a
// reference back into the active call stack surfaces as #CYCLE.
func (p *expressionParser) resolveReference(identifier string) string {
	row, col, ok := ParseAddress(identifier, p.grid.Rows(), p.grid.Cols())
	if !ok {
		return ErrorRefSentinel
	}

	raw := p.grid.Value(row, col)
	if strings.HasPrefix(strings.TrimSpace(raw), FormulaPrefix) {
		return p.executor.evaluateInContext(raw, p.grid, row, col, p.ctx)
	}
	return raw
}

// applyOp applies a binary arithmetic operator to two text operands.
// Sentinel operands propagate unchanged, left before right; non-numeric
// operands are a value error; division by exactly zero is a DIV0.
func applyOp(left string, right string, op string) string {
	if isErrorSentinel(left) {
		return left
	}
	if isErrorSentinel(right) {
		return right
	}
	if !IsNumeric(left) || !IsNumeric(right) {
		return ErrorValueSentinel
	}

	a := parseNumber(left)
	b := parseNumber(right)

	switch op {
	case "+":
		return formatNumber(a + b)
	case "-":
		return formatNumber(a - b)
	case "*":
		return formatNumber(a * b)
	case "/":
		if b == 0 {
			return ErrorDiv0Sentinel
		}
		return formatNumber(a / b)
	}

	return ErrorSentinel
}
