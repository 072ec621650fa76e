package main

import "strings"

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenIdentifier
	TokenOperator
	TokenComma
	TokenColon
	TokenLeftParen
	TokenRightParen
)

type Token struct {
	Kind TokenKind
	Text string
}

func isDigitChar(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetterChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Tokenize splits a formula body into tagged tokens. Identifiers (cell
// references and function names share the class) are upper-cased on
// capture. ok is false when the text contains a character outside the
// grammar or a numeric run that is not a valid number, e.g. "1.2.3".
func Tokenize(expression string) (tokens []Token, ok bool) {
	i := 0
	for i < len(expression) {
		c := expression[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			tokens = append(tokens, Token{TokenLeftParen, "("})
			i++

		case c == ')':
			tokens = append(tokens, Token{TokenRightParen, ")"})
			i++

		case c == ',':
			tokens = append(tokens, Token{TokenComma, ","})
			i++

		case c == ':':
			tokens = append(tokens, Token{TokenColon, ":"})
			i++

		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, Token{TokenOperator, string(c)})
			i++

		case isDigitChar(c) || c == '.':
			start := i
			for i < len(expression) && (isDigitChar(expression[i]) || expression[i] == '.') {
				i++
			}
			text := expression[start:i]
			if !IsNumeric(text) {
				return nil, false
			}
			tokens = append(tokens, Token{TokenNumber, text})

		case isLetterChar(c):
			start := i
			i++
			for i < len(expression) && (isLetterChar(expression[i]) || isDigitChar(expression[i])) {
				i++
			}
			tokens = append(tokens, Token{TokenIdentifier, strings.ToUpper(expression[start:i])})

		default:
			return nil, false
		}
	}

	return tokens, true
}
