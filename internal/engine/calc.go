package engine

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	calcPrefixRegex = regexp.MustCompile(`(?i)\b(calculate|what is)\b`)
	calcValidRegex  = regexp.MustCompile(`^[\s0-9+\-*/.()]+$`)

	errDivideByZero = errors.New("division by zero")
	errBadExpr      = errors.New("invalid expression")
)

// Calculate evaluates an arithmetic command and renders the result (or the
// failure) as text. Only numeric literals, + - * /, and parentheses are
// accepted. Division always yields a decimal result, matching how the
// assistant has historically read results aloud.
func Calculate(command string) string {
	expr := strings.TrimSpace(calcPrefixRegex.ReplaceAllString(command, ""))
	if expr == "" || !calcValidRegex.MatchString(expr) {
		return "Invalid mathematical expression"
	}

	p := &exprParser{input: expr}
	value, isFloat, err := p.parseExpr()
	if err == nil {
		p.skipSpaces()
		if p.pos != len(p.input) {
			err = errBadExpr
		}
	}
	if err != nil {
		if errors.Is(err, errDivideByZero) {
			return "Error: Division by zero"
		}
		return "Invalid mathematical expression"
	}

	return formatNumber(value, isFloat)
}

// formatNumber renders value; float results keep at least one decimal place
// so "4 / 2" reads as 2.0 rather than 2.
func formatNumber(value float64, isFloat bool) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if isFloat && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// exprParser is a recursive-descent parser over the validated expression.
// Grammar: expr = term {("+"|"-") term}; term = unary {("*"|"/") unary};
// unary = {"+"|"-"} primary; primary = number | "(" expr ")".
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, bool, error) {
	value, isFloat, err := p.parseTerm()
	if err != nil {
		return 0, false, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, rhsFloat, err := p.parseTerm()
			if err != nil {
				return 0, false, err
			}
			value += rhs
			isFloat = isFloat || rhsFloat
		case '-':
			p.pos++
			rhs, rhsFloat, err := p.parseTerm()
			if err != nil {
				return 0, false, err
			}
			value -= rhs
			isFloat = isFloat || rhsFloat
		default:
			return value, isFloat, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, bool, error) {
	value, isFloat, err := p.parseUnary()
	if err != nil {
		return 0, false, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, rhsFloat, err := p.parseUnary()
			if err != nil {
				return 0, false, err
			}
			value *= rhs
			isFloat = isFloat || rhsFloat
		case '/':
			p.pos++
			rhs, _, err := p.parseUnary()
			if err != nil {
				return 0, false, err
			}
			if rhs == 0 {
				return 0, false, errDivideByZero
			}
			value /= rhs
			isFloat = true
		default:
			return value, isFloat, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, bool, error) {
	negate := false
	for {
		switch p.peek() {
		case '+':
			p.pos++
		case '-':
			p.pos++
			negate = !negate
		default:
			value, isFloat, err := p.parsePrimary()
			if err != nil {
				return 0, false, err
			}
			if negate {
				value = -value
			}
			return value, isFloat, nil
		}
	}
}

func (p *exprParser) parsePrimary() (float64, bool, error) {
	if p.peek() == '(' {
		p.pos++
		value, isFloat, err := p.parseExpr()
		if err != nil {
			return 0, false, err
		}
		if p.peek() != ')' {
			return 0, false, errBadExpr
		}
		p.pos++
		return value, isFloat, nil
	}

	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, false, errBadExpr
	}

	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, false, errBadExpr
	}
	return value, seenDot, nil
}
