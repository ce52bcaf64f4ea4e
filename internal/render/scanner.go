// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package render

import (
	"fmt"
	"regexp"
	"strings"
)

// tagPattern matches a {{...}} expression in plain paragraph text.
var tagPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// identifierPattern matches a tag or variable name. Template authors write
// tags in their own language, so letters are not restricted to ASCII.
var identifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

// Operand is a term or filter argument: either a quoted literal, a numeric
// literal, or a context variable reference.
type Operand struct {
	// Name is the variable name when the operand is a reference.
	Name string
	// Literal is the resolved text when the operand is a literal.
	Literal string
	// IsLiteral distinguishes "value" and 42 from variable references.
	IsLiteral bool
}

// FilterCall is one step of an expression's filter chain.
type FilterCall struct {
	Name string
	Args []Operand
}

// Expression is a parsed {{ term | filter | filter(arg) }} chain.
type Expression struct {
	Raw     string
	Term    Operand
	Filters []FilterCall
}

// ParseExpression parses the text between {{ and }}.
//
// # Grammar
//
//	expression := term ( "|" filter )*
//	filter     := name [ "(" arg ( "," arg )* ")" ]
//	term, arg  := name | quoted string | number
func ParseExpression(inner string) (*Expression, error) {
	segments, err := splitOutsideQuotes(inner, '|')
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 || strings.TrimSpace(segments[0]) == "" {
		return nil, fmt.Errorf("render: empty expression")
	}

	term, err := parseOperand(strings.TrimSpace(segments[0]))
	if err != nil {
		return nil, err
	}

	expr := &Expression{Raw: inner, Term: term}
	for _, segment := range segments[1:] {
		call, err := parseFilterCall(strings.TrimSpace(segment))
		if err != nil {
			return nil, err
		}
		expr.Filters = append(expr.Filters, call)
	}

	return expr, nil
}

// Variables returns every context variable the expression references: the
// term itself plus any unquoted filter arguments.
func (e *Expression) Variables() []string {
	var names []string
	if !e.Term.IsLiteral {
		names = append(names, e.Term.Name)
	}
	for _, filter := range e.Filters {
		for _, arg := range filter.Args {
			if !arg.IsLiteral {
				names = append(names, arg.Name)
			}
		}
	}
	return names
}

// parseFilterCall parses "name" or "name(arg, arg)".
func parseFilterCall(segment string) (FilterCall, error) {
	open := strings.IndexByte(segment, '(')
	if open < 0 {
		if !identifierPattern.MatchString(segment) {
			return FilterCall{}, fmt.Errorf("render: invalid filter name %q", segment)
		}
		return FilterCall{Name: segment}, nil
	}

	if !strings.HasSuffix(segment, ")") {
		return FilterCall{}, fmt.Errorf("render: unterminated filter call %q", segment)
	}

	name := strings.TrimSpace(segment[:open])
	if !identifierPattern.MatchString(name) {
		return FilterCall{}, fmt.Errorf("render: invalid filter name %q", name)
	}

	call := FilterCall{Name: name}
	inside := segment[open+1 : len(segment)-1]
	if strings.TrimSpace(inside) == "" {
		return call, nil
	}

	rawArgs, err := splitOutsideQuotes(inside, ',')
	if err != nil {
		return FilterCall{}, err
	}
	for _, raw := range rawArgs {
		arg, err := parseOperand(strings.TrimSpace(raw))
		if err != nil {
			return FilterCall{}, err
		}
		call.Args = append(call.Args, arg)
	}

	return call, nil
}

// parseOperand classifies a trimmed token as literal or variable reference.
func parseOperand(token string) (Operand, error) {
	if token == "" {
		return Operand{}, fmt.Errorf("render: empty operand")
	}

	// Quoted string literal.
	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return Operand{Literal: token[1 : len(token)-1], IsLiteral: true}, nil
		}
	}

	// Numeric literal.
	if isNumeric(token) {
		return Operand{Literal: token, IsLiteral: true}, nil
	}

	if !identifierPattern.MatchString(token) {
		return Operand{}, fmt.Errorf("render: invalid operand %q", token)
	}
	return Operand{Name: token}, nil
}

// isNumeric reports whether the token is an integer or decimal literal.
func isNumeric(token string) bool {
	seenDigit := false
	for i, r := range token {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && i > 0:
		case r == '-' && i == 0:
		default:
			return false
		}
	}
	return seenDigit
}

// splitOutsideQuotes splits s on sep, ignoring separators inside single or
// double quoted regions.
func splitOutsideQuotes(s string, sep byte) ([]string, error) {
	var (
		parts []string
		start int
		quote byte
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("render: unterminated quote in %q", s)
	}

	parts = append(parts, s[start:])
	return parts, nil
}
