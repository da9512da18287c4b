// Package notation parses Conway polyhedron notation and composes the
// resulting operator chains. A notation string reads right to left: the
// rightmost element is the seed (or innermost operator), so "dkC" means
// Dual(Kis(Cube)).
package notation

import (
	"fmt"

	"github.com/chazu/polyhedrator/pkg/operator"
	"github.com/chazu/polyhedrator/pkg/seed"
)

// UnknownOperatorError reports a letter that names no operator.
type UnknownOperatorError struct {
	Letter   byte
	Position int
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q at position %d", string(e.Letter), e.Position)
}

// SyntaxError reports malformed notation, such as digits that do not follow
// a k operator.
type SyntaxError struct {
	Position int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}

// Chain is a parsed operator chain in source order (left to right), with the
// byte position of each operator's letter kept for error reporting.
type Chain struct {
	Ops       []operator.Operator
	Positions []int
}

// String renders the chain back into notation.
func (c Chain) String() string {
	s := ""
	for _, op := range c.Ops {
		s += op.String()
	}
	return s
}

// ParseOperators tokenizes a string of operator letters (d, a, k with an
// optional digit parameter) in a single left-to-right pass. The seed is
// expected to be chosen separately; use Parse for full notation with a
// trailing seed letter.
func ParseOperators(s string) (Chain, error) {
	chain, rest, err := scanOperators(s, len(s))
	if err != nil {
		return Chain{}, err
	}
	if rest != len(s) {
		return Chain{}, &UnknownOperatorError{Letter: s[rest], Position: rest}
	}
	return chain, nil
}

// Parse tokenizes full notation: operator letters followed by a trailing
// seed letter (T, C, O, D or I). The seed letter is the rightmost element,
// matching the right-to-left reading of the notation.
func Parse(s string) (seed.Solid, Chain, error) {
	if len(s) == 0 {
		return 0, Chain{}, &SyntaxError{Position: 0, Message: "empty notation"}
	}

	chain, rest, err := scanOperators(s, len(s)-1)
	if err != nil {
		return 0, chain, err
	}
	if rest != len(s)-1 {
		return 0, chain, &UnknownOperatorError{Letter: s[rest], Position: rest}
	}

	// Seed letters are uppercase; a trailing lowercase letter would be an
	// operator with no seed to apply it to.
	last := s[len(s)-1]
	var solid seed.Solid
	if last >= 'A' && last <= 'Z' {
		solid, err = seed.Parse(string(last))
	} else {
		err = &seed.UnknownSeedError{Name: string(last)}
	}
	if err != nil {
		return 0, chain, &SyntaxError{
			Position: len(s) - 1,
			Message:  fmt.Sprintf("expected seed letter (T, C, O, D, I), got %q", string(s[len(s)-1])),
		}
	}
	return solid, chain, nil
}

// scanOperators consumes operator tokens from s[:limit] and returns the
// chain plus the offset where scanning stopped (limit on full success, the
// offending byte otherwise).
func scanOperators(s string, limit int) (Chain, int, error) {
	var chain Chain
	i := 0
	for i < limit {
		pos := i
		switch c := s[i]; c {
		case 'd':
			chain.append(operator.Dual(), pos)
			i++
		case 'a':
			chain.append(operator.Ambo(), pos)
			i++
		case 'k':
			i++
			sides := 0
			for i < limit && isDigit(s[i]) {
				sides = sides*10 + int(s[i]-'0')
				i++
			}
			chain.append(operator.Kis(sides), pos)
		default:
			if isDigit(c) {
				return chain, pos, &SyntaxError{
					Position: pos,
					Message:  "digits are only valid immediately after k",
				}
			}
			return chain, pos, nil
		}
	}
	return chain, i, nil
}

func (c *Chain) append(op operator.Operator, pos int) {
	c.Ops = append(c.Ops, op)
	c.Positions = append(c.Positions, pos)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
