// Package expr implements the Atma expression grammar: CellRef,
// Selection, InsertExpr, Interpolate and InterpolateRange, together
// with their parser built on package combinator.
package expr

import (
	"fmt"
	"strings"

	"github.com/atma-editor/atma/internal/combinator"
)

// RefKind tags the four CellRef variants of spec §3.
type RefKind int

const (
	RefIndex RefKind = iota
	RefName
	RefGroup
	RefPosition
)

// CellRef is a symbolic reference to a palette index: an index, a
// name, a name+position-in-group pair, or a page/line/column
// position.
type CellRef struct {
	Kind RefKind

	Index uint32 // RefIndex

	Name string // RefName, RefGroup
	Pos  uint32 // RefGroup

	Page, Line, Column uint32 // RefPosition
}

func IndexRef(i uint32) CellRef    { return CellRef{Kind: RefIndex, Index: i} }
func NameRef(n string) CellRef     { return CellRef{Kind: RefName, Name: n} }
func GroupRef(n string, k uint32) CellRef {
	return CellRef{Kind: RefGroup, Name: n, Pos: k}
}
func PositionRef(page, line, col uint32) CellRef {
	return CellRef{Kind: RefPosition, Page: page, Line: line, Column: col}
}

// String formats the CellRef in its canonical surface syntax, the
// form the parser accepts back unchanged (spec §8 property 6).
func (r CellRef) String() string {
	switch r.Kind {
	case RefIndex:
		return fmt.Sprintf(":%d", r.Index)
	case RefName:
		return r.Name
	case RefGroup:
		return fmt.Sprintf("%s:%d", r.Name, r.Pos)
	case RefPosition:
		return fmt.Sprintf(":%d.%d.%d", r.Page, r.Line, r.Column)
	default:
		return "<invalid-ref>"
	}
}

func (r CellRef) Equal(o CellRef) bool {
	return r == o
}

// isNameChar reports whether c may appear in a bare Name token: any
// character except the grammar's reserved punctuation and whitespace.
func isNameChar(c byte) bool {
	switch c {
	case ':', ',', '-', '.', '*', ' ', '\t', '\r', '\n', '(', ')':
		return false
	default:
		return true
	}
}

func bareName(input string) (combinator.Success[string], *combinator.Failure) {
	i := 0
	for i < len(input) && isNameChar(input[i]) {
		i++
	}
	if i == 0 {
		return combinator.Success[string]{}, &combinator.Failure{Expected: "name", Rest: input}
	}
	return combinator.Success[string]{Value: input[:i], Token: combinator.Span{0, i}, Rest: input[i:]}, nil
}

func uint32Lit(input string) (combinator.Success[uint32], *combinator.Failure) {
	s, err := combinator.Uint(input)
	if err != nil {
		return combinator.Success[uint32]{}, err
	}
	if s.Value > 1<<32-1 {
		return combinator.Success[uint32]{}, &combinator.Failure{Expected: "value that fits in 32 bits", Rest: input}
	}
	return combinator.Success[uint32]{Value: uint32(s.Value), Token: s.Token, Rest: s.Rest}, nil
}

// parseCellRef implements the CellRef production of spec §4.2:
//
//	CellRef := ':' Uint                   # Index
//	         | ':' Uint '.' Uint '.' Uint  # Position
//	         | Name ':' Uint               # Group
//	         | Name                        # Name
func parseCellRef(input string) (combinator.Success[CellRef], *combinator.Failure) {
	if strings.HasPrefix(input, ":") {
		rest := input[1:]
		n1, err := uint32Lit(rest)
		if err != nil {
			return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "integer after ':'", Source: err, Rest: input}
		}
		if strings.HasPrefix(n1.Rest, ".") {
			line, err := uint32Lit(n1.Rest[1:])
			if err != nil {
				return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "line after '.'", Source: err, Rest: input}
			}
			if !strings.HasPrefix(line.Rest, ".") {
				return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "'.' before column", Rest: input}
			}
			col, err := uint32Lit(line.Rest[1:])
			if err != nil {
				return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "column after '.'", Source: err, Rest: input}
			}
			ref := PositionRef(n1.Value, line.Value, col.Value)
			consumed := len(input) - len(col.Rest)
			return combinator.Success[CellRef]{Value: ref, Token: combinator.Span{0, consumed}, Rest: col.Rest}, nil
		}
		ref := IndexRef(n1.Value)
		consumed := len(input) - len(n1.Rest)
		return combinator.Success[CellRef]{Value: ref, Token: combinator.Span{0, consumed}, Rest: n1.Rest}, nil
	}

	name, err := bareName(input)
	if err != nil {
		return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "name, ':index' or ':page.line.col'", Source: err, Rest: input}
	}
	if strings.HasPrefix(name.Rest, ":") {
		k, err := uint32Lit(name.Rest[1:])
		if err != nil {
			return combinator.Success[CellRef]{}, &combinator.Failure{Ctx: "CellRef", Expected: "group position after ':'", Source: err, Rest: input}
		}
		ref := GroupRef(name.Value, k.Value)
		consumed := len(input) - len(k.Rest)
		return combinator.Success[CellRef]{Value: ref, Token: combinator.Span{0, consumed}, Rest: k.Rest}, nil
	}
	ref := NameRef(name.Value)
	return combinator.Success[CellRef]{Value: ref, Token: name.Token, Rest: name.Rest}, nil
}

// ParseCellRef parses a single CellRef, failing if trailing input
// remains after skipping trivia.
func ParseCellRef(input string) (CellRef, error) {
	s, err := parseCellRef(input)
	if err != nil {
		return CellRef{}, toParseError("CellRef", err)
	}
	trailing, _ := combinator.Trivia(s.Rest)
	if trailing.Rest != "" {
		return CellRef{}, toParseError("CellRef", &combinator.Failure{Expected: "end of input", Rest: trailing.Rest})
	}
	return s.Value, nil
}
