package expr

import (
	"strconv"
	"strings"

	"github.com/atma-editor/atma/internal/combinator"
)

// SelectionKind tags the four Selection shapes of spec §3.
type SelectionKind int

const (
	SelAll SelectionKind = iota
	SelSingle
	SelRange
	SelPositionPattern
)

// PatternComponent is one page/line/column slot of a position
// pattern: either a concrete value or the '*' wildcard.
type PatternComponent struct {
	Wildcard bool
	Value    uint32
}

func (p PatternComponent) String() string {
	if p.Wildcard {
		return "*"
	}
	return strconv.FormatUint(uint64(p.Value), 10)
}

// Selection is either every occupied cell, a single CellRef, an
// inclusive range of like CellRef variants, or a page/line/column
// pattern where any component may be the '*' wildcard.
type Selection struct {
	Kind SelectionKind

	Ref      CellRef // SelSingle
	From, To CellRef // SelRange

	Page, Line, Column PatternComponent // SelPositionPattern
}

func AllSelection() Selection { return Selection{Kind: SelAll} }

func SingleSelection(r CellRef) Selection { return Selection{Kind: SelSingle, Ref: r} }

func RangeSelection(from, to CellRef) Selection {
	return Selection{Kind: SelRange, From: from, To: to}
}

func (s Selection) String() string {
	switch s.Kind {
	case SelAll:
		return "*"
	case SelSingle:
		return s.Ref.String()
	case SelRange:
		return s.From.String() + "-" + s.To.String()
	case SelPositionPattern:
		return ":" + s.Page.String() + "." + s.Line.String() + "." + s.Column.String()
	default:
		return "<invalid-selection>"
	}
}

func patternComponent(input string) (combinator.Success[PatternComponent], *combinator.Failure) {
	if strings.HasPrefix(input, "*") {
		return combinator.Success[PatternComponent]{
			Value: PatternComponent{Wildcard: true},
			Token: combinator.Span{0, 1},
			Rest:  input[1:],
		}, nil
	}
	n, err := uint32Lit(input)
	if err != nil {
		return combinator.Success[PatternComponent]{}, &combinator.Failure{Expected: "'*' or integer", Source: err, Rest: input}
	}
	return combinator.Success[PatternComponent]{Value: PatternComponent{Value: n.Value}, Token: n.Token, Rest: n.Rest}, nil
}

func parsePositionPattern(input string) (combinator.Success[Selection], *combinator.Failure) {
	rest := input
	if strings.HasPrefix(rest, ":") {
		rest = rest[1:]
	}
	page, err := patternComponent(rest)
	if err != nil {
		return combinator.Success[Selection]{}, &combinator.Failure{Ctx: "position pattern", Expected: "page component", Source: err, Rest: input}
	}
	if !strings.HasPrefix(page.Rest, ".") {
		return combinator.Success[Selection]{}, &combinator.Failure{Ctx: "position pattern", Expected: "'.' after page", Rest: input}
	}
	line, err := patternComponent(page.Rest[1:])
	if err != nil {
		return combinator.Success[Selection]{}, &combinator.Failure{Ctx: "position pattern", Expected: "line component", Source: err, Rest: input}
	}
	if !strings.HasPrefix(line.Rest, ".") {
		return combinator.Success[Selection]{}, &combinator.Failure{Ctx: "position pattern", Expected: "'.' after line", Rest: input}
	}
	col, err := patternComponent(line.Rest[1:])
	if err != nil {
		return combinator.Success[Selection]{}, &combinator.Failure{Ctx: "position pattern", Expected: "column component", Source: err, Rest: input}
	}
	sel := Selection{Kind: SelPositionPattern, Page: page.Value, Line: line.Value, Column: col.Value}
	consumed := len(input) - len(col.Rest)
	return combinator.Success[Selection]{Value: sel, Token: combinator.Span{0, consumed}, Rest: col.Rest}, nil
}

// ParseSelection implements spec §4.2's Selection production:
//
//	Selection := '*' | ':*' | CellRef ('-' CellRef)? | PositionPattern
func ParseSelection(input string) (Selection, error) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest

	if rest == "*" || rest == ":*" {
		return AllSelection(), nil
	}

	if sel, err := parsePositionPattern(rest); err == nil {
		after, _ := combinator.Trivia(sel.Rest)
		if after.Rest == "" {
			return sel.Value, nil
		}
	}

	first, err := parseCellRef(rest)
	if err != nil {
		return Selection{}, toParseError("Selection", err)
	}
	afterFirst, _ := combinator.Trivia(first.Rest)
	if strings.HasPrefix(afterFirst.Rest, "-") {
		second, err := parseCellRef(afterFirst.Rest[1:])
		if err != nil {
			return Selection{}, toParseError("Selection", &combinator.Failure{Ctx: "range", Expected: "CellRef after '-'", Source: err, Rest: afterFirst.Rest})
		}
		if second.Value.Kind != first.Value.Kind {
			return Selection{}, toParseError("Selection", &combinator.Failure{Expected: "range endpoints of the same CellRef variant", Rest: afterFirst.Rest})
		}
		trailing, _ := combinator.Trivia(second.Rest)
		if trailing.Rest != "" {
			return Selection{}, toParseError("Selection", &combinator.Failure{Expected: "end of input", Rest: trailing.Rest})
		}
		return RangeSelection(first.Value, second.Value), nil
	}

	if afterFirst.Rest != "" {
		return Selection{}, toParseError("Selection", &combinator.Failure{Expected: "end of input", Rest: afterFirst.Rest})
	}
	return SingleSelection(first.Value), nil
}
