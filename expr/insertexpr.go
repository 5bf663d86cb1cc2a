package expr

import (
	"fmt"
	"strings"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/internal/combinator"
)

// ExprKind tags the seven InsertExpr shapes of spec §3.
type ExprKind int

const (
	ExprEmpty ExprKind = iota
	ExprColor
	ExprRef
	ExprCopy
	ExprUnary
	ExprBinary
	ExprRamp
)

var unaryOps = map[string]bool{
	"lighten": true, "darken": true, "saturate": true, "desaturate": true, "hue": true,
}

var binaryOps = map[string]bool{
	"blend": true, "multiply": true, "screen": true,
}

// InsertExpr is the algebraic expression stored in a Cell, per spec
// §3.
type InsertExpr struct {
	Kind ExprKind

	ColorLit color.Color // ExprColor
	Ref      CellRef     // ExprRef, ExprCopy

	Op          string      // ExprUnary, ExprBinary
	TargetA     CellRef     // ExprUnary (the single CellRef), ExprBinary (first operand)
	TargetB     CellRef     // ExprBinary (second operand)
	Value       float64     // ExprUnary
	Interp      Interpolate // ExprUnary, ExprBinary
	Space       color.Space // ExprBinary
	HasSpace    bool        // true if an explicit trailing Space argument was given

	RampCount  uint32            // ExprRamp
	RampBinary *InsertExpr       // ExprRamp: the Binary template
	RampRange  InterpolateRange  // ExprRamp
}

func EmptyExpr() InsertExpr                  { return InsertExpr{Kind: ExprEmpty} }
func ColorExpr(c color.Color) InsertExpr     { return InsertExpr{Kind: ExprColor, ColorLit: c} }
func RefExpr(r CellRef) InsertExpr           { return InsertExpr{Kind: ExprRef, Ref: r} }
func CopyExpr(r CellRef) InsertExpr          { return InsertExpr{Kind: ExprCopy, Ref: r} }

// Equal reports whether two expressions are structurally identical,
// used by round-trip tests (spec §8 property 5).
func (e InsertExpr) Equal(o InsertExpr) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ExprEmpty:
		return true
	case ExprColor:
		return e.ColorLit.Equal(o.ColorLit)
	case ExprRef, ExprCopy:
		return e.Ref.Equal(o.Ref)
	case ExprUnary:
		return e.Op == o.Op && e.TargetA.Equal(o.TargetA) && e.Value == o.Value && e.Interp == o.Interp
	case ExprBinary:
		return e.Op == o.Op && e.TargetA.Equal(o.TargetA) && e.TargetB.Equal(o.TargetB) &&
			e.Interp == o.Interp && e.HasSpace == o.HasSpace && e.Space == o.Space
	case ExprRamp:
		if e.RampCount != o.RampCount || e.RampRange != o.RampRange {
			return false
		}
		if (e.RampBinary == nil) != (o.RampBinary == nil) {
			return false
		}
		if e.RampBinary == nil {
			return true
		}
		return e.RampBinary.Equal(*o.RampBinary)
	default:
		return false
	}
}

// String formats the expression in the canonical surface syntax, the
// form the parser accepts back unchanged (spec §8 property 5).
func (e InsertExpr) String() string {
	switch e.Kind {
	case ExprEmpty:
		return "empty"
	case ExprColor:
		return e.ColorLit.Hex()
	case ExprRef:
		return e.Ref.String()
	case ExprCopy:
		return fmt.Sprintf("copy(%s)", e.Ref.String())
	case ExprUnary:
		return fmt.Sprintf("%s(%s, %s, %s)", e.Op, e.TargetA.String(), formatFloat(e.Value), e.Interp.String())
	case ExprBinary:
		s := fmt.Sprintf("%s(%s, %s, %s", e.Op, e.TargetA.String(), e.TargetB.String(), e.Interp.String())
		if e.HasSpace {
			s += ", " + e.Space.String()
		}
		return s + ")"
	case ExprRamp:
		return fmt.Sprintf("ramp(%d, %s, %s)", e.RampCount, e.RampBinary.String(), e.RampRange.String())
	default:
		return "<invalid-expr>"
	}
}

// toParseError adapts a combinator.Failure into the domain
// atmaerr.ParseError, wrapped with a stack per spec §7.
func toParseError(context string, f *combinator.Failure) error {
	return atmaerr.Wrap(&atmaerr.ParseError{Context: context, Expected: f.Expected, Rest: f.Rest})
}

// Parse implements the top-level InsertExpr production of spec §4.2.
func Parse(input string) (InsertExpr, error) {
	s, err := parseInsertExpr(input)
	if err != nil {
		return InsertExpr{}, toParseError("InsertExpr", err)
	}
	trailing, _ := combinator.Trivia(s.Rest)
	if trailing.Rest != "" {
		return InsertExpr{}, toParseError("InsertExpr", &combinator.Failure{Expected: "end of input", Rest: trailing.Rest})
	}
	return s.Value, nil
}

func parseInsertExpr(input string) (combinator.Success[InsertExpr], *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest

	if c, cerr := parseColorLiteral(rest); cerr == nil {
		return combinator.Success[InsertExpr]{Value: ColorExpr(c.Value), Token: c.Token, Rest: c.Rest}, nil
	}

	if s, kerr := combinator.Keyword("copy")(rest); kerr == nil {
		afterKw, _ := combinator.Trivia(s.Rest)
		if strings.HasPrefix(afterKw.Rest, "(") {
			inner, _ := combinator.Trivia(afterKw.Rest[1:])
			ref, rerr := parseCellRef(inner.Rest)
			if rerr != nil {
				return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "copy(...)", Expected: "CellRef", Source: rerr, Rest: input}
			}
			closeRest, cerr := expectClose(ref.Rest)
			if cerr != nil {
				return combinator.Success[InsertExpr]{}, cerr
			}
			consumed := len(input) - len(closeRest)
			return combinator.Success[InsertExpr]{Value: CopyExpr(ref.Value), Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
		}
	}

	if s, kerr := combinator.Keyword("ramp")(rest); kerr == nil {
		afterKw, _ := combinator.Trivia(s.Rest)
		if strings.HasPrefix(afterKw.Rest, "(") {
			return parseRamp(input, afterKw.Rest[1:])
		}
	}

	for op := range unaryOps {
		if s, kerr := combinator.Keyword(op)(rest); kerr == nil {
			afterKw, _ := combinator.Trivia(s.Rest)
			if strings.HasPrefix(afterKw.Rest, "(") {
				return parseUnary(input, op, afterKw.Rest[1:])
			}
		}
	}

	for op := range binaryOps {
		if s, kerr := combinator.Keyword(op)(rest); kerr == nil {
			afterKw, _ := combinator.Trivia(s.Rest)
			if strings.HasPrefix(afterKw.Rest, "(") {
				return parseBinary(input, op, afterKw.Rest[1:])
			}
		}
	}

	if strings.HasPrefix(rest, "(") {
		inner, _ := combinator.Trivia(rest[1:])
		ref, rerr := parseCellRef(inner.Rest)
		if rerr == nil {
			closeRest, cerr := expectClose(ref.Rest)
			if cerr == nil {
				consumed := len(input) - len(closeRest)
				return combinator.Success[InsertExpr]{Value: RefExpr(ref.Value), Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
			}
		}
	}

	ref, rerr := parseCellRef(rest)
	if rerr != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "InsertExpr", Expected: "color literal, CellRef, copy(...), unary/binary call, or ramp(...)", Source: rerr, Rest: input}
	}
	consumed := len(input) - len(ref.Rest)
	return combinator.Success[InsertExpr]{Value: RefExpr(ref.Value), Token: combinator.Span{0, consumed}, Rest: ref.Rest}, nil
}

// expectClose skips trivia and consumes a single ')'.
func expectClose(input string) (string, *combinator.Failure) {
	t, _ := combinator.Trivia(input)
	if !strings.HasPrefix(t.Rest, ")") {
		return "", &combinator.Failure{Expected: "')'", Rest: input}
	}
	return t.Rest[1:], nil
}

func expectComma(input string) (string, *combinator.Failure) {
	t, _ := combinator.Trivia(input)
	if !strings.HasPrefix(t.Rest, ",") {
		return "", &combinator.Failure{Expected: "','", Rest: input}
	}
	return t.Rest[1:], nil
}

// parseUnary parses "CellRef, Value (, Interpolate)?" after the
// opening '(' for op has already been consumed.
func parseUnary(fullInput string, op string, input string) (combinator.Success[InsertExpr], *combinator.Failure) {
	t, _ := combinator.Trivia(input)
	ref, err := parseCellRef(t.Rest)
	if err != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: op + "(...)", Expected: "CellRef", Source: err, Rest: fullInput}
	}
	rest, err := expectComma(ref.Rest)
	if err != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: op + "(...)", Expected: "','", Source: err, Rest: fullInput}
	}
	t, _ = combinator.Trivia(rest)
	val, err := combinator.Float(t.Rest)
	if err != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: op + "(...)", Expected: "numeric value", Source: err, Rest: fullInput}
	}
	rest = val.Rest

	interp := ConstInterpolate(1.0)
	t, _ = combinator.Trivia(rest)
	if strings.HasPrefix(t.Rest, ",") {
		afterComma, _ := combinator.Trivia(t.Rest[1:])
		ip, ierr := parseInterpolate(afterComma.Rest)
		if ierr != nil {
			return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: op + "(...)", Expected: "Interpolate", Source: ierr, Rest: fullInput}
		}
		interp = ip.Value
		rest = ip.Rest
	}

	closeRest, cerr := expectClose(rest)
	if cerr != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: op + "(...)", Expected: "')'", Rest: fullInput}
	}
	e := InsertExpr{Kind: ExprUnary, Op: op, TargetA: ref.Value, Value: val.Value, Interp: interp}
	consumed := len(fullInput) - len(closeRest)
	return combinator.Success[InsertExpr]{Value: e, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
}

// parseBinary parses "CellRef, CellRef (, Interpolate)? (, Space)?"
// after the opening '(' for op has already been consumed.
func parseBinary(fullInput string, op string, input string) (combinator.Success[InsertExpr], *combinator.Failure) {
	e, rest, err := parseBinaryArgs(fullInput, op, input)
	if err != nil {
		return combinator.Success[InsertExpr]{}, err
	}
	consumed := len(fullInput) - len(rest)
	return combinator.Success[InsertExpr]{Value: e, Token: combinator.Span{0, consumed}, Rest: rest}, nil
}

func parseBinaryArgs(fullInput string, op string, input string) (InsertExpr, string, *combinator.Failure) {
	t, _ := combinator.Trivia(input)
	a, err := parseCellRef(t.Rest)
	if err != nil {
		return InsertExpr{}, "", &combinator.Failure{Ctx: op + "(...)", Expected: "first CellRef", Source: err, Rest: fullInput}
	}
	rest, err := expectComma(a.Rest)
	if err != nil {
		return InsertExpr{}, "", &combinator.Failure{Ctx: op + "(...)", Expected: "','", Source: err, Rest: fullInput}
	}
	t, _ = combinator.Trivia(rest)
	b, err := parseCellRef(t.Rest)
	if err != nil {
		return InsertExpr{}, "", &combinator.Failure{Ctx: op + "(...)", Expected: "second CellRef", Source: err, Rest: fullInput}
	}
	rest = b.Rest

	interp := ConstInterpolate(0.5)
	t, _ = combinator.Trivia(rest)
	if strings.HasPrefix(t.Rest, ",") {
		afterComma, _ := combinator.Trivia(t.Rest[1:])
		if ip, ierr := parseInterpolate(afterComma.Rest); ierr == nil {
			interp = ip.Value
			rest = ip.Rest
		}
	}

	var space color.Space
	hasSpace := false
	t, _ = combinator.Trivia(rest)
	if strings.HasPrefix(t.Rest, ",") {
		afterComma, _ := combinator.Trivia(t.Rest[1:])
		name, nerr := bareName(afterComma.Rest)
		if nerr == nil {
			if sp, ok := spaceByName(name.Value); ok {
				space = sp
				hasSpace = true
				rest = name.Rest
			}
		}
	}

	closeRest, cerr := expectClose(rest)
	if cerr != nil {
		return InsertExpr{}, "", &combinator.Failure{Ctx: op + "(...)", Expected: "')'", Rest: fullInput}
	}
	e := InsertExpr{Kind: ExprBinary, Op: op, TargetA: a.Value, TargetB: b.Value, Interp: interp, Space: space, HasSpace: hasSpace}
	return e, closeRest, nil
}

// parseRamp parses "Uint, BinaryExpr (, InterpolateRange)?" after the
// opening '(' of "ramp(" has already been consumed.
func parseRamp(fullInput string, input string) (combinator.Success[InsertExpr], *combinator.Failure) {
	t, _ := combinator.Trivia(input)
	count, err := combinator.Uint(t.Rest)
	if err != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "count", Source: err, Rest: fullInput}
	}
	rest, err := expectComma(count.Rest)
	if err != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "','", Source: err, Rest: fullInput}
	}

	t, _ = combinator.Trivia(rest)
	var binOp string
	found := false
	for op := range binaryOps {
		if s, kerr := combinator.Keyword(op)(t.Rest); kerr == nil {
			afterKw, _ := combinator.Trivia(s.Rest)
			if strings.HasPrefix(afterKw.Rest, "(") {
				binOp = op
				found = true
				rest = afterKw.Rest[1:]
				break
			}
		}
	}
	if !found {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "binary blend expression", Rest: fullInput}
	}

	binExpr, rest, berr := parseBinaryArgs(fullInput, binOp, rest)
	if berr != nil {
		return combinator.Success[InsertExpr]{}, berr
	}

	rangeVal := InterpolateRange{Kind: RangeLinear}
	t, _ = combinator.Trivia(rest)
	if strings.HasPrefix(t.Rest, ",") {
		afterComma, _ := combinator.Trivia(t.Rest[1:])
		rangeResult, rerr := parseInterpolateRange(afterComma.Rest)
		if rerr != nil {
			return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "InterpolateRange", Source: rerr, Rest: fullInput}
		}
		rangeVal = rangeResult.Value
		rest = rangeResult.Rest
	}

	closeRest, cerr := expectClose(rest)
	if cerr != nil {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "')'", Rest: fullInput}
	}
	if count.Value > 1<<32-1 {
		return combinator.Success[InsertExpr]{}, &combinator.Failure{Ctx: "ramp(...)", Expected: "count that fits in 32 bits", Rest: fullInput}
	}
	bin := binExpr
	e := InsertExpr{Kind: ExprRamp, RampCount: uint32(count.Value), RampBinary: &bin, RampRange: rangeVal}
	consumed := len(fullInput) - len(closeRest)
	return combinator.Success[InsertExpr]{Value: e, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
}

// Expand implements spec §4.4's Ramp expansion: child i holds
// binary(A, B, interp(t_i), space) where t_i = range.remap(i/(n-1)).
func (e InsertExpr) Expand() ([]InsertExpr, error) {
	if e.Kind != ExprRamp {
		return nil, fmt.Errorf("expr: Expand called on non-ramp expression %q", e.Op)
	}
	n := int(e.RampCount)
	children := make([]InsertExpr, 0, n)
	for i := 0; i < n; i++ {
		t := e.RampRange.Remap(i, n)
		child := *e.RampBinary
		child.Interp = Interpolate{Kind: InterpConst, T: t, Space: e.RampRange.Space}
		if !child.HasSpace {
			child.Space = e.RampRange.Space
			child.HasSpace = true
		}
		children = append(children, child)
	}
	return children, nil
}
