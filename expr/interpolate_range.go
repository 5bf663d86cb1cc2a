package expr

import (
	"fmt"
	"strings"

	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/internal/combinator"
)

// RangeKind tags the four InterpolateRange shapes of spec §3.
type RangeKind int

const (
	RangeLinear RangeKind = iota
	RangeCubic
	RangeLinearBounds
	RangeCubicBounds
)

// InterpolateRange distributes a Ramp's n children across [0,1] (or a
// sub-range of it), optionally through a cubic ease, per spec §3.
type InterpolateRange struct {
	Kind  RangeKind
	A, B  float64 // RangeLinearBounds: output range [A,B]
	C, D  float64 // RangeCubicBounds: Bézier control points; A,B is the output range
	Space color.Space
}

func (ir InterpolateRange) String() string {
	spaceSuffix := ""
	if ir.Space != color.RGB {
		spaceSuffix = ", " + ir.Space.String()
	}
	switch ir.Kind {
	case RangeLinear:
		return "linear" + parenSuffix(spaceSuffix)
	case RangeCubic:
		return "cubic" + parenSuffix(spaceSuffix)
	case RangeLinearBounds:
		return fmt.Sprintf("linear([%s, %s]%s)", formatFloat(ir.A), formatFloat(ir.B), spaceSuffix)
	case RangeCubicBounds:
		return fmt.Sprintf("cubic([%s, %s], [%s, %s]%s)", formatFloat(ir.A), formatFloat(ir.B), formatFloat(ir.C), formatFloat(ir.D), spaceSuffix)
	default:
		return "<invalid-range>"
	}
}

func parenSuffix(s string) string {
	if s == "" {
		return ""
	}
	return "(" + strings.TrimPrefix(s, ", ") + ")"
}

// Remap computes the interpolation parameter for child i of n,
// per spec §4.4's Ramp expansion: t_i = range.remap(i/(n-1)), with
// t_0 = range.remap(0) when n == 1.
func (ir InterpolateRange) Remap(i, n int) float64 {
	u := 0.0
	if n > 1 {
		u = float64(i) / float64(n-1)
	}
	switch ir.Kind {
	case RangeLinear:
		return u
	case RangeCubic:
		return color.Smoothstep(u)
	case RangeLinearBounds:
		return lerp(ir.A, ir.B, u)
	case RangeCubicBounds:
		return lerp(ir.A, ir.B, color.CubicBezier(ir.C, ir.D, u))
	default:
		return u
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func parseFloatPair(input string) (combinator.Success[[2]float64], *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest
	if !strings.HasPrefix(rest, "[") {
		return combinator.Success[[2]float64]{}, &combinator.Failure{Expected: "'['", Rest: input}
	}
	rest = rest[1:]
	t, _ := combinator.Trivia(rest)
	a, err := combinator.Float(t.Rest)
	if err != nil {
		return combinator.Success[[2]float64]{}, &combinator.Failure{Expected: "first bound", Source: err, Rest: input}
	}
	t, _ = combinator.Trivia(a.Rest)
	if !strings.HasPrefix(t.Rest, ",") {
		return combinator.Success[[2]float64]{}, &combinator.Failure{Expected: "','", Rest: input}
	}
	t, _ = combinator.Trivia(t.Rest[1:])
	b, err := combinator.Float(t.Rest)
	if err != nil {
		return combinator.Success[[2]float64]{}, &combinator.Failure{Expected: "second bound", Source: err, Rest: input}
	}
	t, _ = combinator.Trivia(b.Rest)
	if !strings.HasPrefix(t.Rest, "]") {
		return combinator.Success[[2]float64]{}, &combinator.Failure{Expected: "']'", Rest: input}
	}
	consumed := len(input) - len(t.Rest[1:])
	return combinator.Success[[2]float64]{Value: [2]float64{a.Value, b.Value}, Token: combinator.Span{0, consumed}, Rest: t.Rest[1:]}, nil
}

// parseInterpolateRange implements the InterpolateRange argument of a
// Ramp call.
func parseInterpolateRange(input string) (combinator.Success[InterpolateRange], *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest

	if s, err := combinator.Keyword("linear")(rest); err == nil {
		afterKw, _ := combinator.Trivia(s.Rest)
		if strings.HasPrefix(afterKw.Rest, "(") {
			inner := afterKw.Rest[1:]
			t, _ := combinator.Trivia(inner)
			if strings.HasPrefix(t.Rest, "[") {
				pair, err := parseFloatPair(t.Rest)
				if err != nil {
					return combinator.Success[InterpolateRange]{}, &combinator.Failure{Ctx: "linear([a,b])", Expected: "[a, b]", Source: err, Rest: input}
				}
				sp, closeRest, cerr := closeParenWithSpace(pair.Rest)
				if cerr != nil {
					return combinator.Success[InterpolateRange]{}, cerr
				}
				ir := InterpolateRange{Kind: RangeLinearBounds, A: pair.Value[0], B: pair.Value[1], Space: sp}
				consumed := len(input) - len(closeRest)
				return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
			}
			sp, closeRest, cerr := closeParenWithSpace(inner)
			if cerr != nil {
				return combinator.Success[InterpolateRange]{}, cerr
			}
			ir := InterpolateRange{Kind: RangeLinear, Space: sp}
			consumed := len(input) - len(closeRest)
			return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
		}
		ir := InterpolateRange{Kind: RangeLinear}
		consumed := len(input) - len(afterKw.Rest)
		return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: afterKw.Rest}, nil
	}

	if s, err := combinator.Keyword("cubic")(rest); err == nil {
		afterKw, _ := combinator.Trivia(s.Rest)
		if strings.HasPrefix(afterKw.Rest, "(") {
			inner := afterKw.Rest[1:]
			t, _ := combinator.Trivia(inner)
			if strings.HasPrefix(t.Rest, "[") {
				first, err := parseFloatPair(t.Rest)
				if err != nil {
					return combinator.Success[InterpolateRange]{}, &combinator.Failure{Ctx: "cubic([a,b],[c,d])", Expected: "[a, b]", Source: err, Rest: input}
				}
				t2, _ := combinator.Trivia(first.Rest)
				if !strings.HasPrefix(t2.Rest, ",") {
					return combinator.Success[InterpolateRange]{}, &combinator.Failure{Expected: "','", Rest: input}
				}
				second, err := parseFloatPair(t2.Rest[1:])
				if err != nil {
					return combinator.Success[InterpolateRange]{}, &combinator.Failure{Ctx: "cubic([a,b],[c,d])", Expected: "[c, d]", Source: err, Rest: input}
				}
				sp, closeRest, cerr := closeParenWithSpace(second.Rest)
				if cerr != nil {
					return combinator.Success[InterpolateRange]{}, cerr
				}
				ir := InterpolateRange{Kind: RangeCubicBounds, A: first.Value[0], B: first.Value[1], C: second.Value[0], D: second.Value[1], Space: sp}
				consumed := len(input) - len(closeRest)
				return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
			}
			sp, closeRest, cerr := closeParenWithSpace(inner)
			if cerr != nil {
				return combinator.Success[InterpolateRange]{}, cerr
			}
			ir := InterpolateRange{Kind: RangeCubic, Space: sp}
			consumed := len(input) - len(closeRest)
			return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: closeRest}, nil
		}
		ir := InterpolateRange{Kind: RangeCubic}
		consumed := len(input) - len(afterKw.Rest)
		return combinator.Success[InterpolateRange]{Value: ir, Token: combinator.Span{0, consumed}, Rest: afterKw.Rest}, nil
	}

	return combinator.Success[InterpolateRange]{}, &combinator.Failure{Ctx: "InterpolateRange", Expected: "linear or cubic", Rest: input}
}

// closeParenWithSpace parses an optional ", space" suffix followed by
// the closing ')'.
func closeParenWithSpace(input string) (color.Space, string, *combinator.Failure) {
	depth := 1
	i := 0
	for i < len(input) && depth > 0 {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			break
		}
		i++
	}
	if i >= len(input) {
		return color.RGB, input, &combinator.Failure{Expected: "')'", Rest: input}
	}
	trailing := input[:i]
	sp, err := parseSpaceSuffix(trailing)
	if err != nil {
		return color.RGB, input, err
	}
	return sp.Value, input[i+1:], nil
}
