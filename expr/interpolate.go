package expr

import (
	"fmt"
	"strings"

	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/internal/combinator"
)

// InterpolateKind tags the four Interpolate shapes of spec §3.
type InterpolateKind int

const (
	InterpConst InterpolateKind = iota
	InterpLinear
	InterpCubic
	InterpCubicBezier
)

// Interpolate is the per-call interpolation parameter of a Unary or
// Binary expression: a constant t, a t tagged with a space, a t eased
// through the default cubic curve, or a t eased through a two-control
// point cubic Bézier, always paired with a ColorSpace (default RGB).
type Interpolate struct {
	Kind  InterpolateKind
	T     float64
	Space color.Space
	P1, P2 float64 // InterpCubicBezier
}

func ConstInterpolate(t float64) Interpolate {
	return Interpolate{Kind: InterpConst, T: t, Space: color.RGB}
}

// Resolve returns the effective blend parameter and color space,
// applying the curve for Cubic/CubicBezier forms per spec §4.4 step 4.
func (it Interpolate) Resolve() (t float64, space color.Space) {
	switch it.Kind {
	case InterpLinear, InterpConst:
		return it.T, it.Space
	case InterpCubic:
		return color.Smoothstep(it.T), it.Space
	case InterpCubicBezier:
		return color.CubicBezier(it.P1, it.P2, it.T), it.Space
	default:
		return it.T, it.Space
	}
}

func (it Interpolate) String() string {
	spaceSuffix := ""
	if it.Space != color.RGB {
		spaceSuffix = ", " + it.Space.String()
	}
	switch it.Kind {
	case InterpConst:
		return formatFloat(it.T)
	case InterpLinear:
		return fmt.Sprintf("linear(%s%s)", formatFloat(it.T), spaceSuffix)
	case InterpCubic:
		return fmt.Sprintf("cubic(%s%s)", formatFloat(it.T), spaceSuffix)
	case InterpCubicBezier:
		return fmt.Sprintf("cubic(%s, %s)(%s%s)", formatFloat(it.P1), formatFloat(it.P2), formatFloat(it.T), spaceSuffix)
	default:
		return "<invalid-interpolate>"
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// parseSpaceSuffix parses an optional ", SPACE" suffix, defaulting to
// RGB.
func parseSpaceSuffix(input string) (combinator.Success[color.Space], *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest
	if !strings.HasPrefix(rest, ",") {
		return combinator.Success[color.Space]{Value: color.RGB, Rest: input}, nil
	}
	afterComma, _ := combinator.Trivia(rest[1:])
	name, err := bareName(afterComma.Rest)
	if err != nil {
		return combinator.Success[color.Space]{}, &combinator.Failure{Expected: "color space name", Source: err, Rest: input}
	}
	sp, ok := spaceByName(name.Value)
	if !ok {
		return combinator.Success[color.Space]{}, &combinator.Failure{Expected: "one of rgb|hsl|hsv|cmyk|xyz", Rest: input}
	}
	consumed := len(input) - len(name.Rest)
	return combinator.Success[color.Space]{Value: sp, Token: combinator.Span{0, consumed}, Rest: name.Rest}, nil
}

func spaceByName(name string) (color.Space, bool) {
	switch strings.ToLower(name) {
	case "rgb":
		return color.RGB, true
	case "hsl":
		return color.HSL, true
	case "hsv":
		return color.HSV, true
	case "cmyk":
		return color.CMYK, true
	case "xyz":
		return color.XYZ, true
	default:
		return 0, false
	}
}

// parseInterpolate implements spec §4.2's Interpolate argument shape
// as it appears inside a Unary/Binary call: a bare float, or
// "linear(t[, space])", or "cubic(t[, space])", or
// "cubic(p1, p2)(t[, space])".
func parseInterpolate(input string) (combinator.Success[Interpolate], *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest

	if s, err := combinator.Keyword("linear")(rest); err == nil {
		args, err := parenFloats(s.Rest, 1)
		if err != nil {
			return combinator.Success[Interpolate]{}, &combinator.Failure{Ctx: "linear(...)", Expected: "(t)", Source: err, Rest: input}
		}
		sp, _ := parseSpaceSuffixInsideParen(args.trailing)
		consumed := len(input) - len(args.rest)
		return combinator.Success[Interpolate]{
			Value: Interpolate{Kind: InterpLinear, T: args.values[0], Space: sp},
			Token: combinator.Span{0, consumed}, Rest: args.rest,
		}, nil
	}

	if s, err := combinator.Keyword("cubic")(rest); err == nil {
		twoArg, err2 := parenFloats(s.Rest, 2)
		if err2 == nil {
			afterFirstParen, _ := combinator.Trivia(twoArg.rest)
			second, err3 := parenFloats(afterFirstParen.Rest, 1)
			if err3 == nil {
				sp, _ := parseSpaceSuffixInsideParen(second.trailing)
				consumed := len(input) - len(second.rest)
				return combinator.Success[Interpolate]{
					Value: Interpolate{Kind: InterpCubicBezier, P1: twoArg.values[0], P2: twoArg.values[1], T: second.values[0], Space: sp},
					Token: combinator.Span{0, consumed}, Rest: second.rest,
				}, nil
			}
		}
		oneArg, err := parenFloats(s.Rest, 1)
		if err != nil {
			return combinator.Success[Interpolate]{}, &combinator.Failure{Ctx: "cubic(...)", Expected: "(t) or (p1,p2)(t)", Source: err, Rest: input}
		}
		sp, _ := parseSpaceSuffixInsideParen(oneArg.trailing)
		consumed := len(input) - len(oneArg.rest)
		return combinator.Success[Interpolate]{
			Value: Interpolate{Kind: InterpCubic, T: oneArg.values[0], Space: sp},
			Token: combinator.Span{0, consumed}, Rest: oneArg.rest,
		}, nil
	}

	f, err := combinator.Float(rest)
	if err != nil {
		return combinator.Success[Interpolate]{}, &combinator.Failure{Ctx: "Interpolate", Expected: "float, linear(...), or cubic(...)", Source: err, Rest: input}
	}
	consumed := len(input) - len(f.Rest)
	return combinator.Success[Interpolate]{Value: ConstInterpolate(f.Value), Token: combinator.Span{0, consumed}, Rest: f.Rest}, nil
}

type parenFloatsResult struct {
	values   []float64
	trailing string // text consumed as the space suffix candidate, kept inside the same parens
	rest     string
}

// parenFloats parses "(" float ("," float)* ")" requiring exactly n
// leading float arguments, with an optional trailing ", space" suffix
// still inside the parens.
func parenFloats(input string, n int) (parenFloatsResult, *combinator.Failure) {
	trimmed, _ := combinator.Trivia(input)
	rest := trimmed.Rest
	if !strings.HasPrefix(rest, "(") {
		return parenFloatsResult{}, &combinator.Failure{Expected: "'('", Rest: input}
	}
	rest = rest[1:]

	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t, _ := combinator.Trivia(rest)
		rest = t.Rest
		f, err := combinator.Float(rest)
		if err != nil {
			return parenFloatsResult{}, &combinator.Failure{Expected: "numeric argument", Source: err, Rest: rest}
		}
		values = append(values, f.Value)
		rest = f.Rest
		if i < n-1 {
			t, _ = combinator.Trivia(rest)
			if !strings.HasPrefix(t.Rest, ",") {
				return parenFloatsResult{}, &combinator.Failure{Expected: "','", Rest: t.Rest}
			}
			rest = t.Rest[1:]
		}
	}

	// capture everything up to the matching ')' as the trailing
	// (possibly containing a ", space" suffix), then consume ')'.
	depth := 1
	i := 0
	for i < len(rest) && depth > 0 {
		switch rest[i] {
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
	if i >= len(rest) {
		return parenFloatsResult{}, &combinator.Failure{Expected: "')'", Rest: rest}
	}
	trailing := rest[:i]
	after := rest[i+1:]
	return parenFloatsResult{values: values, trailing: trailing, rest: after}, nil
}

func parseSpaceSuffixInsideParen(trailing string) (color.Space, error) {
	s, err := parseSpaceSuffix(trailing)
	if err != nil {
		return color.RGB, err
	}
	return s.Value, nil
}
