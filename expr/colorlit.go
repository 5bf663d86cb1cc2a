package expr

import (
	"strings"

	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/internal/combinator"
)

// parseColorLiteral implements spec §4.2's color literal forms:
// "#RRGGBB", "#RGB", and the rgb/cmyk/hsl/hsv/xyz function calls.
func parseColorLiteral(input string) (combinator.Success[color.Color], *combinator.Failure) {
	if strings.HasPrefix(input, "#") {
		i := 1
		for i < len(input) && isHexDigit(input[i]) {
			i++
		}
		lit := input[:i]
		c, err := color.FromHex(lit)
		if err != nil {
			return combinator.Success[color.Color]{}, &combinator.Failure{Ctx: "color literal", Expected: "#RGB or #RRGGBB", Rest: input}
		}
		return combinator.Success[color.Color]{Value: c, Token: combinator.Span{0, i}, Rest: input[i:]}, nil
	}

	for _, fn := range []struct {
		name string
		n    int
		make func([]float64) color.Color
	}{
		{"rgb", 3, func(v []float64) color.Color { return color.RGB01(v[0], v[1], v[2]) }},
		{"cmyk", 4, func(v []float64) color.Color { return color.CMYKColor(v[0], v[1], v[2], v[3]) }},
		{"hsl", 3, func(v []float64) color.Color { return color.HSLColor(v[0], v[1], v[2]) }},
		{"hsv", 3, func(v []float64) color.Color { return color.HSVColor(v[0], v[1], v[2]) }},
		{"xyz", 3, func(v []float64) color.Color { return color.XYZColor(v[0], v[1], v[2]) }},
	} {
		if s, err := combinator.Keyword(fn.name)(input); err == nil {
			args, ferr := parenFloats(s.Rest, fn.n)
			if ferr != nil {
				continue
			}
			c := fn.make(args.values)
			consumed := len(input) - len(args.rest)
			return combinator.Success[color.Color]{Value: c, Token: combinator.Span{0, consumed}, Rest: args.rest}, nil
		}
	}

	return combinator.Success[color.Color]{}, &combinator.Failure{Ctx: "color literal", Expected: "#hex or rgb|cmyk|hsl|hsv|xyz(...)", Rest: input}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
