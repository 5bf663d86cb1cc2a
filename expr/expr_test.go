package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/color"
)

func TestParseColorLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
	}{
		{"#ff0000", color.RGB255(255, 0, 0)},
		{"#f00", color.RGB255(255, 0, 0)},
		{"rgb(1, 0, 0)", color.RGB01(1, 0, 0)},
		{"cmyk(0, 1, 1, 0)", color.CMYKColor(0, 1, 1, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, ExprColor, e.Kind)
			require.True(t, e.ColorLit.Equal(tc.want), "got %s want %s", e.ColorLit.Hex(), tc.want.Hex())
		})
	}
}

func TestParseRefForms(t *testing.T) {
	cases := []struct {
		in   string
		want CellRef
	}{
		{":5", IndexRef(5)},
		{":1.2.3", PositionRef(1, 2, 3)},
		{"warm:2", GroupRef("warm", 2)},
		{"sunset", NameRef("sunset")},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, ExprRef, e.Kind)
			require.Equal(t, tc.want, e.Ref)
		})
	}
}

func TestParseRoundTripsThroughString(t *testing.T) {
	cases := []string{
		":5",
		"sunset",
		"copy(:3)",
		"lighten(:1, 0.2)",
		"lighten(:1, 0.2, linear(0.5))",
		"blend(:1, :2, 0.5)",
		"blend(:1, :2, 0.5, hsl)",
		"ramp(5, blend(:1, :2, 0.5), linear)",
		"ramp(5, blend(:1, :2, 0.5), linear([0.1, 0.9]))",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			e, err := Parse(in)
			require.NoError(t, err)
			again, err := Parse(e.String())
			require.NoError(t, err, "re-parsing %q", e.String())
			require.True(t, e.Equal(again), "round trip mismatch: %q -> %q", in, e.String())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "lighten(:1)", "blend(:1, :2", "lighten(:1, 0.2"} {
		_, err := Parse(in)
		require.Error(t, err, in)
	}
}

func TestParseCellRef(t *testing.T) {
	ref, err := ParseCellRef(":1.2.3")
	require.NoError(t, err)
	require.Equal(t, PositionRef(1, 2, 3), ref)

	_, err = ParseCellRef(":1.2.3 trailing")
	require.Error(t, err)
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		in   string
		want Selection
	}{
		{"*", AllSelection()},
		{":*", AllSelection()},
		{":5", SingleSelection(IndexRef(5))},
		{":1-:10", RangeSelection(IndexRef(1), IndexRef(10))},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSelection(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseSelectionPositionPattern(t *testing.T) {
	sel, err := ParseSelection(":1.*.3")
	require.NoError(t, err)
	require.Equal(t, SelPositionPattern, sel.Kind)
	require.False(t, sel.Page.Wildcard)
	require.True(t, sel.Line.Wildcard)
	require.False(t, sel.Column.Wildcard)
}

func TestParseSelectionRejectsMixedRangeKinds(t *testing.T) {
	_, err := ParseSelection(":1-sunset")
	require.Error(t, err)
}

func TestRampExpand(t *testing.T) {
	e, err := Parse("ramp(3, blend(:1, :2, 0.5), linear)")
	require.NoError(t, err)
	children, err := e.Expand()
	require.NoError(t, err)
	require.Len(t, children, 3)
	require.Equal(t, 0.0, children[0].Interp.T)
	require.Equal(t, 0.5, children[1].Interp.T)
	require.Equal(t, 1.0, children[2].Interp.T)
}

func TestRampExpandSingleChild(t *testing.T) {
	e, err := Parse("ramp(1, blend(:1, :2, 0.5), linear)")
	require.NoError(t, err)
	children, err := e.Expand()
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, 0.0, children[0].Interp.T)
}
