package list

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

func mustInsert(t *testing.T, p *palette.Palette, idx uint32, src string) {
	t.Helper()
	e, err := expr.Parse(src)
	require.NoError(t, err)
	_, err = p.InsertCell(idx, e)
	require.NoError(t, err)
}

func TestBuildResolvesNameAndPosition(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#ff0000")
	p.AssignName(0, "sunset")
	p.AssignPosition(0, palette.Position{Page: 0, Line: 1, Column: 2})

	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Len(t, rows, 1)
	require.True(t, rows[0].HasName)
	require.Equal(t, "sunset", rows[0].Name)
	require.True(t, rows[0].HasPos)
	require.NoError(t, rows[0].EvalErr)
}

func TestBuildCarriesEvalError(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, ":5")

	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Len(t, rows, 1)
	require.Error(t, rows[0].EvalErr)
}

func TestFormatTextVariants(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#112233")
	rows := Build(p, []uint32{0}, DefaultOptions())

	require.Equal(t, "#112233", FormatText(rows[0], TextHex6))
	require.Equal(t, "rgb(17,34,51)", FormatText(rows[0], TextRGB))
	require.Equal(t, "", FormatText(rows[0], TextStyleNone))
}

func TestFormatTextOnEvalErrorReturnsPlaceholder(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, ":9")
	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Equal(t, "?", FormatText(rows[0], TextHex6))
}

func TestShortHexCollapsesRepeatedNibbles(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#112233")
	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Equal(t, "#123", FormatText(rows[0], TextHex3))
}

func TestShortHexLeavesNonCollapsibleHexAlone(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#112234")
	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Equal(t, "#112234", FormatText(rows[0], TextHex3))
}

func TestLabelForPrefersNameThenPositionThenIndex(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#ff0000")
	mustInsert(t, p, 1, "#00ff00")
	mustInsert(t, p, 2, "#0000ff")
	p.AssignName(0, "sunset")
	p.AssignPosition(1, palette.Position{Page: 0, Line: 0, Column: 1})

	rows := Build(p, []uint32{0, 1, 2}, DefaultOptions())
	require.Equal(t, "sunset", LabelFor(rows[0]))
	require.Equal(t, ":0.0.1", LabelFor(rows[1]))
	require.Equal(t, ":2", LabelFor(rows[2]))
}

func TestRuleLineRespectsStyle(t *testing.T) {
	require.Equal(t, "", RuleLine(5, RuleNone))
	require.Equal(t, "-----", RuleLine(5, RulePlain))
	require.Equal(t, 0, len(RuleLine(0, RuleColored)))
}

func TestTileStyleOmittedOnEvalError(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, ":9")
	rows := Build(p, []uint32{0}, DefaultOptions())
	require.Equal(t, lipgloss.NewStyle(), rows[0].Tile)
}
