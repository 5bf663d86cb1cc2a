package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/color"
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

func TestEvalIndexColorLiteral(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#ff0000")

	ev := NewEvaluator(NewResolver(p))
	c, err := ev.EvalIndex(0)
	require.NoError(t, err)
	require.True(t, c.Equal(color.RGB255(255, 0, 0)))
}

func TestEvalIndexFollowsRef(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#00ff00")
	mustInsert(t, p, 1, ":0")

	ev := NewEvaluator(NewResolver(p))
	c, err := ev.EvalIndex(1)
	require.NoError(t, err)
	require.True(t, c.Equal(color.RGB255(0, 255, 0)))
}

func TestEvalIndexUnresolvedRef(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "ghost")

	ev := NewEvaluator(NewResolver(p))
	_, err := ev.EvalIndex(0)
	require.True(t, atmaerr.IsUnknownRefError(err))
}

func TestEvalIndexNotOccupied(t *testing.T) {
	p := palette.New()
	ev := NewEvaluator(NewResolver(p))
	_, err := ev.EvalIndex(9)
	require.True(t, atmaerr.IsNotOccupiedError(err))
}

func TestEvalIndexDetectsDirectCycle(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, ":1")
	mustInsert(t, p, 1, ":0")

	ev := NewEvaluator(NewResolver(p))
	_, err := ev.EvalIndex(0)
	require.True(t, atmaerr.IsCycleDetectedError(err))
}

func TestEvalIndexDetectsSelfCycle(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, ":0")

	ev := NewEvaluator(NewResolver(p))
	_, err := ev.EvalIndex(0)
	require.True(t, atmaerr.IsCycleDetectedError(err))
}

func TestEvalIndexMemoizesWithinCall(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#112233")
	mustInsert(t, p, 1, "blend(:0, :0, 0.5)")

	ev := NewEvaluator(NewResolver(p))
	c, err := ev.EvalIndex(1)
	require.NoError(t, err)
	require.True(t, c.Equal(color.RGB255(0x11, 0x22, 0x33)))
}

func TestEvalUnaryLighten(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#808080")
	mustInsert(t, p, 1, "lighten(:0, 0.5)")

	ev := NewEvaluator(NewResolver(p))
	base, err := ev.EvalIndex(0)
	require.NoError(t, err)
	lightened, err := NewEvaluator(NewResolver(p)).EvalIndex(1)
	require.NoError(t, err)
	_, _, baseL := base.HSL()
	_, _, gotL := lightened.HSL()
	require.Greater(t, gotL, baseL)
}

func TestEvalBinaryBlendMidpoint(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#000000")
	mustInsert(t, p, 1, "#ffffff")
	mustInsert(t, p, 2, "blend(:0, :1, 0.5)")

	ev := NewEvaluator(NewResolver(p))
	c, err := ev.EvalIndex(2)
	require.NoError(t, err)
	r, g, b := c.RGB255Values()
	require.InDelta(t, 128, int(r), 2)
	require.InDelta(t, 128, int(g), 2)
	require.InDelta(t, 128, int(b), 2)
}

func TestEvalRampExpandsEachChild(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#000000")
	mustInsert(t, p, 1, "#ffffff")
	e, err := expr.Parse("ramp(3, blend(:0, :1, 0.5), linear)")
	require.NoError(t, err)

	colors, err := EvalRamp(NewResolver(p), e)
	require.NoError(t, err)
	require.Len(t, colors, 3)
	require.True(t, colors[0].Equal(color.RGB255(0, 0, 0)))
	require.True(t, colors[2].Equal(color.RGB255(255, 255, 255)))
}

func TestResolverGroupAndPosition(t *testing.T) {
	p := palette.New()
	mustInsert(t, p, 0, "#ff00ff")
	p.AssignGroup(0, "warm")
	p.AssignPosition(0, palette.Position{Page: 1, Line: 2, Column: 3})

	r := NewResolver(p)
	idx, ok := r.ResolveRef(expr.GroupRef("warm", 0))
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)

	idx, ok = r.ResolveRef(expr.PositionRef(1, 2, 3))
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
}
