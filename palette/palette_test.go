package palette

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/expr"
)

func red() expr.InsertExpr  { return expr.ColorExpr(color.RGB255(255, 0, 0)) }
func blue() expr.InsertExpr { return expr.ColorExpr(color.RGB255(0, 0, 255)) }

func TestInsertAndRemoveCellInverse(t *testing.T) {
	p := New()
	inv, err := p.InsertCell(1, red())
	require.NoError(t, err)
	require.True(t, p.Occupied(1))

	inv.Apply(p)
	require.False(t, p.Occupied(1))
}

func TestInsertCellAlreadyOccupied(t *testing.T) {
	p := New()
	_, err := p.InsertCell(1, red())
	require.NoError(t, err)
	_, err = p.InsertCell(1, blue())
	require.True(t, atmaerr.IsAlreadyOccupiedError(err))
}

func TestRemoveCellLeavesMetadataAsReservation(t *testing.T) {
	p := New()
	_, err := p.InsertCell(1, red())
	require.NoError(t, err)
	_, err = p.AssignName(1, "sunset")
	require.NoError(t, err)

	inv, err := p.RemoveCell(1)
	require.NoError(t, err)
	require.False(t, p.Occupied(1))
	name, ok := p.NameOf(1)
	require.True(t, ok)
	require.Equal(t, "sunset", name)

	inv.Apply(p)
	require.True(t, p.Occupied(1))
	c, _ := p.Cell(1)
	require.True(t, c.Expr.Equal(red()))
}

func TestSetExprInverseRestoresPrevious(t *testing.T) {
	p := New()
	_, err := p.InsertCell(1, red())
	require.NoError(t, err)

	inv, err := p.SetExpr(1, blue())
	require.NoError(t, err)
	c, _ := p.Cell(1)
	require.True(t, c.Expr.Equal(blue()))

	inv.Apply(p)
	c, _ = p.Cell(1)
	require.True(t, c.Expr.Equal(red()))
}

func TestSetExprNotOccupied(t *testing.T) {
	p := New()
	_, err := p.SetExpr(1, red())
	require.True(t, atmaerr.IsNotOccupiedError(err))
}

func TestAssignNameConflict(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.InsertCell(2, blue())
	_, err := p.AssignName(1, "sunset")
	require.NoError(t, err)
	_, err = p.AssignName(2, "sunset")
	require.True(t, atmaerr.IsNameConflictError(err))
}

func TestAssignNameRenameInverse(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.AssignName(1, "old")
	inv, err := p.AssignName(1, "new")
	require.NoError(t, err)

	name, ok := p.NameOf(1)
	require.True(t, ok)
	require.Equal(t, "new", name)
	_, ok = p.IndexByName("old")
	require.False(t, ok)

	inv.Apply(p)
	name, ok = p.NameOf(1)
	require.True(t, ok)
	require.Equal(t, "old", name)
}

func TestUnassignNameNotFound(t *testing.T) {
	p := New()
	_, err := p.UnassignName("ghost")
	require.True(t, atmaerr.IsNotFoundError(err))
}

func TestAssignPositionConflict(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.InsertCell(2, blue())
	pos := Position{Page: 0, Line: 0, Column: 0}
	_, err := p.AssignPosition(1, pos)
	require.NoError(t, err)
	_, err = p.AssignPosition(2, pos)
	require.True(t, atmaerr.IsPositionConflictError(err))
}

func TestAssignPositionInverse(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	pos := Position{Page: 1, Line: 2, Column: 3}
	inv, err := p.AssignPosition(1, pos)
	require.NoError(t, err)

	got, ok := p.PositionOf(1)
	require.True(t, ok)
	require.Equal(t, pos, got)

	inv.Apply(p)
	_, ok = p.PositionOf(1)
	require.False(t, ok)
}

func TestGroupAssignOrderAndInverse(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.InsertCell(2, blue())
	p.InsertCell(3, red())

	_, err := p.AssignGroup(1, "warm")
	require.NoError(t, err)
	_, err = p.AssignGroup(2, "warm")
	require.NoError(t, err)
	_, err = p.AssignGroup(3, "warm")
	require.NoError(t, err)

	idx, ok := p.IndexInGroup("warm", 0)
	require.True(t, ok)
	require.Equal(t, uint32(1), idx)
	idx, ok = p.IndexInGroup("warm", 2)
	require.True(t, ok)
	require.Equal(t, uint32(3), idx)
	require.Equal(t, 3, p.GroupLen("warm"))

	inv, err := p.UnassignGroup(2, "warm")
	require.NoError(t, err)
	require.Equal(t, 2, p.GroupLen("warm"))
	idx, ok = p.IndexInGroup("warm", 1)
	require.True(t, ok)
	require.Equal(t, uint32(3), idx)

	inv.Apply(p)
	require.Equal(t, 3, p.GroupLen("warm"))
	idx, ok = p.IndexInGroup("warm", 1)
	require.True(t, ok)
	require.Equal(t, uint32(2), idx)
}

func TestClearGroupRestoresAllMemberships(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.AssignGroup(1, "warm")
	p.AssignGroup(1, "bright")

	inv := p.ClearGroup(1)
	require.Empty(t, p.GroupsOf(1))

	inv.Apply(p)
	groups := p.GroupsOf(1)
	require.Contains(t, groups, "warm")
	require.Contains(t, groups, "bright")
}

func TestClearGroupNoopWhenUnassigned(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	inv := p.ClearGroup(1)
	require.Equal(t, InvNoop, inv.Kind)
}

func TestLowestFreeIndexFrom(t *testing.T) {
	p := New()
	p.InsertCell(0, red())
	p.InsertCell(1, red())
	p.InsertCell(3, red())
	require.Equal(t, uint32(2), p.LowestFreeIndexFrom(0))
	require.Equal(t, uint32(4), p.LowestFreeIndexFrom(3))
}

func TestIndicesSorted(t *testing.T) {
	p := New()
	p.InsertCell(5, red())
	p.InsertCell(1, red())
	p.InsertCell(3, red())
	require.Equal(t, []uint32{1, 3, 5}, p.Indices())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p := New()
	p.InsertCell(1, red())
	p.InsertCell(2, blue())
	p.AssignName(1, "sunset")
	p.AssignPosition(2, Position{Page: 0, Line: 0, Column: 1})
	p.AssignGroup(1, "warm")
	p.SetCursor(7)

	snap := p.Snapshot()

	q := New()
	q.Restore(snap)

	require.Equal(t, p.Indices(), q.Indices())
	name, ok := q.NameOf(1)
	require.True(t, ok)
	require.Equal(t, "sunset", name)
	pos, ok := q.PositionOf(2)
	require.True(t, ok)
	require.Equal(t, Position{Page: 0, Line: 0, Column: 1}, pos)
	idx, ok := q.IndexInGroup("warm", 0)
	require.True(t, ok)
	require.Equal(t, uint32(1), idx)
	require.Equal(t, uint32(7), q.Cursor())
}

func TestSettingsInverse(t *testing.T) {
	p := New()
	orig := p.Settings
	next := DefaultSettings()
	next.OverwritePolicy = OverwriteMove

	inv := p.SetParameters(next)
	require.Equal(t, OverwriteMove, p.Settings.OverwritePolicy)

	inv.Apply(p)
	require.Equal(t, orig.OverwritePolicy, p.Settings.OverwritePolicy)
}
