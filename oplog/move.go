package oplog

import (
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

// MoveRange deletes every cell in indices and re-inserts their
// expressions starting at pos, per spec §4.5. Any other cell's
// InsertExpr referencing a moved index by RefIndex is rewritten to the
// cell's new index.
func MoveRange(l *Log, p *palette.Palette, indices []uint32, pos Positioning, overwrite palette.OverwritePolicy, room palette.RoomPolicy) error {
	movedExprs := make([]expr.InsertExpr, 0, len(indices))
	movedFrom := make([]uint32, 0, len(indices))
	for _, idx := range indices {
		c, ok := p.Cell(idx)
		if !ok {
			continue
		}
		movedExprs = append(movedExprs, c.Expr)
		movedFrom = append(movedFrom, idx)
	}

	var actions []Action
	for _, idx := range movedFrom {
		actions = append(actions, removeCellAction(idx))
	}

	insertActions, newIndices, err := planInsertRange(p, movedExprs, pos, overwrite, room)
	if err != nil {
		return err
	}
	actions = append(actions, insertActions...)

	renumber := make(map[uint32]uint32, len(movedFrom))
	for i := 0; i < len(movedFrom) && i < len(newIndices); i++ {
		if movedFrom[i] != newIndices[i] {
			renumber[movedFrom[i]] = newIndices[i]
		}
	}
	if len(renumber) > 0 {
		for _, idx := range p.Indices() {
			cell, _ := p.Cell(idx)
			if rewritten, changed := rewriteIndexRefs(cell.Expr, renumber); changed {
				actions = append(actions, setExprAction(idx, rewritten))
			}
		}
	}

	if len(newIndices) > 0 {
		actions = append(actions, cursorAdvanceAction(p, newIndices, p.Settings.CursorBehavior))
	}

	return l.Run(p, "move", actions)
}
