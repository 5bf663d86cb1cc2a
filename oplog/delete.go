package oplog

import "github.com/atma-editor/atma/palette"

// DeleteRange removes every cell in selection. When clearOrphans is
// set, each removed index also has its name/position/group metadata
// cleared; otherwise the metadata survives as a reservation, per spec
// §4.5.
func DeleteRange(l *Log, p *palette.Palette, indices []uint32, clearOrphans bool) error {
	var actions []Action
	for _, idx := range indices {
		actions = append(actions, removeCellAction(idx))
		if clearOrphans {
			actions = append(actions, clearNamesAction(idx), clearPositionAction(idx), clearGroupAction(idx))
		}
	}
	if len(indices) > 0 {
		actions = append(actions, cursorAdvanceAction(p, indices, p.Settings.CursorBehavior))
	}
	return l.Run(p, "delete", actions)
}
