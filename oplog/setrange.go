package oplog

import (
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

// SetRange replaces the expression of every cell in indices with
// template, per spec §4.5. Indices with no existing cell are skipped;
// SetRange only replaces, it does not insert.
func SetRange(l *Log, p *palette.Palette, indices []uint32, template expr.InsertExpr) error {
	var actions []Action
	for _, idx := range indices {
		if p.Occupied(idx) {
			actions = append(actions, setExprAction(idx, template))
		}
	}
	return l.Run(p, "set", actions)
}
