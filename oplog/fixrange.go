package oplog

import (
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/eval"
	"github.com/atma-editor/atma/palette"
)

// FixRange resolves the current color of every cell in indices and
// replaces its expression with that literal color, severing whatever
// references it held, per spec §4.5.
func FixRange(l *Log, p *palette.Palette, indices []uint32) error {
	r := eval.NewResolver(p)
	var actions []Action
	for _, idx := range indices {
		if !p.Occupied(idx) {
			continue
		}
		ev := eval.NewEvaluator(r)
		c, err := ev.EvalIndex(idx)
		if err != nil {
			return err
		}
		actions = append(actions, setExprAction(idx, expr.ColorExpr(c)))
	}
	return l.Run(p, "fix", actions)
}
