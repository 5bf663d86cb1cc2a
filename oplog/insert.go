package oplog

import (
	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/eval"
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

// Positioning selects the index an InsertRange starts planning at. The
// zero value means "start at the palette cursor".
type Positioning struct {
	HasStart bool
	Start    uint32
}

// NoPositioning starts planning at the palette's current cursor.
func NoPositioning() Positioning { return Positioning{} }

// StartAt starts planning at an explicit index, the result of
// resolving the command's CellRef or position pattern.
func StartAt(idx uint32) Positioning { return Positioning{HasStart: true, Start: idx} }

// InsertRange plans and runs the insert algorithm of spec §4.5 for an
// ordered list of expressions.
func InsertRange(l *Log, p *palette.Palette, exprs []expr.InsertExpr, pos Positioning, overwrite palette.OverwritePolicy, room palette.RoomPolicy) error {
	actions, lastNew, err := planInsertRange(p, exprs, pos, overwrite, room)
	if err != nil {
		return err
	}
	if len(lastNew) > 0 {
		actions = append(actions, cursorAdvanceAction(p, lastNew, p.Settings.CursorBehavior))
	}
	return l.Run(p, "insert", actions)
}

// InsertRamp expands a Ramp expression into its children and delegates
// to InsertRange, per spec §4.5.
func InsertRamp(l *Log, p *palette.Palette, ramp expr.InsertExpr, pos Positioning, overwrite palette.OverwritePolicy, room palette.RoomPolicy) error {
	children, err := ramp.Expand()
	if err != nil {
		return err
	}
	return InsertRange(l, p, children, pos, overwrite, room)
}

func cursorAdvanceAction(p *palette.Palette, newIndices []uint32, behavior palette.CursorBehavior) Action {
	var target uint32
	switch behavior {
	case palette.CursorStay:
		return func(p *palette.Palette) (Step, error) { return cursorStep{prev: p.Cursor()}, nil }
	case palette.CursorForward:
		target = newIndices[len(newIndices)-1] + 1
	case palette.CursorBackward:
		target = newIndices[0]
		if target > 0 {
			target--
		}
	case palette.CursorToFirstNew:
		target = newIndices[0]
	case palette.CursorToLastNew:
		target = newIndices[len(newIndices)-1]
	default:
		target = newIndices[len(newIndices)-1] + 1
	}
	return setCursorAction(target)
}

// planInsertRange is the transactional planner: it walks the algorithm
// against p's current state, emitting Actions without applying
// anything, so every occupancy check sees the palette as it was before
// the composite runs. Log.Run applies the planned actions afterwards
// through a single Composite.apply call, which rolls every action back
// on first failure.
func planInsertRange(p *palette.Palette, exprs []expr.InsertExpr, pos Positioning, overwrite palette.OverwritePolicy, room palette.RoomPolicy) ([]Action, []uint32, error) {
	start := p.Cursor()
	if pos.HasStart {
		start = pos.Start
	}
	limits := p.Limits
	cur := limits.PositionOf(start)

	var actions []Action
	var newIndices []uint32

	i := 0
	for i < len(exprs) {
		target := limits.IndexOf(cur)
		e := exprs[i]

		if p.Occupied(target) {
			switch overwrite {
			case palette.OverwriteError:
				return nil, nil, atmaerr.Wrap(&atmaerr.AlreadyOccupiedError{Index: target})
			case palette.OverwriteSkip:
				next, ok := limits.Advance(cur, room)
				if !ok {
					return nil, nil, roomErr(room, cur)
				}
				cur = next
				continue
			case palette.OverwriteMove:
				shiftActions, err := planShift(p, target)
				if err != nil {
					return nil, nil, err
				}
				actions = append(actions, shiftActions...)
			case palette.OverwriteOverwrite:
				actions = append(actions, removeCellAction(target))
			case palette.OverwriteRemove:
				actions = append(actions, planRemoveTransitive(p, target)...)
			default:
				return nil, nil, atmaerr.Wrap(&atmaerr.AlreadyOccupiedError{Index: target})
			}
		}

		resolved, err := resolveCopyExpr(p, e)
		if err != nil {
			return nil, nil, err
		}

		actions = append(actions, insertCellAction(target, resolved))
		newIndices = append(newIndices, target)
		i++

		if i < len(exprs) {
			next, ok := limits.Advance(cur, room)
			if !ok {
				if room == palette.RoomStop {
					break
				}
				return nil, nil, roomErr(room, cur)
			}
			cur = next
		}
	}

	return actions, newIndices, nil
}

func roomErr(room palette.RoomPolicy, cur palette.Position) error {
	return atmaerr.Wrap(&atmaerr.OutOfRoomError{Page: cur.Page, Line: cur.Line, Column: cur.Column})
}

// resolveCopyExpr bakes a Copy expression's referenced color in at
// insertion time, per spec §4.4: unlike a Ref, a Copy cell never
// tracks its source afterward, so later changes to the source cell
// must not affect it. Non-Copy expressions pass through unchanged.
func resolveCopyExpr(p *palette.Palette, e expr.InsertExpr) (expr.InsertExpr, error) {
	if e.Kind != expr.ExprCopy {
		return e, nil
	}
	r := eval.NewResolver(p)
	idx, ok := r.ResolveRef(e.Ref)
	if !ok {
		return expr.InsertExpr{}, atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: e.Ref.String()})
	}
	c, err := eval.NewEvaluator(r).EvalIndex(idx)
	if err != nil {
		return expr.InsertExpr{}, err
	}
	return expr.ColorExpr(c), nil
}

// planShift implements the Move overwrite policy: the occupying cell
// at target, and every consecutive occupied successor up to the first
// gap, is shifted forward by one index. Every cell's InsertExpr,
// shifted or not, that names one of the shifted indices by RefIndex is
// rewritten to follow it.
func planShift(p *palette.Palette, target uint32) ([]Action, error) {
	end := target
	for p.Occupied(end) {
		end++
		if end == 0 { // wrapped past the uint32 range
			break
		}
	}
	chainLen := end - target

	renumber := make(map[uint32]uint32, chainLen)
	for i := uint32(0); i < chainLen; i++ {
		renumber[target+i] = target + i + 1
	}
	var actions []Action
	for i := int64(chainLen) - 1; i >= 0; i-- {
		old := target + uint32(i)
		nw := old + 1
		cell, ok := p.Cell(old)
		if !ok {
			continue
		}
		movedExpr, _ := rewriteIndexRefs(cell.Expr, renumber)
		actions = append(actions, removeCellAction(old))
		actions = append(actions, insertCellAction(nw, movedExpr))
	}

	for _, idx := range p.Indices() {
		if _, shifted := renumber[idx]; shifted {
			continue
		}
		cell, _ := p.Cell(idx)
		if rewritten, changed := rewriteIndexRefs(cell.Expr, renumber); changed {
			actions = append(actions, setExprAction(idx, rewritten))
		}
	}

	return actions, nil
}

// planRemoveTransitive implements the Remove overwrite policy: target
// is removed along with every cell whose expression transitively
// references it.
func planRemoveTransitive(p *palette.Palette, target uint32) []Action {
	r := eval.NewResolver(p)
	toRemove := map[uint32]bool{target: true}

	changed := true
	for changed {
		changed = false
		for _, idx := range p.Indices() {
			if toRemove[idx] {
				continue
			}
			cell, _ := p.Cell(idx)
			if referencesAny(cell.Expr, toRemove, r) {
				toRemove[idx] = true
				changed = true
			}
		}
	}

	var actions []Action
	for idx := range toRemove {
		actions = append(actions, removeCellAction(idx))
	}
	return actions
}

func referencesAny(e expr.InsertExpr, targets map[uint32]bool, r eval.Resolver) bool {
	check := func(ref expr.CellRef) bool {
		idx, ok := r.ResolveRef(ref)
		return ok && targets[idx]
	}
	switch e.Kind {
	case expr.ExprRef, expr.ExprCopy:
		return check(e.Ref)
	case expr.ExprUnary:
		return check(e.TargetA)
	case expr.ExprBinary:
		return check(e.TargetA) || check(e.TargetB)
	case expr.ExprRamp:
		if e.RampBinary != nil {
			return referencesAny(*e.RampBinary, targets, r)
		}
	}
	return false
}

// rewriteIndexRefs replaces any RefIndex CellRef in e whose Index
// appears in renumber with the new index it maps to.
func rewriteIndexRefs(e expr.InsertExpr, renumber map[uint32]uint32) (expr.InsertExpr, bool) {
	changed := false
	rewriteRef := func(r expr.CellRef) expr.CellRef {
		if r.Kind == expr.RefIndex {
			if nw, ok := renumber[r.Index]; ok {
				changed = true
				return expr.IndexRef(nw)
			}
		}
		return r
	}
	switch e.Kind {
	case expr.ExprRef, expr.ExprCopy:
		e.Ref = rewriteRef(e.Ref)
	case expr.ExprUnary:
		e.TargetA = rewriteRef(e.TargetA)
	case expr.ExprBinary:
		e.TargetA = rewriteRef(e.TargetA)
		e.TargetB = rewriteRef(e.TargetB)
	case expr.ExprRamp:
		if e.RampBinary != nil {
			rewritten, rc := rewriteIndexRefs(*e.RampBinary, renumber)
			if rc {
				changed = true
				e.RampBinary = &rewritten
			}
		}
	}
	return e, changed
}
