package oplog

import (
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

func insertCellAction(idx uint32, e expr.InsertExpr) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.InsertCell(idx, e)
	}
}

func removeCellAction(idx uint32) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.RemoveCell(idx)
	}
}

func setExprAction(idx uint32, e expr.InsertExpr) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.SetExpr(idx, e)
	}
}

func assignNameAction(idx uint32, name string) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.AssignName(idx, name)
	}
}

func assignPositionAction(idx uint32, pos palette.Position) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.AssignPosition(idx, pos)
	}
}

func assignGroupAction(idx uint32, group string) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.AssignGroup(idx, group)
	}
}

func clearNamesAction(idx uint32) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.ClearNames(idx), nil
	}
}

func clearPositionAction(idx uint32) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.ClearPosition(idx), nil
	}
}

func clearGroupAction(idx uint32) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.ClearGroup(idx), nil
	}
}

func setParametersAction(s palette.Settings) Action {
	return func(p *palette.Palette) (Step, error) {
		return p.SetParameters(s), nil
	}
}

func setCursorAction(idx uint32) Action {
	return func(p *palette.Palette) (Step, error) {
		prev := p.Cursor()
		p.SetCursor(idx)
		return cursorStep{prev: prev}, nil
	}
}

type cursorStep struct{ prev uint32 }

func (s cursorStep) Apply(p *palette.Palette) { p.SetCursor(s.prev) }
