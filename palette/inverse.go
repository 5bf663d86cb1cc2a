package palette

import "github.com/atma-editor/atma/expr"

// InverseKind tags the primitive operations' inverse descriptors.
// Every Palette mutator returns one of these, precise enough to undo
// the mutation exactly (spec §4.3/§4.5).
type InverseKind int

const (
	InvRemoveCell InverseKind = iota
	InvInsertCell
	InvSetExpr
	InvUnassignName
	InvAssignName
	InvClearNames
	InvUnassignPosition
	InvAssignPosition
	InvClearPosition
	InvUnassignGroupAt
	InvAssignGroup
	InvClearGroup
	InvNoop
)

// Inverse is the precise reversal of one primitive mutation. Apply
// replays it against the same Palette that produced it.
type Inverse struct {
	Kind InverseKind

	Index uint32
	Expr  expr.InsertExpr // InvSetExpr, InvInsertCell

	Name string // InvUnassignName, InvAssignName

	Pos Position // InvUnassignPosition, InvAssignPosition

	Group    string // InvUnassignGroupAt, InvAssignGroup, InvClearGroup
	GroupPos int    // InvUnassignGroupAt: prior index within the group

	// ClearNames/ClearPosition/ClearGroup inverses replay a batch of
	// simpler inverses to restore everything that was cleared.
	Batch []Inverse
}

func noopInverse() Inverse { return Inverse{Kind: InvNoop} }

// Apply replays the inverse against p, reversing the primitive that
// produced it. It never itself fails: an Inverse is only ever built
// from a mutation that already succeeded, so replaying it cannot hit
// the same validation errors.
func (inv Inverse) Apply(p *Palette) {
	switch inv.Kind {
	case InvNoop:
		return
	case InvRemoveCell:
		p.cells[inv.Index] = Cell{Expr: inv.Expr}
	case InvInsertCell:
		delete(p.cells, inv.Index)
	case InvSetExpr:
		p.cells[inv.Index] = Cell{Expr: inv.Expr}
	case InvUnassignName:
		p.bindName(inv.Index, inv.Name)
	case InvAssignName:
		p.unbindName(inv.Name)
	case InvClearNames:
		for _, b := range inv.Batch {
			b.Apply(p)
		}
	case InvUnassignPosition:
		p.bindPosition(inv.Index, inv.Pos)
	case InvAssignPosition:
		p.unbindPosition(inv.Pos)
	case InvClearPosition:
		for _, b := range inv.Batch {
			b.Apply(p)
		}
	case InvUnassignGroupAt:
		p.insertIntoGroupAt(inv.Index, inv.Group, inv.GroupPos)
	case InvAssignGroup:
		p.removeFromGroup(inv.Index, inv.Group)
	case InvClearGroup:
		for _, b := range inv.Batch {
			b.Apply(p)
		}
	}
}
