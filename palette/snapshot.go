package palette

import "github.com/atma-editor/atma/expr"

// Snapshot is the serializable surface of a Palette, per spec §6: the
// cell map, every metadata map, the cursor, and settings. It holds no
// history; callers that persist undo/redo stacks do so alongside a
// Snapshot, not inside it.
type Snapshot struct {
	Cells    map[uint32]expr.InsertExpr
	Names    map[string]uint32
	Positions map[Position]uint32
	Groups   map[string][]uint32
	Cursor   uint32
	Limits   Limits
	Settings Settings
}

// Snapshot copies p's current state into a Snapshot safe to serialize
// or compare, decoupled from any later mutation of p.
func (p *Palette) Snapshot() Snapshot {
	cells := make(map[uint32]expr.InsertExpr, len(p.cells))
	for idx, c := range p.cells {
		cells[idx] = c.Expr
	}
	names := make(map[string]uint32, len(p.nameToIndex))
	for n, idx := range p.nameToIndex {
		names[n] = idx
	}
	positions := make(map[Position]uint32, len(p.posToIndex))
	for pos, idx := range p.posToIndex {
		positions[pos] = idx
	}
	groups := make(map[string][]uint32, len(p.groupToIndices))
	for g, indices := range p.groupToIndices {
		cp := make([]uint32, len(indices))
		copy(cp, indices)
		groups[g] = cp
	}
	return Snapshot{
		Cells:     cells,
		Names:     names,
		Positions: positions,
		Groups:    groups,
		Cursor:    p.cursor,
		Limits:    p.Limits,
		Settings:  p.Settings,
	}
}

// Restore replaces p's entire state with snapshot, used when loading a
// persisted palette. History is not affected.
func (p *Palette) Restore(snap Snapshot) {
	p.cells = make(map[uint32]Cell, len(snap.Cells))
	for idx, e := range snap.Cells {
		p.cells[idx] = Cell{Expr: e}
	}
	p.nameToIndex = make(map[string]uint32, len(snap.Names))
	p.indexToName = make(map[uint32]string, len(snap.Names))
	for n, idx := range snap.Names {
		p.nameToIndex[n] = idx
		p.indexToName[idx] = n
	}
	p.posToIndex = make(map[Position]uint32, len(snap.Positions))
	p.indexToPos = make(map[uint32]Position, len(snap.Positions))
	for pos, idx := range snap.Positions {
		p.posToIndex[pos] = idx
		p.indexToPos[idx] = pos
	}
	p.groupToIndices = make(map[string][]uint32, len(snap.Groups))
	p.indexToGroups = make(map[uint32]map[string]int, len(snap.Groups))
	for g, indices := range snap.Groups {
		cp := make([]uint32, len(indices))
		copy(cp, indices)
		p.groupToIndices[g] = cp
		p.reindexGroup(g)
	}
	p.cursor = snap.Cursor
	p.Limits = snap.Limits
	p.Settings = snap.Settings
}
