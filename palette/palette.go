// Package palette implements the Atma data model: a sparse,
// index-stable map of cells plus the bidirectional name/position/group
// metadata maps of spec §3, and the primitive operations of spec §4.3
// that mutate them, each returning a precise Inverse.
package palette

import (
	"sort"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/expr"
)

// Palette is an ordered sparse map of index to Cell, plus the
// auxiliary name/position/group maps, per spec §3. It is not
// thread-safe; callers wanting concurrent access must serialize it
// themselves (spec §5).
type Palette struct {
	cells map[uint32]Cell

	nameToIndex map[string]uint32
	indexToName map[uint32]string

	posToIndex map[Position]uint32
	indexToPos map[uint32]Position

	groupToIndices map[string][]uint32
	indexToGroups  map[uint32]map[string]int // group name -> 0-based position

	cursor   uint32
	Limits   Limits
	Settings Settings
}

// New returns an empty Palette with default limits and settings.
func New() *Palette {
	return &Palette{
		cells:          make(map[uint32]Cell),
		nameToIndex:    make(map[string]uint32),
		indexToName:    make(map[uint32]string),
		posToIndex:     make(map[Position]uint32),
		indexToPos:     make(map[uint32]Position),
		groupToIndices: make(map[string][]uint32),
		indexToGroups:  make(map[uint32]map[string]int),
		Limits:         DefaultLimits,
		Settings:       DefaultSettings(),
	}
}

// Cursor returns the current insertion cursor index.
func (p *Palette) Cursor() uint32 { return p.cursor }

// SetCursor overwrites the cursor index directly (used by `set
// cursor`).
func (p *Palette) SetCursor(idx uint32) { p.cursor = idx }

// Occupied reports whether idx has a Cell.
func (p *Palette) Occupied(idx uint32) bool {
	_, ok := p.cells[idx]
	return ok
}

// Cell returns the cell at idx.
func (p *Palette) Cell(idx uint32) (Cell, bool) {
	c, ok := p.cells[idx]
	return c, ok
}

// Indices returns every occupied index, sorted ascending.
func (p *Palette) Indices() []uint32 {
	out := make([]uint32, 0, len(p.cells))
	for idx := range p.cells {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NameOf / PositionOf / GroupsOf expose the reverse side of the
// bidirectional maps.
func (p *Palette) NameOf(idx uint32) (string, bool) {
	n, ok := p.indexToName[idx]
	return n, ok
}

func (p *Palette) PositionOf(idx uint32) (Position, bool) {
	pos, ok := p.indexToPos[idx]
	return pos, ok
}

func (p *Palette) GroupsOf(idx uint32) map[string]int {
	return p.indexToGroups[idx]
}

// IndexByName / IndexByPosition / IndexInGroup resolve metadata to an
// index.
func (p *Palette) IndexByName(name string) (uint32, bool) {
	idx, ok := p.nameToIndex[name]
	return idx, ok
}

func (p *Palette) IndexByPosition(pos Position) (uint32, bool) {
	idx, ok := p.posToIndex[pos]
	return idx, ok
}

func (p *Palette) IndexInGroup(group string, k uint32) (uint32, bool) {
	indices := p.groupToIndices[group]
	if int(k) >= len(indices) {
		return 0, false
	}
	return indices[k], true
}

func (p *Palette) GroupLen(group string) int { return len(p.groupToIndices[group]) }

// LowestFreeIndexFrom returns the lowest unoccupied index >= from, the
// free-index allocation rule of spec §4.3.
func (p *Palette) LowestFreeIndexFrom(from uint32) uint32 {
	idx := from
	for p.Occupied(idx) {
		idx++
	}
	return idx
}

// InsertCell creates a cell at idx. Fails with AlreadyOccupiedError if
// idx is already occupied.
func (p *Palette) InsertCell(idx uint32, e expr.InsertExpr) (Inverse, error) {
	if p.Occupied(idx) {
		return Inverse{}, atmaerr.Wrap(&atmaerr.AlreadyOccupiedError{Index: idx})
	}
	p.cells[idx] = Cell{Expr: e}
	return Inverse{Kind: InvInsertCell, Index: idx}, nil
}

// RemoveCell destroys the cell at idx; metadata is left untouched
// (spec §4.3/§9: metadata survives as a reservation).
func (p *Palette) RemoveCell(idx uint32) (Inverse, error) {
	c, ok := p.cells[idx]
	if !ok {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NotOccupiedError{Index: idx})
	}
	delete(p.cells, idx)
	return Inverse{Kind: InvRemoveCell, Index: idx, Expr: c.Expr}, nil
}

// SetExpr replaces the expression of an occupied cell.
func (p *Palette) SetExpr(idx uint32, e expr.InsertExpr) (Inverse, error) {
	c, ok := p.cells[idx]
	if !ok {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NotOccupiedError{Index: idx})
	}
	prev := c.Expr
	p.cells[idx] = Cell{Expr: e}
	return Inverse{Kind: InvSetExpr, Index: idx, Expr: prev}, nil
}

func (p *Palette) bindName(idx uint32, name string) {
	if prev, ok := p.indexToName[idx]; ok && prev != name {
		delete(p.nameToIndex, prev)
	}
	p.nameToIndex[name] = idx
	p.indexToName[idx] = name
}

func (p *Palette) unbindName(name string) {
	idx, ok := p.nameToIndex[name]
	if !ok {
		return
	}
	delete(p.nameToIndex, name)
	if p.indexToName[idx] == name {
		delete(p.indexToName, idx)
	}
}

// AssignName binds name to idx. Fails with NameConflictError if name
// is already bound to a different index.
func (p *Palette) AssignName(idx uint32, name string) (Inverse, error) {
	if owner, ok := p.nameToIndex[name]; ok && owner != idx {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NameConflictError{Name: name, Owner: owner})
	}
	prevName, hadName := p.indexToName[idx]

	var batch []Inverse
	if hadName && prevName != name {
		batch = append(batch, Inverse{Kind: InvUnassignName, Index: idx, Name: prevName})
	}
	p.bindName(idx, name)
	if len(batch) > 0 {
		batch = append(batch, Inverse{Kind: InvAssignName, Index: idx, Name: name})
		return Inverse{Kind: InvClearNames, Batch: batch}, nil
	}
	return Inverse{Kind: InvAssignName, Index: idx, Name: name}, nil
}

// UnassignName removes the binding for name. Fails with NotFoundError
// if name is not assigned.
func (p *Palette) UnassignName(name string) (Inverse, error) {
	idx, ok := p.nameToIndex[name]
	if !ok {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NotFoundError{Kind: "name", Key: name})
	}
	p.unbindName(name)
	return Inverse{Kind: InvUnassignName, Index: idx, Name: name}, nil
}

// ClearNames drops the name of idx, if any. It is a no-op (recorded as
// a no-op Inverse) when idx has no name.
func (p *Palette) ClearNames(idx uint32) Inverse {
	name, ok := p.indexToName[idx]
	if !ok {
		return noopInverse()
	}
	p.unbindName(name)
	return Inverse{Kind: InvUnassignName, Index: idx, Name: name}
}

func (p *Palette) bindPosition(idx uint32, pos Position) {
	if prev, ok := p.indexToPos[idx]; ok && prev != pos {
		delete(p.posToIndex, prev)
	}
	p.posToIndex[pos] = idx
	p.indexToPos[idx] = pos
}

func (p *Palette) unbindPosition(pos Position) {
	idx, ok := p.posToIndex[pos]
	if !ok {
		return
	}
	delete(p.posToIndex, pos)
	if p.indexToPos[idx] == pos {
		delete(p.indexToPos, idx)
	}
}

// AssignPosition binds pos to idx. Fails with PositionConflictError if
// pos is already bound to a different index.
func (p *Palette) AssignPosition(idx uint32, pos Position) (Inverse, error) {
	if owner, ok := p.posToIndex[pos]; ok && owner != idx {
		return Inverse{}, atmaerr.Wrap(&atmaerr.PositionConflictError{Page: pos.Page, Line: pos.Line, Column: pos.Column, Owner: owner})
	}
	prevPos, hadPos := p.indexToPos[idx]

	var batch []Inverse
	if hadPos && prevPos != pos {
		batch = append(batch, Inverse{Kind: InvUnassignPosition, Index: idx, Pos: prevPos})
	}
	p.bindPosition(idx, pos)
	if len(batch) > 0 {
		batch = append(batch, Inverse{Kind: InvAssignPosition, Index: idx, Pos: pos})
		return Inverse{Kind: InvClearPosition, Batch: batch}, nil
	}
	return Inverse{Kind: InvAssignPosition, Index: idx, Pos: pos}, nil
}

// UnassignPosition removes the binding for pos.
func (p *Palette) UnassignPosition(pos Position) (Inverse, error) {
	idx, ok := p.posToIndex[pos]
	if !ok {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NotFoundError{Kind: "position", Key: posKey(pos)})
	}
	p.unbindPosition(pos)
	return Inverse{Kind: InvUnassignPosition, Index: idx, Pos: pos}, nil
}

// ClearPosition drops the position of idx, if any.
func (p *Palette) ClearPosition(idx uint32) Inverse {
	pos, ok := p.indexToPos[idx]
	if !ok {
		return noopInverse()
	}
	p.unbindPosition(pos)
	return Inverse{Kind: InvUnassignPosition, Index: idx, Pos: pos}
}

func (p *Palette) insertIntoGroupAt(idx uint32, group string, at int) {
	indices := p.groupToIndices[group]
	if at < 0 || at > len(indices) {
		at = len(indices)
	}
	indices = append(indices, 0)
	copy(indices[at+1:], indices[at:])
	indices[at] = idx
	p.groupToIndices[group] = indices
	p.reindexGroup(group)
}

func (p *Palette) removeFromGroup(idx uint32, group string) {
	indices := p.groupToIndices[group]
	for i, v := range indices {
		if v == idx {
			indices = append(indices[:i], indices[i+1:]...)
			break
		}
	}
	if len(indices) == 0 {
		delete(p.groupToIndices, group)
	} else {
		p.groupToIndices[group] = indices
	}
	if m, ok := p.indexToGroups[idx]; ok {
		delete(m, group)
		if len(m) == 0 {
			delete(p.indexToGroups, idx)
		}
	}
	p.reindexGroup(group)
}

func (p *Palette) reindexGroup(group string) {
	for k, idx := range p.groupToIndices[group] {
		if p.indexToGroups[idx] == nil {
			p.indexToGroups[idx] = make(map[string]int)
		}
		p.indexToGroups[idx][group] = k
	}
}

// AssignGroup appends idx to group, its position within the group
// being the append order (spec §3/§4.3).
func (p *Palette) AssignGroup(idx uint32, group string) (Inverse, error) {
	if _, already := p.indexToGroups[idx][group]; already {
		return noopInverse(), nil
	}
	p.insertIntoGroupAt(idx, group, len(p.groupToIndices[group]))
	return Inverse{Kind: InvAssignGroup, Index: idx, Group: group}, nil
}

// UnassignGroup removes idx from group, recording its prior position
// within the group so the inverse (unassign_group_at) can restore it
// exactly.
func (p *Palette) UnassignGroup(idx uint32, group string) (Inverse, error) {
	at, ok := p.indexToGroups[idx][group]
	if !ok {
		return Inverse{}, atmaerr.Wrap(&atmaerr.NotFoundError{Kind: "group", Key: group})
	}
	p.removeFromGroup(idx, group)
	return Inverse{Kind: InvUnassignGroupAt, Index: idx, Group: group, GroupPos: at}, nil
}

// ClearGroup removes idx from every group it belongs to.
func (p *Palette) ClearGroup(idx uint32) Inverse {
	groups := p.indexToGroups[idx]
	if len(groups) == 0 {
		return noopInverse()
	}
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)
	var batch []Inverse
	for _, g := range names {
		inv, _ := p.UnassignGroup(idx, g)
		if inv.Kind != InvNoop {
			batch = append(batch, inv)
		}
	}
	return Inverse{Kind: InvClearGroup, Batch: batch}
}

func posKey(p Position) string { return p.String() }
