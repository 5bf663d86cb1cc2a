package oplog

import (
	"sort"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/eval"
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

// ResolveSelection expands a Selection into the ordered list of
// indices it denotes, per spec §4.3's Selection grammar. Range
// endpoints resolve to indices first and then the selection is the
// inclusive numeric index run between them; this is the most direct
// reading of "an inclusive range of like CellRef variants" for the
// position/name/group variants, which carry no other natural ordering.
func ResolveSelection(p *palette.Palette, sel expr.Selection) ([]uint32, error) {
	r := eval.NewResolver(p)
	switch sel.Kind {
	case expr.SelAll:
		return p.Indices(), nil

	case expr.SelSingle:
		idx, ok := r.ResolveRef(sel.Ref)
		if !ok {
			return nil, atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: sel.Ref.String()})
		}
		return []uint32{idx}, nil

	case expr.SelRange:
		from, ok := r.ResolveRef(sel.From)
		if !ok {
			return nil, atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: sel.From.String()})
		}
		to, ok := r.ResolveRef(sel.To)
		if !ok {
			return nil, atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: sel.To.String()})
		}
		if from > to {
			from, to = to, from
		}
		out := make([]uint32, 0, to-from+1)
		for idx := from; idx <= to; idx++ {
			if p.Occupied(idx) {
				out = append(out, idx)
			}
			if idx == ^uint32(0) {
				break
			}
		}
		return out, nil

	case expr.SelPositionPattern:
		var out []uint32
		for _, idx := range p.Indices() {
			pos, ok := p.PositionOf(idx)
			if !ok {
				continue
			}
			if !sel.Page.Wildcard && pos.Page != sel.Page.Value {
				continue
			}
			if !sel.Line.Wildcard && pos.Line != sel.Line.Value {
				continue
			}
			if !sel.Column.Wildcard && pos.Column != sel.Column.Value {
				continue
			}
			out = append(out, idx)
		}
		sort.Slice(out, func(i, j int) bool {
			a, _ := p.PositionOf(out[i])
			b, _ := p.PositionOf(out[j])
			if a.Page != b.Page {
				return a.Page < b.Page
			}
			if a.Line != b.Line {
				return a.Line < b.Line
			}
			return a.Column < b.Column
		})
		return out, nil

	default:
		return nil, atmaerr.Wrap(&atmaerr.ParseError{Context: "selection", Expected: "known SelectionKind"})
	}
}
