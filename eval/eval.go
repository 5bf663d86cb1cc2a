// Package eval resolves the expression stored in a palette cell down
// to a concrete color.Color, following references to other cells and
// detecting cycles along the way, per spec §4.4.
package eval

import (
	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/color"
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/palette"
)

// Resolver looks a CellRef up to a concrete index, the one piece of
// palette knowledge Evaluator needs beyond cell contents.
type Resolver interface {
	ResolveRef(ref expr.CellRef) (uint32, bool)
	Cell(idx uint32) (palette.Cell, bool)
}

// paletteResolver adapts *palette.Palette to Resolver.
type paletteResolver struct{ p *palette.Palette }

// NewResolver wraps a Palette for use with Evaluator.
func NewResolver(p *palette.Palette) Resolver { return paletteResolver{p: p} }

func (r paletteResolver) Cell(idx uint32) (palette.Cell, bool) { return r.p.Cell(idx) }

func (r paletteResolver) ResolveRef(ref expr.CellRef) (uint32, bool) {
	switch ref.Kind {
	case expr.RefIndex:
		return ref.Index, true
	case expr.RefName:
		return r.p.IndexByName(ref.Name)
	case expr.RefGroup:
		return r.p.IndexInGroup(ref.Name, ref.Pos)
	case expr.RefPosition:
		return r.p.IndexByPosition(palette.Position{Page: ref.Page, Line: ref.Line, Column: ref.Column})
	default:
		return 0, false
	}
}

// Evaluator resolves InsertExpr values against a Resolver, memoizing
// results within one Eval call and detecting reference cycles via a
// per-call visited set (spec §4.4 steps 1-5).
type Evaluator struct {
	r         Resolver
	memo      map[uint32]color.Color
	onStack   map[uint32]bool
	pathOrder []uint32
}

// NewEvaluator creates an Evaluator bound to r. A fresh Evaluator
// should be used per top-level Eval call so memoization never leaks
// stale values across palette mutations.
func NewEvaluator(r Resolver) *Evaluator {
	return &Evaluator{
		r:       r,
		memo:    make(map[uint32]color.Color),
		onStack: make(map[uint32]bool),
	}
}

// EvalIndex resolves the color stored (directly or transitively) at
// idx.
func (e *Evaluator) EvalIndex(idx uint32) (color.Color, error) {
	if c, ok := e.memo[idx]; ok {
		return c, nil
	}
	if e.onStack[idx] {
		path := append(append([]uint32{}, e.pathOrder...), idx)
		return color.Color{}, atmaerr.Wrap(&atmaerr.CycleDetectedError{Path: path})
	}
	cell, ok := e.r.Cell(idx)
	if !ok {
		return color.Color{}, atmaerr.Wrap(&atmaerr.NotOccupiedError{Index: idx})
	}

	e.onStack[idx] = true
	e.pathOrder = append(e.pathOrder, idx)
	c, err := e.EvalExpr(cell.Expr)
	e.pathOrder = e.pathOrder[:len(e.pathOrder)-1]
	delete(e.onStack, idx)
	if err != nil {
		return color.Color{}, err
	}

	e.memo[idx] = c
	return c, nil
}

func (e *Evaluator) resolveRef(ref expr.CellRef) (color.Color, error) {
	idx, ok := e.r.ResolveRef(ref)
	if !ok {
		return color.Color{}, atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: ref.String()})
	}
	return e.EvalIndex(idx)
}

// EvalExpr evaluates one InsertExpr value directly, without going
// through a cell's index. A ramp's expansion must be evaluated this
// way: each expanded child is a Binary expression, never stored at
// any index of its own until Insert commits it.
func (e *Evaluator) EvalExpr(x expr.InsertExpr) (color.Color, error) {
	switch x.Kind {
	case expr.ExprEmpty:
		return color.Color{}, nil
	case expr.ExprColor:
		return x.ColorLit, nil
	case expr.ExprRef, expr.ExprCopy:
		return e.resolveRef(x.Ref)
	case expr.ExprUnary:
		a, err := e.resolveRef(x.TargetA)
		if err != nil {
			return color.Color{}, err
		}
		return evalUnary(x.Op, a, x.Value), nil
	case expr.ExprBinary:
		a, err := e.resolveRef(x.TargetA)
		if err != nil {
			return color.Color{}, err
		}
		b, err := e.resolveRef(x.TargetB)
		if err != nil {
			return color.Color{}, err
		}
		t, space := x.Interp.Resolve()
		if x.HasSpace {
			space = x.Space
		}
		return evalBinary(x.Op, a, b, t, space), nil
	case expr.ExprRamp:
		children, err := x.Expand()
		if err != nil {
			return color.Color{}, err
		}
		if len(children) == 0 {
			return color.Color{}, nil
		}
		return e.EvalExpr(children[0])
	default:
		return color.Color{}, atmaerr.Wrap(&atmaerr.ParseError{Context: "eval", Expected: "known ExprKind"})
	}
}

func evalUnary(op string, a color.Color, value float64) color.Color {
	switch op {
	case "lighten":
		return color.Lighten(a, value)
	case "darken":
		return color.Darken(a, value)
	case "saturate":
		return color.Saturate(a, value)
	case "desaturate":
		return color.Desaturate(a, value)
	case "hue":
		return color.Hue(a, value)
	default:
		return a
	}
}

func evalBinary(op string, a, b color.Color, t float64, space color.Space) color.Color {
	switch op {
	case "blend":
		return color.Blend(a, b, t, space)
	case "multiply":
		return color.Multiply(a, b, t, space)
	case "screen":
		return color.Screen(a, b, t, space)
	default:
		return a
	}
}

// EvalRamp resolves every child of a Ramp expression to a concrete
// color, in order.
func EvalRamp(r Resolver, x expr.InsertExpr) ([]color.Color, error) {
	children, err := x.Expand()
	if err != nil {
		return nil, err
	}
	out := make([]color.Color, 0, len(children))
	for _, child := range children {
		ev := NewEvaluator(r)
		c, err := ev.EvalExpr(child)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
