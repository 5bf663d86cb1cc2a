// Package oplog implements the operation log of spec §4.5: composite
// operations built from palette primitives, recorded with enough
// information to undo and redo them exactly, plus the undo/redo stacks
// themselves.
package oplog

import (
	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/palette"
)

// Step is anything that can reverse one already-applied primitive.
// palette.Inverse and palette.SettingsInverse both satisfy it.
type Step interface {
	Apply(p *palette.Palette)
}

// Action performs one primitive mutation and returns the Step that
// reverses it. Composites are built from an ordered list of Actions.
type Action func(p *palette.Palette) (Step, error)

// Composite is one undoable unit of work: an ordered list of Actions,
// plus the Steps produced the last time it ran, used to undo it.
type Composite struct {
	Label   string
	actions []Action
	steps   []Step
}

// apply runs every action in order. If one fails, every already-applied
// action is rolled back via its Step before the error is returned, per
// spec §4.5's cancellation rule: a composite that fails during
// application must roll back using the partial inverse already built.
func (c *Composite) apply(p *palette.Palette) error {
	applied := make([]Step, 0, len(c.actions))
	for _, act := range c.actions {
		step, err := act(p)
		if err != nil {
			for i := len(applied) - 1; i >= 0; i-- {
				applied[i].Apply(p)
			}
			return err
		}
		applied = append(applied, step)
	}
	c.steps = applied
	return nil
}

func (c *Composite) undo(p *palette.Palette) {
	for i := len(c.steps) - 1; i >= 0; i-- {
		c.steps[i].Apply(p)
	}
}

// Log holds the undo and redo stacks of one palette session.
type Log struct {
	undo    []*Composite
	redo    []*Composite
	enabled bool
}

// NewLog returns a Log with history recording on.
func NewLog() *Log { return &Log{enabled: true} }

// Enabled reports whether new composites are recorded onto the undo
// stack.
func (l *Log) Enabled() bool { return l.enabled }

// SetEnabled toggles recording. Disabling does not clear existing
// history; it only stops new composites from being pushed.
func (l *Log) SetEnabled(enabled bool) { l.enabled = enabled }

// UndoDepth and RedoDepth expose stack sizes.
func (l *Log) UndoDepth() int { return len(l.undo) }
func (l *Log) RedoDepth() int { return len(l.redo) }

// Clear empties both stacks, used by `set history clear`. It does not
// touch the palette itself.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}

// Run applies a new composite built from actions. On success, if
// recording is enabled, it is pushed onto the undo stack and the redo
// stack is cleared, per spec §4.5. On failure the palette is left
// exactly as it was before the call.
func (l *Log) Run(p *palette.Palette, label string, actions []Action) error {
	c := &Composite{Label: label, actions: actions}
	if err := c.apply(p); err != nil {
		return err
	}
	if l.enabled {
		l.undo = append(l.undo, c)
		l.redo = nil
	}
	return nil
}

// Undo pops the top composite off the undo stack, reverses it, and
// pushes it onto the redo stack.
func (l *Log) Undo(p *palette.Palette) error {
	if len(l.undo) == 0 {
		return atmaerr.Wrap(&atmaerr.HistoryEmptyError{Stack: "undo"})
	}
	c := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	c.undo(p)
	l.redo = append(l.redo, c)
	return nil
}

// Redo pops the top composite off the redo stack and re-applies it,
// pushing it back onto the undo stack.
func (l *Log) Redo(p *palette.Palette) error {
	if len(l.redo) == 0 {
		return atmaerr.Wrap(&atmaerr.HistoryEmptyError{Stack: "redo"})
	}
	c := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	if err := c.apply(p); err != nil {
		return err
	}
	l.undo = append(l.undo, c)
	return nil
}
