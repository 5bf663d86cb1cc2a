package oplog

import "github.com/atma-editor/atma/palette"

// The functions in this file wrap single palette metadata primitives
// as one-action composites, so commands like `set name` or `insert
// --name` push proper undo entries instead of mutating the palette
// outside the log.

func AssignName(l *Log, p *palette.Palette, idx uint32, name string) error {
	return l.Run(p, "assign-name", []Action{assignNameAction(idx, name)})
}

func UnassignName(l *Log, p *palette.Palette, name string) error {
	return l.Run(p, "unassign-name", []Action{
		func(p *palette.Palette) (Step, error) { return p.UnassignName(name) },
	})
}

func AssignGroup(l *Log, p *palette.Palette, idx uint32, group string) error {
	return l.Run(p, "assign-group", []Action{assignGroupAction(idx, group)})
}

func UnassignGroup(l *Log, p *palette.Palette, idx uint32, group string) error {
	return l.Run(p, "unassign-group", []Action{
		func(p *palette.Palette) (Step, error) { return p.UnassignGroup(idx, group) },
	})
}

func SetCursor(l *Log, p *palette.Palette, idx uint32) error {
	return l.Run(p, "set-cursor", []Action{setCursorAction(idx)})
}
