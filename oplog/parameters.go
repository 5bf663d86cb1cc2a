package oplog

import "github.com/atma-editor/atma/palette"

// SetParameters applies a new Settings value as an undoable composite.
// Per spec §4.6, settings changes made inside a script apply to the
// session only and are never written back to a persisted config; that
// distinction is the caller's responsibility (the script runner simply
// never persists after running).
func SetParameters(l *Log, p *palette.Palette, s palette.Settings) error {
	return l.Run(p, "set-parameters", []Action{setParametersAction(s)})
}
