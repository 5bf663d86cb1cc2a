package palette

// Settings holds the per-palette defaults that composite operations
// consult when a command does not override them explicitly, per
// SPEC_FULL §12. Changes made through set_parameters are a primitive
// operation like any other and so are undoable; fields assigned
// directly on the struct are not recorded.
type Settings struct {
	OverwritePolicy OverwritePolicy
	RoomPolicy      RoomPolicy
	CursorBehavior  CursorBehavior
	HistoryEnabled  bool
}

// DefaultSettings matches the conservative defaults spec §4.5
// describes for a freshly created palette: refuse to clobber existing
// cells, stop rather than wrap at the grid edge, leave the cursor
// after the last inserted cell, and keep undo history on.
func DefaultSettings() Settings {
	return Settings{
		OverwritePolicy: OverwriteError,
		RoomPolicy:      RoomStop,
		CursorBehavior:  CursorForward,
		HistoryEnabled:  true,
	}
}

// SettingsInverse is the inverse descriptor for set_parameters: the
// prior Settings value, applied wholesale on undo.
type SettingsInverse struct {
	Prev Settings
}

// Apply restores prev onto p.
func (inv SettingsInverse) Apply(p *Palette) {
	p.Settings = inv.Prev
}

// SetParameters overwrites p.Settings, returning the prior value as an
// inverse.
func (p *Palette) SetParameters(s Settings) SettingsInverse {
	prev := p.Settings
	p.Settings = s
	return SettingsInverse{Prev: prev}
}
