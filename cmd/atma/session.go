package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

// fileFormat is the on-disk shape of a persisted palette. The
// specification leaves the palette codec opaque and out of scope; this
// is the minimal JSON rendering of a Snapshot needed to make the CLI
// usable across invocations, not a format any other component depends
// on. Undo/redo history does not survive a save/load round trip: a
// Composite's Actions are closures over live code, not data, so only
// the Settings and cell/metadata state persist.
type fileFormat struct {
	Cells     map[string]string `json:"cells"`
	Names     map[string]uint32 `json:"names"`
	Positions []posEntry        `json:"positions"`
	Groups    map[string][]uint32 `json:"groups"`
	Cursor    uint32            `json:"cursor"`
	Limits    palette.Limits    `json:"limits"`
	Settings  palette.Settings  `json:"settings"`
}

type posEntry struct {
	Page, Line, Column uint32
	Index              uint32
}

func loadPalette(path string) (*palette.Palette, error) {
	p := palette.New()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("atma: corrupt palette file %s: %w", path, err)
	}

	snap := palette.Snapshot{
		Cells:     make(map[uint32]expr.InsertExpr, len(f.Cells)),
		Names:     f.Names,
		Positions: make(map[palette.Position]uint32, len(f.Positions)),
		Groups:    f.Groups,
		Cursor:    f.Cursor,
		Limits:    f.Limits,
		Settings:  f.Settings,
	}
	for key, text := range f.Cells {
		var idx uint32
		if _, err := fmt.Sscanf(key, "%d", &idx); err != nil {
			return nil, fmt.Errorf("atma: corrupt cell key %q: %w", key, err)
		}
		e, err := expr.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("atma: corrupt cell expr at %s: %w", key, err)
		}
		snap.Cells[idx] = e
	}
	for _, pe := range f.Positions {
		snap.Positions[palette.Position{Page: pe.Page, Line: pe.Line, Column: pe.Column}] = pe.Index
	}
	p.Restore(snap)
	return p, nil
}

func savePalette(path string, p *palette.Palette) error {
	snap := p.Snapshot()
	f := fileFormat{
		Cells:     make(map[string]string, len(snap.Cells)),
		Names:     snap.Names,
		Positions: make([]posEntry, 0, len(snap.Positions)),
		Groups:    snap.Groups,
		Cursor:    snap.Cursor,
		Limits:    snap.Limits,
		Settings:  snap.Settings,
	}
	for idx, e := range snap.Cells {
		f.Cells[fmt.Sprintf("%d", idx)] = e.String()
	}
	for pos, idx := range snap.Positions {
		f.Positions = append(f.Positions, posEntry{Page: pos.Page, Line: pos.Line, Column: pos.Column, Index: idx})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogFor(p *palette.Palette) *oplog.Log {
	l := oplog.NewLog()
	l.SetEnabled(p.Settings.HistoryEnabled)
	return l
}
