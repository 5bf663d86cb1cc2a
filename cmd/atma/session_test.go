package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

func TestLoadPaletteMissingFileReturnsEmpty(t *testing.T) {
	p, err := loadPalette(filepath.Join(t.TempDir(), "missing.atma.json"))
	require.NoError(t, err)
	require.Empty(t, p.Indices())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")

	p := palette.New()
	e, err := expr.Parse("#ff0000")
	require.NoError(t, err)
	_, err = p.InsertCell(0, e)
	require.NoError(t, err)
	_, err = p.AssignName(0, "sunset")
	require.NoError(t, err)
	_, err = p.AssignPosition(0, palette.Position{Page: 0, Line: 1, Column: 2})
	require.NoError(t, err)
	_, err = p.AssignGroup(0, "warm")
	require.NoError(t, err)
	p.SetCursor(3)

	require.NoError(t, savePalette(path, p))

	q, err := loadPalette(path)
	require.NoError(t, err)

	require.True(t, q.Occupied(0))
	c, _ := q.Cell(0)
	require.True(t, c.Expr.Equal(e))
	name, ok := q.NameOf(0)
	require.True(t, ok)
	require.Equal(t, "sunset", name)
	pos, ok := q.PositionOf(0)
	require.True(t, ok)
	require.Equal(t, palette.Position{Page: 0, Line: 1, Column: 2}, pos)
	idx, ok := q.IndexInGroup("warm", 0)
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
	require.Equal(t, uint32(3), q.Cursor())
}

func TestLoadPaletteCorruptCellExprErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := []byte(`{"cells": {"0": "lighten(:1"}}`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := loadPalette(path)
	require.Error(t, err)
}

func TestNewLogForRespectsHistoryDisabledSetting(t *testing.T) {
	p := palette.New()
	p.Settings.HistoryEnabled = false
	l := newLogFor(p)

	e, err := expr.Parse("#ff0000")
	require.NoError(t, err)
	err = oplog.InsertRange(l, p, []expr.InsertExpr{e}, oplog.NoPositioning(), p.Settings.OverwritePolicy, p.Settings.RoomPolicy)
	require.NoError(t, err)
	require.Equal(t, 0, l.UndoDepth())
}
