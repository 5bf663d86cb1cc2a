package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

func TestDispatchInsertThenDeleteAll(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()

	err := Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false)
	require.NoError(t, err)
	require.True(t, p.Occupied(0))

	err = Dispatch(l, p, Command{Verb: "delete", Args: []string{"*"}}, false)
	require.NoError(t, err)
	require.False(t, p.Occupied(0))
}

func TestDispatchInsertWithName(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()

	err := Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}, Flags: map[string]string{"name": "sunset"}}, false)
	require.NoError(t, err)
	idx, ok := p.IndexByName("sunset")
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
}

func TestDispatchUnknownCommandSuggests(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	err := Dispatch(l, p, Command{Verb: "insrt", Args: []string{"#ff0000"}}, false)
	require.Error(t, err)
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	require.Contains(t, unknown.Suggestions, "insert")
}

func TestDispatchRejectsNewUndoRedoInScriptContext(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	err := Dispatch(l, p, Command{Verb: "undo"}, true)
	require.Error(t, err)
	err = Dispatch(l, p, Command{Verb: "new"}, true)
	require.Error(t, err)
	err = Dispatch(l, p, Command{Verb: "redo"}, true)
	require.Error(t, err)
}

func TestDispatchUndoRedoCount(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false))
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#00ff00"}}, false))

	require.NoError(t, Dispatch(l, p, Command{Verb: "undo", Args: []string{"2"}}, false))
	require.False(t, p.Occupied(0))
	require.False(t, p.Occupied(1))

	require.NoError(t, Dispatch(l, p, Command{Verb: "redo", Args: []string{"2"}}, false))
	require.True(t, p.Occupied(0))
	require.True(t, p.Occupied(1))
}

func TestDispatchSetNameAndGroup(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false))

	require.NoError(t, Dispatch(l, p, Command{Verb: "set", Args: []string{"name", ":0", "sunset"}}, false))
	idx, ok := p.IndexByName("sunset")
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)

	require.NoError(t, Dispatch(l, p, Command{Verb: "set", Args: []string{"group", ":0", "warm"}}, false))
	idx, ok = p.IndexInGroup("warm", 0)
	require.True(t, ok)
	require.Equal(t, uint32(0), idx)
}

func TestDispatchSetExpr(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false))
	require.NoError(t, Dispatch(l, p, Command{Verb: "set", Args: []string{"expr", ":0", "#00ff00"}}, false))
	c, _ := p.Cell(0)
	require.Equal(t, "#00ff00", c.Expr.ColorLit.Hex())
}

func TestDispatchSetHistoryDisable(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	require.NoError(t, Dispatch(l, p, Command{Verb: "set", Args: []string{"history", "disable"}}, false))
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false))
	require.Equal(t, 0, l.UndoDepth())
}

func TestDispatchMoveToTarget(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	require.NoError(t, Dispatch(l, p, Command{Verb: "insert", Args: []string{"#ff0000"}}, false))
	require.NoError(t, Dispatch(l, p, Command{Verb: "move", Args: []string{":0"}, Flags: map[string]string{"to": ":5"}}, false))
	require.False(t, p.Occupied(0))
	require.True(t, p.Occupied(5))
}

func TestSuggestThreshold(t *testing.T) {
	names := []string{"insert", "delete", "move", "set", "undo", "redo"}
	require.Contains(t, Suggest("undp", names), "undo")
	require.Empty(t, Suggest("zzzzzzzzzz", names))
}
