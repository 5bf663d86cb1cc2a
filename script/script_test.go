package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

func TestSplitOnUnquotedSemicolons(t *testing.T) {
	stmts := Split(`insert '#ff0000'; insert '#00ff00'`)
	require.Len(t, stmts, 2)
	require.Equal(t, "insert '#ff0000'", stmts[0].Text)
	require.Equal(t, "insert '#00ff00'", stmts[1].Text)
}

func TestSplitIgnoresSemicolonInComment(t *testing.T) {
	stmts := Split("insert '#ff0000'; # trailing; comment\ninsert '#00ff00'")
	require.Len(t, stmts, 2)
}

func TestSplitSkipsEmptyStatements(t *testing.T) {
	stmts := Split("insert '#ff0000';;   ;")
	require.Len(t, stmts, 1)
}

func TestParseStatementSplitsVerbArgsFlags(t *testing.T) {
	cmd := ParseStatement("insert :5 --name sunset --overwrite")
	require.Equal(t, "insert", cmd.Verb)
	require.Equal(t, []string{":5"}, cmd.Args)
	require.Equal(t, "sunset", cmd.Flags["name"])
	require.Equal(t, "true", cmd.Flags["overwrite"])
}

func TestRunExecutesStatementsInOrder(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	err := Run(context.Background(), l, p, "insert :0 --name sunset; insert :1")
	require.NoError(t, err)
	require.True(t, p.Occupied(0))
	require.True(t, p.Occupied(1))
}

func TestRunRejectsUndoInScriptContext(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	err := Run(context.Background(), l, p, "undo")
	require.Error(t, err)
}

func TestRunStopsAtFirstError(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	err := Run(context.Background(), l, p, "insert :0 --at :0; insert :0 --at :0")
	require.Error(t, err)
	require.True(t, p.Occupied(0))
}

func TestRunRespectsCancelledContext(t *testing.T) {
	p := palette.New()
	l := oplog.NewLog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, l, p, "insert :0")
	require.Error(t, err)
}
