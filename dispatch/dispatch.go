// Package dispatch translates a parsed command line into a call
// against the oplog composite planners, following the teacher's
// command-table-plus-suggestion shape (cmd/chai/shell/shell.go).
package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/atma-editor/atma/atmaerr"
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

// commandNames is the editing-command surface a script or CLI verb may
// name; used only to build "did you mean" suggestions.
var commandNames = []string{"insert", "delete", "move", "set", "undo", "redo"}

// scriptCommandNames is the subset the script runner allows (spec
// §4.6): `new`, `undo`, `redo`, `export`, `import` are rejected there.
var scriptCommandNames = []string{"insert", "delete", "move", "set"}

// shouldSuggest matches the teacher's half-the-name-length distance
// threshold for Levenshtein-based command suggestions.
func shouldSuggest(name, in string) bool {
	return levenshtein.ComputeDistance(name, in) < (len(name)/2 + 1)
}

// Suggest returns candidate command names close enough to in to guess
// the user meant one of them.
func Suggest(in string, names []string) []string {
	var out []string
	for _, n := range names {
		if shouldSuggest(n, in) {
			out = append(out, n)
		}
	}
	return out
}

// UnknownCommandError reports an unrecognised command verb, with
// suggestions attached for display.
type UnknownCommandError struct {
	Verb        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown command %q", e.Verb)
	}
	return fmt.Sprintf("unknown command %q, did you mean: %s", e.Verb, strings.Join(e.Suggestions, ", "))
}

// Command is a parsed, tagged editing command (spec §6). Args holds the
// positional tokens after the verb; Flags holds the recognised
// `--name value` pairs.
type Command struct {
	Verb  string
	Args  []string
	Flags map[string]string
}

// Dispatch executes cmd against p and l, choosing the composite
// planner that matches its verb.
func Dispatch(l *oplog.Log, p *palette.Palette, cmd Command, scriptContext bool) error {
	names := commandNames
	if scriptContext {
		names = scriptCommandNames
		switch cmd.Verb {
		case "new", "undo", "redo", "export", "import":
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "script", Expected: "insert, delete, move or set", Rest: cmd.Verb})
		}
	}

	switch cmd.Verb {
	case "insert":
		return dispatchInsert(l, p, cmd)
	case "delete":
		return dispatchDelete(l, p, cmd)
	case "move":
		return dispatchMove(l, p, cmd)
	case "set":
		return dispatchSet(l, p, cmd)
	case "undo":
		return dispatchUndo(l, p, cmd)
	case "redo":
		return dispatchRedo(l, p, cmd)
	default:
		return &UnknownCommandError{Verb: cmd.Verb, Suggestions: Suggest(cmd.Verb, names)}
	}
}

func dispatchInsert(l *oplog.Log, p *palette.Palette, cmd Command) error {
	if len(cmd.Args) == 0 {
		return atmaerr.Wrap(&atmaerr.ParseError{Context: "insert", Expected: "InsertExpr"})
	}
	e, err := expr.Parse(cmd.Args[0])
	if err != nil {
		return err
	}
	pos := oplog.NoPositioning()
	if at, ok := cmd.Flags["at"]; ok {
		ref, err := expr.ParseCellRef(at)
		if err != nil {
			return err
		}
		r := resolverFor(p)
		idx, ok := r(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: at})
		}
		pos = oplog.StartAt(idx)
	}

	var insertErr error
	if e.Kind == expr.ExprRamp {
		insertErr = oplog.InsertRamp(l, p, e, pos, p.Settings.OverwritePolicy, p.Settings.RoomPolicy)
	} else {
		insertErr = oplog.InsertRange(l, p, []expr.InsertExpr{e}, pos, p.Settings.OverwritePolicy, p.Settings.RoomPolicy)
	}
	if insertErr != nil {
		return insertErr
	}

	if name, ok := cmd.Flags["name"]; ok {
		idx := p.Cursor()
		if idx > 0 {
			idx--
		}
		if err := oplog.AssignName(l, p, idx, name); err != nil {
			return err
		}
	}
	return nil
}

func dispatchDelete(l *oplog.Log, p *palette.Palette, cmd Command) error {
	sel, err := parseSelectionArg(cmd)
	if err != nil {
		return err
	}
	indices, err := resolveSelection(p, sel)
	if err != nil {
		return err
	}
	clearOrphans := cmd.Flags["clear-orphans"] == "true"
	return oplog.DeleteRange(l, p, indices, clearOrphans)
}

func dispatchMove(l *oplog.Log, p *palette.Palette, cmd Command) error {
	sel, err := parseSelectionArg(cmd)
	if err != nil {
		return err
	}
	indices, err := resolveSelection(p, sel)
	if err != nil {
		return err
	}
	pos := oplog.NoPositioning()
	if to, ok := cmd.Flags["to"]; ok {
		ref, err := expr.ParseCellRef(to)
		if err != nil {
			return err
		}
		r := resolverFor(p)
		idx, ok := r(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: to})
		}
		pos = oplog.StartAt(idx)
	}
	return oplog.MoveRange(l, p, indices, pos, p.Settings.OverwritePolicy, p.Settings.RoomPolicy)
}

func dispatchSet(l *oplog.Log, p *palette.Palette, cmd Command) error {
	if len(cmd.Args) == 0 {
		return atmaerr.Wrap(&atmaerr.ParseError{Context: "set", Expected: "name, group, expr, cursor or history"})
	}
	sub, rest := cmd.Args[0], cmd.Args[1:]
	switch sub {
	case "expr":
		if len(rest) < 2 {
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set expr", Expected: "CellRef and InsertExpr"})
		}
		ref, err := expr.ParseCellRef(rest[0])
		if err != nil {
			return err
		}
		idx, ok := resolverFor(p)(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: rest[0]})
		}
		e, err := expr.Parse(rest[1])
		if err != nil {
			return err
		}
		return oplog.SetRange(l, p, []uint32{idx}, e)
	case "cursor":
		if len(rest) < 1 {
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set cursor", Expected: "position or index"})
		}
		ref, err := expr.ParseCellRef(rest[0])
		if err != nil {
			return err
		}
		idx, ok := resolverFor(p)(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: rest[0]})
		}
		return oplog.SetCursor(l, p, idx)
	case "history":
		if len(rest) < 1 {
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set history", Expected: "enable, disable or clear"})
		}
		switch rest[0] {
		case "enable":
			l.SetEnabled(true)
		case "disable":
			l.SetEnabled(false)
		case "clear":
			l.Clear()
		default:
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set history", Expected: "enable, disable or clear", Rest: rest[0]})
		}
		return nil
	case "group":
		if len(rest) < 1 {
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set group", Expected: "CellRef"})
		}
		ref, err := expr.ParseCellRef(rest[0])
		if err != nil {
			return err
		}
		idx, ok := resolverFor(p)(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: rest[0]})
		}
		if cmd.Flags["remove"] == "true" && len(rest) >= 2 {
			return oplog.UnassignGroup(l, p, idx, rest[1])
		}
		if len(rest) >= 2 {
			return oplog.AssignGroup(l, p, idx, rest[1])
		}
		return atmaerr.Wrap(&atmaerr.ParseError{Context: "set group", Expected: "group name"})
	case "name":
		if len(rest) < 1 {
			return atmaerr.Wrap(&atmaerr.ParseError{Context: "set name", Expected: "position selector"})
		}
		ref, err := expr.ParseCellRef(rest[0])
		if err != nil {
			return err
		}
		idx, ok := resolverFor(p)(ref)
		if !ok {
			return atmaerr.Wrap(&atmaerr.UnknownRefError{Ref: rest[0]})
		}
		if len(rest) >= 2 {
			return oplog.AssignName(l, p, idx, rest[1])
		}
		n, _ := p.NameOf(idx)
		return oplog.UnassignName(l, p, n)
	default:
		return atmaerr.Wrap(&atmaerr.ParseError{Context: "set", Expected: "name, group, expr, cursor or history", Rest: sub})
	}
}

func dispatchUndo(l *oplog.Log, p *palette.Palette, cmd Command) error {
	count := parseCount(cmd)
	for i := 0; i < count; i++ {
		if err := l.Undo(p); err != nil {
			return err
		}
	}
	return nil
}

func dispatchRedo(l *oplog.Log, p *palette.Palette, cmd Command) error {
	count := parseCount(cmd)
	for i := 0; i < count; i++ {
		if err := l.Redo(p); err != nil {
			return err
		}
	}
	return nil
}

func parseCount(cmd Command) int {
	if len(cmd.Args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseSelectionArg(cmd Command) (expr.Selection, error) {
	if len(cmd.Args) == 0 {
		return expr.AllSelection(), nil
	}
	return expr.ParseSelection(cmd.Args[0])
}

func resolveSelection(p *palette.Palette, sel expr.Selection) ([]uint32, error) {
	return oplog.ResolveSelection(p, sel)
}

func resolverFor(p *palette.Palette) func(expr.CellRef) (uint32, bool) {
	return func(ref expr.CellRef) (uint32, bool) {
		switch ref.Kind {
		case expr.RefIndex:
			return ref.Index, true
		case expr.RefName:
			return p.IndexByName(ref.Name)
		case expr.RefGroup:
			return p.IndexInGroup(ref.Name, ref.Pos)
		case expr.RefPosition:
			return p.IndexByPosition(palette.Position{Page: ref.Page, Line: ref.Line, Column: ref.Column})
		default:
			return 0, false
		}
	}
}
