// Package script implements the Atma script runner of spec §4.6: split
// a text stream on unquoted `;`, parse each statement as an editing
// command, and dispatch it against a shared palette and operation log.
package script

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/atma-editor/atma/dispatch"
	"github.com/atma-editor/atma/internal/lexspan"
	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
)

// Statement is one `;`-separated command, still raw text.
type Statement struct {
	Text  string
	Start int
}

// Split breaks src into statements on unquoted, uncommented `;`
// characters, per spec §4.6 ("splits on ';', whitespace otherwise
// insignificant").
func Split(src string) []Statement {
	toks := lexspan.Lex(src)
	significant := lexspan.SkipKinds(lexspan.Comment)(toks)

	var stmts []Statement
	var b strings.Builder
	start := 0
	first := true

	flush := func() {
		text := strings.TrimSpace(b.String())
		if text != "" {
			stmts = append(stmts, Statement{Text: text, Start: start})
		}
		b.Reset()
		first = true
	}

	for _, t := range significant {
		if t.Kind == lexspan.Punct && t.Text == ";" {
			flush()
			continue
		}
		if first {
			start = t.Start
			first = false
		}
		b.WriteString(t.Text)
	}
	flush()
	return stmts
}

// ParseStatement tokenizes one statement into a dispatch.Command: the
// first identifier-like word is the verb, the rest are positional args
// until a `--flag` token switches to flag parsing.
func ParseStatement(stmt string) dispatch.Command {
	fields := strings.Fields(stmt)
	cmd := dispatch.Command{Flags: map[string]string{}}
	if len(fields) == 0 {
		return cmd
	}
	cmd.Verb = fields[0]
	i := 1
	for i < len(fields) {
		f := fields[i]
		if strings.HasPrefix(f, "--") {
			name := strings.TrimPrefix(f, "--")
			if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "--") {
				cmd.Flags[name] = fields[i+1]
				i += 2
			} else {
				cmd.Flags[name] = "true"
				i++
			}
			continue
		}
		cmd.Args = append(cmd.Args, f)
		i++
	}
	return cmd
}

// Run executes every statement of src in order against p and l. It
// stops at the first error, or if ctx is cancelled between statements;
// errgroup is used only to make that cancellation check idiomatic
// against the teacher's shell runner, since statements themselves
// always run serially (spec §5: single-threaded, synchronous).
func Run(ctx context.Context, l *oplog.Log, p *palette.Palette, src string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, stmt := range Split(src) {
			if err := ctx.Err(); err != nil {
				return err
			}
			cmd := ParseStatement(stmt.Text)
			if cmd.Verb == "" {
				continue
			}
			if err := dispatch.Dispatch(l, p, cmd, true); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}
