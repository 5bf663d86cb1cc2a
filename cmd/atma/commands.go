package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/atma-editor/atma/dispatch"
	"github.com/atma-editor/atma/expr"
	"github.com/atma-editor/atma/list"
	"github.com/atma-editor/atma/oplog"
	"github.com/atma-editor/atma/palette"
	"github.com/atma-editor/atma/script"
)

func paletteFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "palette",
		Aliases: []string{"p"},
		Value:   "palette.json",
		Usage:   "path to the active palette file",
	}
}

// withSession opens the palette named by --palette, runs fn against it
// and a fresh log seeded from its HistoryEnabled setting, and saves the
// result back if fn succeeds.
func withSession(cmd *cli.Command, fn func(l *oplog.Log, p *palette.Palette) error) error {
	path := cmd.String("palette")
	p, err := loadPalette(path)
	if err != nil {
		return err
	}
	l := newLogFor(p)
	if err := fn(l, p); err != nil {
		return err
	}
	return savePalette(path, p)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "create a new palette, config or settings file",
		Commands: []*cli.Command{
			{
				Name:  "palette",
				Usage: "create a new, empty palette",
				Flags: []cli.Flag{
					paletteFlag(),
					&cli.StringFlag{Name: "from-script", Usage: "run a script against the new palette before saving"},
					&cli.StringFlag{Name: "name", Usage: "display name for the palette (accepted; not stored in the palette file)"},
					&cli.BoolFlag{Name: "no-history", Usage: "disable undo/redo recording"},
					&cli.BoolFlag{Name: "overwrite", Usage: "replace an existing palette file"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("palette")
					if _, err := os.Stat(path); err == nil && !cmd.Bool("overwrite") {
						return fmt.Errorf("atma: %s already exists, pass --overwrite to replace it", path)
					}
					p := palette.New()
					if cmd.Bool("no-history") {
						p.Settings.HistoryEnabled = false
					}
					l := newLogFor(p)
					if src := cmd.String("from-script"); src != "" {
						text, err := os.ReadFile(src)
						if err != nil {
							return err
						}
						if err := script.Run(ctx, l, p, string(text)); err != nil {
							return err
						}
					}
					return savePalette(path, p)
				},
			},
			{
				Name:  "config",
				Usage: "create a new config file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return fmt.Errorf("atma: config file management is not implemented")
				},
			},
			{
				Name:  "settings",
				Usage: "create a new settings file",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return fmt.Errorf("atma: settings file management is not implemented")
				},
			},
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list resolved cells",
		Flags: []cli.Flag{
			paletteFlag(),
			&cli.StringFlag{Name: "mode", Value: "grid"},
			&cli.StringFlag{Name: "color-style", Value: "tile"},
			&cli.StringFlag{Name: "text-style", Value: "hex6"},
			&cli.StringFlag{Name: "rule-style", Value: "colored"},
			&cli.BoolFlag{Name: "no-color"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("palette")
			p, err := loadPalette(path)
			if err != nil {
				return err
			}

			sel := expr.AllSelection()
			if selArg := cmd.Args().First(); selArg != "" {
				sel, err = expr.ParseSelection(selArg)
				if err != nil {
					return err
				}
			}
			indices, err := oplog.ResolveSelection(p, sel)
			if err != nil {
				return err
			}

			opts := list.DefaultOptions()
			opts.NoColor = cmd.Bool("no-color")
			opts.TextStyle = parseTextStyle(cmd.String("text-style"))
			rows := list.Build(p, indices, opts)
			for _, row := range rows {
				label := list.LabelFor(row)
				text := list.FormatText(row, opts.TextStyle)
				fmt.Printf("%s  %s\n", label, text)
			}
			return nil
		},
	}
}

func parseTextStyle(s string) list.TextStyle {
	switch s {
	case "hex3":
		return list.TextHex3
	case "rgb":
		return list.TextRGB
	case "none":
		return list.TextStyleNone
	default:
		return list.TextHex6
	}
}

func insertCommand() *cli.Command {
	return &cli.Command{
		Name:  "insert",
		Usage: "insert an expression into the palette",
		Flags: []cli.Flag{
			paletteFlag(),
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "at"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				c := dispatch.Command{Verb: "insert", Flags: map[string]string{}}
				if e := cmd.Args().First(); e != "" {
					c.Args = append(c.Args, e)
				}
				if n := cmd.String("name"); n != "" {
					c.Flags["name"] = n
				}
				if at := cmd.String("at"); at != "" {
					c.Flags["at"] = at
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "delete a selection of cells",
		Flags: []cli.Flag{paletteFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				c := dispatch.Command{Verb: "delete", Flags: map[string]string{}}
				if sel := cmd.Args().First(); sel != "" {
					c.Args = append(c.Args, sel)
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func moveCommand() *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "move a selection of cells",
		Flags: []cli.Flag{
			paletteFlag(),
			&cli.StringFlag{Name: "to"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				c := dispatch.Command{Verb: "move", Flags: map[string]string{}}
				if sel := cmd.Args().First(); sel != "" {
					c.Args = append(c.Args, sel)
				}
				if to := cmd.String("to"); to != "" {
					c.Flags["to"] = to
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "change cell metadata, cursor or history settings",
		Flags: []cli.Flag{
			paletteFlag(),
			&cli.BoolFlag{Name: "remove"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				args := cmd.Args().Slice()
				if len(args) == 0 {
					return fmt.Errorf("atma: set requires a subcommand")
				}
				c := dispatch.Command{Verb: "set", Args: args, Flags: map[string]string{}}
				if cmd.Bool("remove") {
					c.Flags["remove"] = "true"
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func undoCommand() *cli.Command {
	return &cli.Command{
		Name:  "undo",
		Usage: "undo the last composite operation",
		Flags: []cli.Flag{paletteFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				c := dispatch.Command{Verb: "undo", Flags: map[string]string{}}
				if n := cmd.Args().First(); n != "" {
					c.Args = append(c.Args, n)
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func redoCommand() *cli.Command {
	return &cli.Command{
		Name:  "redo",
		Usage: "redo the last undone composite operation",
		Flags: []cli.Flag{paletteFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withSession(cmd, func(l *oplog.Log, p *palette.Palette) error {
				c := dispatch.Command{Verb: "redo", Flags: map[string]string{}}
				if n := cmd.Args().First(); n != "" {
					c.Args = append(c.Args, n)
				}
				return dispatch.Dispatch(l, p, c, false)
			})
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export a selection of cells",
		Commands: []*cli.Command{
			{
				Name:  "png",
				Usage: "export resolved colors as a PNG swatch sheet",
				Flags: []cli.Flag{
					paletteFlag(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "palette.png"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return fmt.Errorf("atma: png export is handled by the external rendering collaborator")
				},
			},
		},
	}
}
