// Command atma is the CLI editor for structured color palettes (spec
// §6). Each invocation opens a palette, dispatches one editing command
// against it, and reports the outcome through the process exit code:
// 0 on success, 1 on a user error, 2 on an internal error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/atma-editor/atma/atmaerr"
)

func main() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		<-ch
	}()

	app := newApp()
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "atma: %v\n", err)
		if isUserError(err) {
			os.Exit(1)
		}
		if app.Bool("ztrace") {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(2)
	}
}

func isUserError(err error) bool {
	return atmaerr.IsParseError(err) ||
		atmaerr.IsUnknownRefError(err) ||
		atmaerr.IsNotOccupiedError(err) ||
		atmaerr.IsAlreadyOccupiedError(err) ||
		atmaerr.IsNameConflictError(err) ||
		atmaerr.IsPositionConflictError(err) ||
		atmaerr.IsOutOfRoomError(err) ||
		atmaerr.IsHistoryEmptyError(err) ||
		atmaerr.IsNotFoundError(err)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "atma",
		Usage:                 "editor for structured color palettes",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to the config file"},
			&cli.StringFlag{Name: "settings", Usage: "path to the settings file"},
			&cli.StringFlag{Name: "palette", Aliases: []string{"p"}, Usage: "path to the active palette"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q", "silent"}},
			&cli.BoolFlag{Name: "ztrace", Usage: "print a stack trace alongside internal errors"},
		},
		Commands: []*cli.Command{
			newCommand(),
			listCommand(),
			insertCommand(),
			deleteCommand(),
			moveCommand(),
			setCommand(),
			undoCommand(),
			redoCommand(),
			exportCommand(),
		},
	}
}
