package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"

	"github.com/amirbrooks/cli-todo/internal/config"
	"github.com/amirbrooks/cli-todo/internal/editor"
	"github.com/amirbrooks/cli-todo/internal/logging"
	"github.com/amirbrooks/cli-todo/internal/prompt"
	"github.com/amirbrooks/cli-todo/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitInternal = 10
)

// App carries everything a command needs. Tests build it directly with a
// temporary store, a scripted prompter and a fake editor.
type App struct {
	Name   string
	Store  *store.Store
	Editor editor.Editor
	Prompt prompt.Prompter
	Out    io.Writer
	Err    io.Writer
	Log    *log.Logger
	Color  bool
}

func Run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "todo:", err)
		return ExitInternal
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	logger.Debug("config resolved", "file", cfg.Path, "data", cfg.DataFile(), "editor", cfg.Editor)

	in := prompt.NewStdio(os.Stdin, os.Stdout)
	ed := editor.New(cfg.Editor, logger)
	ed.Stdin = editorStdin(os.Stdin, in)

	app := &App{
		Name:   filepath.Base(os.Args[0]),
		Store:  store.New(cfg.DataFile(), logger),
		Editor: ed,
		Prompt: in,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Log:    logger,
		Color:  cfg.ColorEnabled(),
	}
	return app.Run(context.Background(), args)
}

// editorStdin hands a terminal to the editor untouched. Piped input is read
// through the prompt buffer, which may already hold the editor's bytes.
func editorStdin(stdin *os.File, p *prompt.Stdio) io.Reader {
	if term.IsTerminal(stdin.Fd()) {
		return stdin
	}
	return p.Reader()
}

// Run dispatches on the first argument. Anything unrecognized prints help.
func (a *App) Run(ctx context.Context, args []string) int {
	if err := a.Store.Init(); err != nil {
		return a.fail("todo", err)
	}

	root := a.rootCommand()
	// Never nil: cobra falls back to os.Args when no args are set.
	argv := append(make([]string, 0, len(args)), args...)
	if len(argv) > 0 {
		argv[0] = undash(root, argv[0])
	}
	root.SetArgs(argv)
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		return a.fail(cmd.Name(), err)
	}
	return ExitOK
}

func (a *App) fail(cmd string, err error) int {
	fmt.Fprintf(a.Err, "todo: %s: %v\n", cmd, err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, store.ErrIndexOutOfRange):
		return ExitNotFound
	case errors.Is(err, store.ErrMissingIndex),
		errors.Is(err, store.ErrInvalidIndex):
		return ExitUsage
	default:
		return ExitInternal
	}
}

func (a *App) logger() *log.Logger {
	if a.Log == nil {
		return log.New(io.Discard)
	}
	return a.Log
}

func (a *App) programName() string {
	if a.Name == "" {
		return "todo"
	}
	return a.Name
}

func (a *App) printHelp() {
	fmt.Fprintf(a.Out, `A CLI ToDo list app

Usage: %s [OPTION] [ITEM]

Options:
    --help, -h                      Display this help menu
    --list, -l                      List all items in the todo list
    --add, -a                       Interactively add a new todo item
    --preview ITEM, -p ITEM         Preview an item in more detail
    --edit-note ITEM, -en ITEM      Edit an item note
    --edit-title ITEM, -et ITEM     Edit an item's title
    --toggle ITEM, -t ITEM          Toggle complete status of an item
    --delete ITEM, -d ITEM          Delete an item from the todo list
    --erase-all                     Delete every item in the todo list

ITEM is the 1-based number shown by --list. Every option also works
without dashes (list, add, toggle 2, ...).
`, a.programName())
}
