package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/cli-todo/internal/store"
)

const (
	cmdList      = "list"
	cmdPreview   = "preview"
	cmdAdd       = "add"
	cmdEditNote  = "edit-note"
	cmdEditTitle = "edit-title"
	cmdToggle    = "toggle"
	cmdDelete    = "delete"
	cmdEraseAll  = "erase-all"
	cmdHelp      = "help"
)

const notePlaceholder = "# Add a note to the todo item (Remember to remove this line before saving)"

// undash rewrites "--name" and "-alias" to the bare spelling cobra looks
// up. Left alone, cobra would strip them as flags before the lookup.
func undash(root *cobra.Command, arg string) string {
	for _, c := range root.Commands() {
		if arg == "--"+c.Name() {
			return c.Name()
		}
		for _, alias := range c.Aliases {
			if arg == "-"+alias {
				return alias
			}
		}
	}
	return arg
}

// rootCommand builds the command tree. Flag parsing is off everywhere: the
// only operand is the item number, and "-1" must reach the index check.
func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:                a.programName(),
		Short:              "A CLI ToDo list app",
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.logger().Debug("unknown command", "arg", args[0])
			}
			a.printHelp()
			return nil
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	root.SetHelpFunc(func(*cobra.Command, []string) { a.printHelp() })

	root.AddCommand(
		a.command(cmdList, "l", "List all items", a.list),
		a.command(cmdPreview, "p", "Preview an item in more detail", a.preview),
		a.command(cmdAdd, "a", "Interactively add a new todo item", a.add),
		a.command(cmdEditNote, "en", "Edit an item note", a.editNote),
		a.command(cmdEditTitle, "et", "Edit an item's title", a.editTitle),
		a.command(cmdToggle, "t", "Toggle complete status of an item", a.toggle),
		a.command(cmdDelete, "d", "Delete an item from the todo list", a.remove),
		&cobra.Command{
			Use:                cmdEraseAll,
			Short:              "Delete every item in the todo list",
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.eraseAll()
			},
		},
	)
	root.SetHelpCommand(&cobra.Command{
		Use:                cmdHelp,
		Aliases:            []string{"h"},
		Short:              "Display this help menu",
		DisableFlagParsing: true,
		Run:                func(*cobra.Command, []string) { a.printHelp() },
	})
	// Registers help now so undash and Find see it before Execute does.
	root.InitDefaultHelpCmd()
	return root
}

type taskHandler func(ctx context.Context, tasks []store.Task, args []string) error

// command wraps a handler that works on the loaded task list.
func (a *App) command(use, alias, short string, run taskHandler) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Aliases:            []string{alias},
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.Store.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), tasks, args)
		},
	}
}

func (a *App) list(_ context.Context, tasks []store.Task, _ []string) error {
	fmt.Fprint(a.Out, a.renderList(tasks))
	return nil
}

func (a *App) preview(_ context.Context, tasks []store.Task, args []string) error {
	i, err := store.IndexArg(args, len(tasks))
	if err != nil {
		return err
	}
	t := tasks[i]
	fmt.Fprintf(a.Out, "Title: %s\n", t.Title)
	fmt.Fprintf(a.Out, "Completed: %t\n\n", t.Completed)
	fmt.Fprintln(a.Out, t.Note)
	return nil
}

func (a *App) add(ctx context.Context, tasks []store.Task, _ []string) error {
	title, err := a.Prompt.Line("Enter item title: ")
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	note, err := a.Editor.Edit(ctx, notePlaceholder)
	if err != nil {
		return err
	}
	tasks = store.Append(tasks, title, strings.TrimSpace(note))
	return a.Store.Save(tasks)
}

func (a *App) editNote(ctx context.Context, tasks []store.Task, args []string) error {
	i, err := store.IndexArg(args, len(tasks))
	if err != nil {
		return err
	}
	note, err := a.Editor.Edit(ctx, tasks[i].Note)
	if err != nil {
		return err
	}
	store.Renote(tasks, i, note)
	return a.Store.Save(tasks)
}

func (a *App) editTitle(_ context.Context, tasks []store.Task, args []string) error {
	i, err := store.IndexArg(args, len(tasks))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Original title: %s\n", tasks[i].Title)
	title, err := a.Prompt.Line("New title (Leave empty to leave unchanged): ")
	if err != nil {
		return err
	}
	if !store.Retitle(tasks, i, title) {
		a.logger().Debug("title unchanged", "item", i+1)
		return nil
	}
	return a.Store.Save(tasks)
}

func (a *App) toggle(_ context.Context, tasks []store.Task, args []string) error {
	i, err := store.IndexArg(args, len(tasks))
	if err != nil {
		return err
	}
	was := store.Toggle(tasks, i)
	fmt.Fprintf(a.Out, "Title: %s\nOriginal: %t\nCurrent: %t\n", tasks[i].Title, was, tasks[i].Completed)
	return a.Store.Save(tasks)
}

func (a *App) remove(_ context.Context, tasks []store.Task, args []string) error {
	i, err := store.IndexArg(args, len(tasks))
	if err != nil {
		return err
	}
	ok, err := a.Prompt.Confirm(fmt.Sprintf("Are you sure you want to delete this item \"%s\"?", tasks[i].Title))
	if err != nil || !ok {
		return err
	}
	return a.Store.Save(store.Remove(tasks, i))
}

// eraseAll never parses the data file, so it also clears a corrupt one.
func (a *App) eraseAll() error {
	ok, err := a.Prompt.Confirm("Are you sure you want to erase all items?")
	if err != nil || !ok {
		return err
	}
	return a.Store.Erase()
}
