package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amirbrooks/cli-todo/internal/store"
)

const (
	markDone = "[x]"
	markOpen = "[ ]"
)

func (a *App) renderList(tasks []store.Task) string {
	done, open := markDone, markOpen
	if a.Color {
		r := lipgloss.NewRenderer(a.Out)
		black := lipgloss.Color("0")
		done = r.NewStyle().Foreground(black).Background(lipgloss.Color("2")).Render(markDone)
		open = r.NewStyle().Foreground(black).Background(lipgloss.Color("3")).Render(markOpen)
	}

	var b strings.Builder
	b.WriteString("All items:\n")
	for i, t := range tasks {
		mark := open
		if t.Completed {
			mark = done
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, mark, t.Title)
	}
	return b.String()
}
