// Command listdemo renders a long virtualized list in the terminal. Rows are
// recycled through a recycler.Pool as the list scrolls, and the header,
// footer, and toasts are tracked by a registry.
//
// Usage:
//
//	listdemo [-dir path]
//
// Keys: up/down or j/k scroll, pgup/pgdown page, s shows pool stats, q quits.
// An optional listdemo.yaml in the directory configures the list.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/controlkit/cmd/listdemo/internal/config"
)

func main() {
	dir := flag.String("dir", ".", "directory containing "+config.FileName)
	flag.Parse()

	cfg, err := config.Resolve(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := newModel(cfg)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
