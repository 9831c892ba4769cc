package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/controlkit/pkg/control"
)

// row is one recycled line of the list body.
type row struct {
	control.Base
	text  string
	style lipgloss.Style
}

func newRow(s control.Settings) *row {
	r := &row{}
	r.Init(r, s)
	r.style = lipgloss.NewStyle().PaddingLeft(1)
	if accent := s.String("accent"); accent != "" {
		r.style = r.style.Foreground(lipgloss.Color(accent))
	}
	if w, ok := s.Int("width"); ok && w > 0 {
		r.style = r.style.Width(w)
	}
	return r
}

func (r *row) render(selected bool) string {
	if selected {
		return r.style.Reverse(true).Render(r.text)
	}
	return r.style.Render(r.text)
}

// label is a single line of chrome: header, footer, or toast.
type label struct {
	control.Base
	text   string
	style  lipgloss.Style
	fading bool
}

func newLabel(id, text string, style lipgloss.Style) *label {
	l := &label{text: text, style: style}
	l.Init(l, control.Settings{"id": id})
	return l
}

func (l *label) render() string {
	if l.fading {
		return l.style.Faint(true).Render(l.text)
	}
	return l.style.Render(l.text)
}

// item is a data record shown by a row.
type item struct {
	key   string
	title string
}

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			key:   fmt.Sprintf("item-%d", i),
			title: fmt.Sprintf("#%04d  message %d", i, i),
		}
	}
	return items
}
