package main

import (
	"strings"

	"github.com/go-drift/controlkit/pkg/control"
)

// viewport is a container that renders its attached controls top to bottom.
type viewport struct {
	children []control.Control
}

func (v *viewport) Attach(child control.Control) {
	v.children = append(v.children, child)
}

func (v *viewport) Detach(child control.Control) {
	for i, c := range v.children {
		if c == child {
			v.children = append(v.children[:i], v.children[i+1:]...)
			return
		}
	}
}

func (v *viewport) len() int { return len(v.children) }

func (v *viewport) render(selected string) string {
	lines := make([]string, 0, len(v.children))
	for _, c := range v.children {
		switch c := c.(type) {
		case *row:
			lines = append(lines, c.render(c.ID() == selected))
		case *label:
			lines = append(lines, c.render())
		}
	}
	return strings.Join(lines, "\n")
}
