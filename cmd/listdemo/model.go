package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/controlkit/cmd/listdemo/internal/config"
	"github.com/go-drift/controlkit/pkg/recycler"
	"github.com/go-drift/controlkit/pkg/registry"
)

const (
	toastLife = 2 * time.Second
	toastFade = 300 * time.Millisecond

	headerID = "header"
	footerID = "footer"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingLeft(1)
	footerStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(1)
	toastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

type toastExpiredMsg struct{ id string }

type fadeDoneMsg struct{ id string }

type model struct {
	items  []item
	offset int
	cursor int
	height int

	rows    *recycler.Pool[*row]
	body    *viewport
	chrome  *registry.Registry
	overlay *viewport

	fades   map[string]func()
	pending []tea.Cmd
	toasts  int
}

func newModel(cfg *config.Resolved) *model {
	m := &model{
		items:   makeItems(cfg.Items),
		height:  cfg.Height,
		rows:    recycler.New[*row](newRow, cfg.RowDefaults),
		body:    &viewport{},
		chrome:  registry.New(),
		overlay: &viewport{},
		fades:   make(map[string]func()),
	}
	m.chrome.Add(
		newLabel(headerID, cfg.Title, headerStyle),
		newLabel(footerID, "", footerStyle),
	)
	m.layout()
	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-3)
		m.scrollTo(m.follow(), true)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown":
			m.move(m.height)
		case "s":
			return m, m.showStats()
		}
	case toastExpiredMsg:
		m.chrome.RemoveID(msg.id)
		return m, m.flush()
	case fadeDoneMsg:
		if done, ok := m.fades[msg.id]; ok {
			delete(m.fades, msg.id)
			done()
		}
	}
	return m, nil
}

func (m *model) View() string {
	body := recycler.Map(m.rows, func(r *row, _ int) string {
		return r.render(m.selectedKey() == r.ID())
	})
	parts := []string{m.labelView(headerID), strings.Join(body, "\n")}
	if m.overlay.len() > 0 {
		parts = append(parts, m.overlay.render(""))
	}
	parts = append(parts, m.labelView(footerID))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) selectedKey() string {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].key
}

func (m *model) labelView(id string) string {
	c, ok := m.chrome.Get(id)
	if !ok {
		return ""
	}
	l, ok := c.(*label)
	if !ok {
		return ""
	}
	return l.render()
}

func (m *model) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.items)-1)
	m.scrollTo(m.follow(), false)
}

// follow returns the smallest window move that keeps the cursor visible.
func (m *model) follow() int {
	offset := m.offset
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+m.height {
		offset = m.cursor - m.height + 1
	}
	return offset
}

// scrollTo moves the window to offset. A one-line scroll recycles only the
// row that left the window; anything else re-lays out every row.
func (m *model) scrollTo(offset int, force bool) {
	offset = min(offset, max(len(m.items)-m.height, 0))
	offset = max(offset, 0)
	delta := offset - m.offset
	m.offset = offset

	switch {
	case force || delta < -1 || delta > 1:
		m.layout()
	case delta == 1:
		if first, ok := m.rows.ControlAt(0); ok {
			m.rows.Discard(first.ID())
		}
		if i := m.offset + m.height - 1; i < len(m.items) {
			m.show(m.items[i], recycler.Back)
		}
	case delta == -1:
		if last, ok := m.rows.ControlAt(m.rows.TotalVisible() - 1); ok && m.rows.TotalVisible() >= m.height {
			m.rows.DiscardControl(last)
		}
		m.show(m.items[m.offset], recycler.Front)
	}
	m.updateFooter()
}

func (m *model) layout() {
	m.rows.DiscardAll()
	end := min(m.offset+m.height, len(m.items))
	for _, it := range m.items[m.offset:end] {
		m.show(it, recycler.Back)
	}
	m.updateFooter()
}

// show binds a recycled row to it. Every field a previous item may have set
// is overwritten here.
func (m *model) show(it item, pos recycler.Position) {
	r, ok := m.rows.GetRecycled(pos)
	if !ok {
		return
	}
	r.SetID(it.key)
	r.text = it.title
	r.SetContainer(m.body)
}

func (m *model) updateFooter() {
	c, ok := m.chrome.Get(footerID)
	if !ok {
		return
	}
	footer, ok := c.(*label)
	if !ok {
		return
	}
	s := m.rows.Stats()
	footer.text = fmt.Sprintf("%d/%d  rows: %d visible, %d free, %d built, %d reused",
		m.cursor+1, len(m.items), s.Active, s.Free, s.Constructed, s.Reused)
}

func (m *model) showStats() tea.Cmd {
	m.toasts++
	s := m.rows.Stats()
	t := newLabel(fmt.Sprintf("toast-%d", m.toasts),
		fmt.Sprintf("built %d rows for %d items", s.Constructed, len(m.items)), toastStyle)
	t.SetTeardown(func(done func()) {
		t.fading = true
		m.fades[t.ID()] = done
		id := t.ID()
		m.pending = append(m.pending, tea.Tick(toastFade, func(time.Time) tea.Msg {
			return fadeDoneMsg{id: id}
		}))
	})
	t.SetContainer(m.overlay)
	m.chrome.Add(t)

	id := t.ID()
	return tea.Tick(toastLife, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *model) shutdown() {
	m.chrome.RemoveAll()
	m.rows.Remove()
	for id, done := range m.fades {
		delete(m.fades, id)
		done()
	}
	m.pending = nil
}
