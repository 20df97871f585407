package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/vdom"
)

// Source composes the tree shown by the UI.
type Source func() (*vdom.VNode, error)

// handlerItem is one callback of the mounted tree.
type handlerItem struct {
	hid   string
	event string
	label string
}

func (h handlerItem) FilterValue() string { return h.label }
func (h handlerItem) Title() string {
	return fmt.Sprintf("%s %-6s %s", h.hid, h.event, h.label)
}
func (h handlerItem) Description() string { return "" }

type mountedMsg struct {
	tree *vdom.VNode
	page mount.Page
}

type dispatchedMsg struct {
	item   handlerItem
	alerts []string
	err    error
}

type errMsg struct{ err error }

// Model is a terminal mount point for one target. It shows the outline of
// the mounted tree and lists its callbacks; enter dispatches the selected
// callback and the alerts it raises are shown below.
type Model struct {
	ctx    context.Context
	memory *mount.Memory
	target string
	title  string
	source Source

	handlers list.Model
	page     viewport.Model
	alerts   []string
	err      error
	width    int
	height   int
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxAlerts     = 5
)

// New creates a Model that mounts the output of source on target.
func New(ctx context.Context, memory *mount.Memory, target, title string, source Source) *Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = Styles.Selected
	delegate.Styles.NormalTitle = Styles.Normal

	l := list.New(nil, delegate, defaultWidth, 6)
	l.Title = "Callbacks"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title

	vp := viewport.New(defaultWidth-4, defaultHeight-14)
	vp.Style = Styles.Box

	return &Model{
		ctx:      ctx,
		memory:   memory,
		target:   target,
		title:    title,
		source:   source,
		handlers: l,
		page:     vp,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.load
}

// load composes and mounts the target.
func (m *Model) load() tea.Msg {
	tree, err := m.source()
	if err != nil {
		return errMsg{err}
	}
	if err := m.memory.Mount(m.ctx, tree, m.target); err != nil {
		return errMsg{err}
	}
	page, _ := m.memory.Page(m.target)
	return mountedMsg{tree: tree, page: page}
}

func (m *Model) dispatch(item handlerItem) tea.Cmd {
	return func() tea.Msg {
		var log mount.AlertLog
		err := m.memory.Dispatch(mount.WithAlerter(m.ctx, &log), m.target, item.hid, item.event)
		return dispatchedMsg{item: item, alerts: log.Messages(), err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case mountedMsg:
		m.err = nil
		m.page.SetContent(Outline(msg.tree))
		m.page.GotoTop()
		m.handlers.SetItems(handlerItems(msg.page))
		m.resize(m.width, m.height)
		return m, nil

	case dispatchedMsg:
		m.err = msg.err
		m.alerts = append(m.alerts, msg.alerts...)
		if len(m.alerts) > maxAlerts {
			m.alerts = m.alerts[len(m.alerts)-maxAlerts:]
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.load
		case "c":
			m.alerts = nil
			return m, nil
		case "enter":
			if item, ok := m.handlers.SelectedItem().(handlerItem); ok {
				return m, m.dispatch(item)
			}
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.page, cmd = m.page.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.handlers, cmd = m.handlers.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	listHeight := min(len(m.handlers.Items())+5, 10)
	m.handlers.SetSize(w, listHeight)
	m.page.Width = max(w-2, 20)
	m.page.Height = max(h-listHeight-maxAlerts-6, 5)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.title))
	b.WriteString(Styles.Hint.Render("  " + m.target))
	b.WriteString("\n")
	b.WriteString(m.page.View())
	b.WriteString("\n")

	if len(m.handlers.Items()) > 0 {
		b.WriteString(m.handlers.View())
		b.WriteString("\n")
	} else {
		b.WriteString(Styles.Hint.Render("No callbacks") + "\n")
	}

	for _, a := range m.alerts {
		b.WriteString(Styles.Alert.Render("alert: "+a) + "\n")
	}
	if m.err != nil {
		b.WriteString(Styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(Styles.Hint.Render("↑/↓ select  enter dispatch  r recompose  c clear  pgup/pgdn scroll  q quit"))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

// Alerts returns the alerts shown, oldest first.
func (m *Model) Alerts() []string {
	return append([]string(nil), m.alerts...)
}

// handlerItems lists the callbacks of page in hydration id order.
func handlerItems(page mount.Page) []list.Item {
	var items []handlerItem
	for hid, events := range page.Handlers {
		for event := range events {
			items = append(items, handlerItem{hid: hid, event: event, label: labelFor(page.Body, hid)})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := hidNumber(items[i].hid), hidNumber(items[j].hid)
		if a != b {
			return a < b
		}
		return items[i].event < items[j].event
	})

	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func hidNumber(hid string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(hid, "h"))
	return n
}

// labelFor returns the text right after the opening tag carrying hid.
func labelFor(body, hid string) string {
	i := strings.Index(body, `data-hid="`+hid+`"`)
	if i < 0 {
		return ""
	}
	rest := body[i:]
	start := strings.IndexByte(rest, '>')
	if start < 0 {
		return ""
	}
	rest = rest[start+1:]
	if end := strings.IndexByte(rest, '<'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// Run shows m on the terminal until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
