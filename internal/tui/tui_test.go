package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/proptree/proptree/internal/chapters"
	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/vdom"
)

var courseDay = time.Date(2024, time.August, 19, 10, 0, 0, 0, time.UTC)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestOutline(t *testing.T) {
	tree := vdom.Div(vdom.Class("app"),
		vdom.H1("Welcome"),
		vdom.Ul(
			vdom.Li(vdom.Key("HTML"), "HTML"),
			vdom.Li(vdom.Key("CSS"), "CSS"),
		),
		vdom.Button(vdom.OnClick(func() {}), "Go"),
	)
	want := strings.Join([]string{
		"div class=app",
		`  h1 "Welcome"`,
		"  ul",
		`    li [HTML] "HTML"`,
		`    li [CSS] "CSS"`,
		`  button onclick=ƒ "Go"`,
	}, "\n")
	if diff := cmp.Diff(want, Outline(tree)); diff != "" {
		t.Errorf("Outline() mismatch (-want +got):\n%s", diff)
	}
}

func TestOutlineStyle(t *testing.T) {
	style := props.Of("padding", "10px", "borderRadius", 5)
	got := Outline(vdom.Div(vdom.StyleOf(style)))
	if got != `div style="padding: 10px; border-radius: 5px"` {
		t.Errorf("Outline() = %q", got)
	}
}

func newModel(t *testing.T, name string) *Model {
	t.Helper()
	ex, err := chapters.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	m := New(context.Background(), mount.NewMemory(mount.Options{}), name, ex.Title, func() (*vdom.VNode, error) {
		return compose.Compose(ex.App, ex.Bundle(courseDay, props.Bundle{}))
	})
	m.Update(m.Init()())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestModelListsCallbacks(t *testing.T) {
	m := newModel(t, "props")
	items := m.handlers.Items()
	if len(items) != 2 {
		t.Fatalf("got %d callbacks, want 2", len(items))
	}
	first := items[0].(handlerItem)
	if first.hid != "h1" || first.event != "click" || first.label != "Greet People" {
		t.Errorf("first callback = %+v", first)
	}

	view := m.View()
	for _, want := range []string{"Props", `h1 "Welcome to 30 Days Of React"`, "Show Time"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelDispatch(t *testing.T) {
	m := newModel(t, "props")

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	m.Update(cmd())

	m.Update(keyMsg("down"))
	_, cmd = m.Update(keyMsg("enter"))
	m.Update(cmd())

	alerts := m.Alerts()
	if len(alerts) != 2 || alerts[0] != "Welcome to React Challenge, 2024" {
		t.Fatalf("alerts = %q", alerts)
	}
	if !strings.Contains(m.View(), "alert: Welcome to React Challenge, 2024") {
		t.Error("alert not shown")
	}

	m.Update(keyMsg("c"))
	if len(m.Alerts()) != 0 {
		t.Error("c did not clear alerts")
	}
}

func TestModelNoCallbacks(t *testing.T) {
	m := newModel(t, "hello")
	if !strings.Contains(m.View(), "No callbacks") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestModelCompositionError(t *testing.T) {
	boom := errors.New("boom")
	m := New(context.Background(), mount.NewMemory(mount.Options{}), "x", "X", func() (*vdom.VNode, error) {
		return nil, boom
	})
	m.Update(m.Init()())
	if !strings.Contains(m.View(), "error: boom") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, "hello")
	_, cmd := m.Update(keyMsg("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestLabelFor(t *testing.T) {
	body := `<div><button data-on-click="true" data-hid="h1">Greet People</button><button data-hid="h2"> Show </button></div>`
	tests := map[string]string{"h1": "Greet People", "h2": "Show", "h3": ""}
	for hid, want := range tests {
		if got := labelFor(body, hid); got != want {
			t.Errorf("labelFor(%s) = %q, want %q", hid, got, want)
		}
	}
}
