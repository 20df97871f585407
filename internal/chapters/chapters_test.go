package chapters

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/proptree/proptree/pkg/assets"
	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
)

var courseDay = time.Date(2024, time.August, 19, 10, 0, 0, 0, time.UTC)

func renderExample(t *testing.T, name string, overrides props.Bundle) string {
	t.Helper()
	ex, err := Get(name)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := compose.Compose(ex.App, ex.Bundle(courseDay, overrides))
	if err != nil {
		t.Fatalf("compose %s: %v", name, err)
	}
	r := render.NewRenderer(render.RendererConfig{Assets: assets.NewPassthroughResolver("/static/")})
	html, _, err := r.RenderToString(tree)
	if err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return html
}

func TestRegistry(t *testing.T) {
	want := []string{"hello", "intro", "setup", "components", "props", "boilerplate"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	for _, ex := range List() {
		if ex.App == nil || ex.Props == nil || ex.Title == "" || ex.Summary == "" {
			t.Errorf("example %q is incomplete", ex.Name)
		}
	}

	_, err := Get("chapter99")
	if !stderrors.Is(err, ErrUnknown) {
		t.Errorf("Get(chapter99) = %v, want ErrUnknown", err)
	}
	if !strings.Contains(err.Error(), "P010") {
		t.Errorf("error %q lacks its code", err)
	}
}

func TestShowDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{courseDay, " Aug 19, 2024"},
		{time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), " Jan 1, 2020"},
		{time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), " Dec 31, 1999"},
	}
	for _, tt := range tests {
		if got := ShowDate(tt.in); got != tt.want {
			t.Errorf("ShowDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExamplesRender(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"hello", []string{"<h1>Hello, Aytekin!</h1>"}},
		{"intro", []string{
			`<div class="app"><header><div class="header-wrapper"><h1>Welcome to React</h1>`,
			"<p>Instructor: Aytekin Kaplan</p>",
			"<small>Date: August 17, 2024</small>",
			"<p>Prerequisite to get started <strong><em>react.js</em></strong>:</p>",
			"<ul><li>HTML</li><li>CSS</li><li>JavaScript</li></ul>",
			"<p>3 + 2 = 5</p>",
			"<p>Aytekin Kaplan is 1453 years old</p>",
			`<footer><div class="footer-wrapper"><p>Copyright 2024</p></div></footer>`,
		}},
		{"setup", []string{
			"<p>React is a JavaScript library for building user interfaces.</p>",
			"<p>I am Aytekin Kaplan and I am 1453 years old.</p><s>Copyright 2024</s>",
			`<img alt="Aytekin" src="/static/images/aytekin.jpg">`,
		}},
		{"components", []string{
			"<h1>Welcome to React</h1>",
			`<div class="user-card"><img alt="Aytekin Kaplan" src="/static/images/aytekin.jpg"><h2>Aytekin Kaplan</h2></div>`,
			`<button style="padding: 10px 20px; background: rgb(0, 255, 0); border: none; border-radius: 5px">Action</button>`,
			"height: 100px; display: flex; justify-content: center",
		}},
		{"props", []string{
			"<div>The person is 1453 years old.</div>",
			"<p>The weight of the object on earth is 735.75 N.</p>",
			"<p>Too young for driving</p>",
			"<ul><li>HTML</li><li>CSS</li><li>JavaScript</li></ul>",
			"<h1>Welcome to 30 Days Of React</h1>",
			"<small> Aug 19, 2024</small>",
			`<button data-on-click="true" data-hid="h1">Greet People</button>`,
			`<button data-on-click="true" data-hid="h2">Show Time</button>`,
		}},
		{"boilerplate", []string{
			`<header class="dribbble-header">`,
			"<small> Aug 19, 2024</small>",
			`<li class="tech-item"><img alt="React Logo" class="tech-logo" src="/static/images/react_logo.png"><span class="tech-name">React</span></li>`,
			`<img alt="Aytekin" class="user-image" src="/static/images/aytekin.jpg">`,
			`style="background-color: #ea4c89; padding: 12px 24px;`,
			"transition: transform 0.3s ease\"",
			"<p>Copyright © 2024 | All Rights Reserved</p>",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := renderExample(t, tt.name, props.Bundle{})
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("output missing %q\n%s", want, html)
				}
			}
		})
	}
}

func TestHoverBlockSkipped(t *testing.T) {
	html := renderExample(t, "boilerplate", props.Bundle{})
	if strings.Contains(html, "translateY") || strings.Contains(html, "&amp;:hover") {
		t.Errorf("selector block leaked into inline style:\n%s", html)
	}
}

func TestOverrides(t *testing.T) {
	html := renderExample(t, "hello", props.Of("name", "Asabeneh"))
	if html != "<h1>Hello, Asabeneh!</h1>" {
		t.Errorf("got %q", html)
	}

	// Dates loaded from property files arrive as text.
	html = renderExample(t, "boilerplate", props.Of("copyRight", "2020"))
	if !strings.Contains(html, "Copyright © 2020 |") {
		t.Errorf("copyright override not applied:\n%s", html)
	}
}

func TestMissingProperty(t *testing.T) {
	tests := []struct {
		name   string
		bundle props.Bundle
		path   string
	}{
		{"hello", props.Bundle{}, "name"},
		{"props", propsExample.Props(courseDay).Without("skills"), "skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, _ := Get(tt.name)
			tree, err := compose.Compose(ex.App, tt.bundle)
			if tree != nil {
				t.Error("partial tree returned")
			}
			var ce *compose.Error
			if !stderrors.As(err, &ce) || ce.Kind != compose.MissingProperty {
				t.Fatalf("err = %v, want MissingProperty", err)
			}
			if ce.Path != tt.path {
				t.Errorf("Path = %q, want %q", ce.Path, tt.path)
			}
		})
	}

	data := boilerplateExample.Props(courseDay)
	author := props.Of("lastName", "Kaplan")
	dataBundle, _ := data.GetBundle("data")
	data = data.With("data", props.Nested(dataBundle.With("author", props.Nested(author))))
	_, err := compose.Compose(BoilerplateApp, data)
	var ce *compose.Error
	if !stderrors.As(err, &ce) || ce.Path != "data.author.firstName" {
		t.Fatalf("err = %v, want missing data.author.firstName", err)
	}
}

func TestDeterministic(t *testing.T) {
	for _, ex := range List() {
		t.Run(ex.Name, func(t *testing.T) {
			b := ex.Bundle(courseDay, props.Bundle{})
			r := render.NewRenderer(render.RendererConfig{})
			var outputs []string
			for range 2 {
				tree, err := compose.Compose(ex.App, b)
				if err != nil {
					t.Fatal(err)
				}
				html, _, err := r.RenderToString(tree)
				if err != nil {
					t.Fatal(err)
				}
				outputs = append(outputs, html)
			}
			if outputs[0] != outputs[1] {
				t.Errorf("two compositions differ:\n%s\n%s", outputs[0], outputs[1])
			}
		})
	}
}

func TestHexColor(t *testing.T) {
	re := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	a := HexColor(rand.New(rand.NewPCG(42, 0)))
	b := HexColor(rand.New(rand.NewPCG(42, 0)))
	if !re.MatchString(a) {
		t.Errorf("HexColor() = %q", a)
	}
	if a != b {
		t.Errorf("same seed gave %q and %q", a, b)
	}

	html := renderExample(t, "components", props.Of("seed", 7))
	colors := regexp.MustCompile(`<h2>(#[0-9a-f]{6})</h2>`).FindAllStringSubmatch(html, -1)
	if len(colors) != 2 {
		t.Fatalf("found %d colour blocks, want 2:\n%s", len(colors), html)
	}
	if !strings.Contains(html, "background-color: "+colors[0][1]) {
		t.Errorf("block background does not match its label %s", colors[0][1])
	}
}

func TestCallbacksRaiseAlerts(t *testing.T) {
	for _, name := range []string{"props", "boilerplate"} {
		t.Run(name, func(t *testing.T) {
			ex, _ := Get(name)
			tree, err := compose.Compose(ex.App, ex.Bundle(courseDay, props.Bundle{}))
			if err != nil {
				t.Fatal(err)
			}

			m := mount.NewMemory(mount.Options{})
			var log mount.AlertLog
			ctx := mount.WithAlerter(context.Background(), &log)
			if err := m.Mount(ctx, tree, name); err != nil {
				t.Fatal(err)
			}
			if n := len(log.Messages()); n != 0 {
				t.Fatalf("%d alerts raised while mounting", n)
			}

			if err := m.Dispatch(ctx, name, "h1", "click"); err != nil {
				t.Fatal(err)
			}
			if err := m.Dispatch(ctx, name, "h2", "click"); err != nil {
				t.Fatal(err)
			}
			msgs := log.Messages()
			if len(msgs) != 2 {
				t.Fatalf("alerts = %q", msgs)
			}
			if msgs[0] != "Welcome to React Challenge, 2024" {
				t.Errorf("greet alert = %q", msgs[0])
			}
			if !regexp.MustCompile(`^ [A-Z][a-z]{2} \d{1,2}, \d{4}$`).MatchString(msgs[1]) {
				t.Errorf("time alert = %q", msgs[1])
			}
		})
	}
}
