package render

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/proptree/proptree/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{})

	h, err := r.RenderPage(&buf, PageData{
		Title:  "30 Days Of React <App>",
		Body:   Div(H1("Welcome"), Button(OnClick(func() {}), "Greet")),
		Meta:   []MetaTag{{Name: "description", Content: "course"}},
		Links:  []LinkTag{{Rel: "stylesheet", Href: "/static/index.css"}},
		Styles: []string{"body{margin:0}"},
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		"<title>30 Days Of React &lt;App&gt;</title>",
		`<meta name="description" content="course">`,
		`<link rel="stylesheet" href="/static/index.css">`,
		"<style>body{margin:0}</style>",
		`<div id="root"><div><h1>Welcome</h1><button data-hid="h1" data-on-click="true">Greet</button></div></div>`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "WebSocket") {
		t.Errorf("live script injected without LiveURL")
	}
	if h.Len() != 1 {
		t.Errorf("Handlers.Len() = %d, want 1", h.Len())
	}
}

func TestRenderPageLive(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Body:     P("x"),
		Lang:     "fi",
		LiveURL:  "/live/hello",
		EventURL: "/examples/hello/events",
		Scripts:  []ScriptTag{{Src: "/static/app.js", Defer: true}},
	})
	if err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	if got := extractAttrValue(t, html, "lang"); got != "fi" {
		t.Errorf("lang = %q, want fi", got)
	}
	if got := extractAttrValue(t, html, "src"); got != "/static/app.js" {
		t.Errorf("script src = %q", got)
	}
	for _, want := range []string{`"/live/hello"`, `"/examples/hello/events"`, `"root"`, "new WebSocket"} {
		if !strings.Contains(html, want) {
			t.Errorf("live script missing %s", want)
		}
	}
}

func TestRenderPageNilBody(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<div id="root"></div>`) {
		t.Errorf("nil body should render an empty root:\n%s", buf.String())
	}
}
