package render

import (
	"fmt"
	"io"

	"github.com/proptree/proptree/pkg/vdom"
)

// RootID is the id of the element that holds the mounted tree.
const RootID = "root"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the final tree mounted into the root element
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Scripts contains script tags to include
	Scripts []ScriptTag

	// Styles contains inline CSS styles
	Styles []string

	// LiveURL is the WebSocket endpoint that pushes re-mounted content.
	// When set, the live client script is injected.
	LiveURL string

	// EventURL receives {"hid": ..., "event": ...} posts from the live
	// client. Defaults to "events" relative to the page.
	EventURL string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Content  string // content attribute
	Property string // property attribute (for OpenGraph)
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string // rel attribute
	Href string // href attribute
	Type string // type attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to the given writer and
// returns the callbacks of the body tree.
func (r *Renderer) RenderPage(w io.Writer, page PageData) (Handlers, error) {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return nil, err
	}

	if err := r.renderHead(w, page); err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintf(w, "<body>\n<div id=\"%s\">", RootID); err != nil {
		return nil, err
	}

	handlers, err := r.RenderToWriter(w, page.Body)
	if err != nil {
		return nil, err
	}

	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return nil, err
	}

	if page.LiveURL != "" {
		if err := renderLiveScript(w, page); err != nil {
			return nil, err
		}
	}

	if _, err := io.WriteString(w, "</body>\n</html>\n"); err != nil {
		return nil, err
	}

	return handlers, nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"+
		`  <meta charset="utf-8">`+"\n"+
		`  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		if err := writeTag(w, "meta", []string{
			"name", meta.Name,
			"property", meta.Property,
			"content", meta.Content,
		}); err != nil {
			return err
		}
	}

	for _, link := range page.Links {
		if err := writeTag(w, "link", []string{
			"rel", link.Rel,
			"href", link.Href,
			"type", link.Type,
		}); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	for _, script := range page.Scripts {
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// writeTag writes a void head element with its non-empty attributes.
func writeTag(w io.Writer, tag string, attrs []string) error {
	if _, err := fmt.Fprintf(w, "  <%s", tag); err != nil {
		return err
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, attrs[i], escapeAttr(attrs[i+1])); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">\n")
	return err
}

// renderScriptTag renders a script element.
func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}
	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}
	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	}
	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, ">%s</script>\n", script.Inline)
	return err
}

// liveClient replaces the root element's content with pushed HTML and
// forwards events of hydrated elements to the server. Alerts raised by
// handlers come back in the event response.
const liveClient = `(function(){
var root=document.getElementById(%q),eventURL=%q;
function connect(){
var ws=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+%q);
ws.onmessage=function(m){var msg=JSON.parse(m.data);if(msg.type==="mount"){root.innerHTML=msg.html;}};
ws.onclose=function(){setTimeout(connect,1000);};
}
function send(hid,ev){
fetch(eventURL,{method:"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify({hid:hid,event:ev})})
.then(function(r){return r.json();}).then(function(res){(res.alerts||[]).forEach(function(a){window.alert(a);});});
}
["click","dblclick","input","change","submit","keydown","mouseenter","mouseleave"].forEach(function(ev){
root.addEventListener(ev,function(e){
var el=e.target.closest?e.target.closest("[data-on-"+ev+"]"):null;
if(!el||!root.contains(el))return;
if(ev==="submit")e.preventDefault();
send(el.getAttribute("data-hid"),ev);
},ev==="mouseenter"||ev==="mouseleave");
});
connect();
})();`

func renderLiveScript(w io.Writer, page PageData) error {
	eventURL := page.EventURL
	if eventURL == "" {
		eventURL = "events"
	}
	_, err := fmt.Fprintf(w, "<script>"+liveClient+"</script>\n", RootID, eventURL, page.LiveURL)
	return err
}
