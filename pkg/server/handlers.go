package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	perrors "github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
)

const maxEventBody = 64 << 10

// EventRequest is posted by the live client for hydrated elements.
type EventRequest struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// EventResponse carries the alerts raised by the callback.
type EventResponse struct {
	Alerts []string `json:"alerts"`
	Code   string   `json:"code,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	items := make([]props.Value, 0, len(s.config.Pages))
	for _, p := range s.config.Pages {
		items = append(items, props.Nested(props.Of(
			"name", p.Name,
			"title", p.Title,
			"summary", p.Summary,
		)))
	}
	tree, err := s.config.Composer.Compose(indexView, props.Of("pages", props.List(items...)))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "proptree", perrors.FromError(err, "P000"))
		return
	}
	s.writeDocument(w, http.StatusOK, render.PageData{Title: "proptree", Body: tree})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	page, ok := s.pages[name]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, "Not found", unknownPage(name))
		return
	}

	mounted, err := s.ensure(r.Context(), name, r.URL.Query().Has("refresh"))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, page.Title, perrors.FromError(err, "P030"))
		return
	}

	w.Header().Set("ETag", mounted.ETag)
	if r.Header.Get("If-None-Match") == mounted.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	doc, err := mount.Document(s.config.Renderer, mounted, s.pageData(page))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req EventRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBody)).Decode(&req); err != nil || req.HID == "" {
		writeJSON(w, http.StatusBadRequest, EventResponse{Alerts: []string{}, Error: "invalid event"})
		return
	}
	if req.Event == "" {
		req.Event = "click"
	}

	alerts, err := s.Dispatch(r.Context(), name, req.HID, req.Event)
	if alerts == nil {
		alerts = []string{}
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mount.ErrUnknownTarget) || errors.Is(err, mount.ErrUnknownHandler) {
			status = http.StatusNotFound
		}
		coded := perrors.FromError(err, "P030")
		writeJSON(w, status, EventResponse{Alerts: alerts, Code: coded.Code, Error: coded.Error()})
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{Alerts: alerts})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.pages[name]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": unknownPage(name).Error()})
		return
	}
	mounted, err := s.ensure(r.Context(), name, true)
	if err != nil {
		coded := perrors.FromError(err, "P030")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"code": coded.Code, "error": coded.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"target": mounted.Target, "etag": mounted.ETag})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.pages[name]; !ok {
		http.NotFound(w, r)
		return
	}
	var current *mount.Page
	if p, ok := s.memory.Page(name); ok {
		current = &p
	}
	s.hub.Serve(w, r, name, current)
}

func (s *Server) pageData(page Page) render.PageData {
	data := render.PageData{
		Title:    page.Title,
		EventURL: "/examples/" + page.Name + "/events",
	}
	if s.config.Live {
		data.LiveURL = "/live/" + page.Name
	}
	return data
}

// writeError renders the composition error placeholder.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, title string, e *perrors.Error) {
	chain := make([]props.Value, len(e.Chain))
	for i, c := range e.Chain {
		chain[i] = props.String(c)
	}
	bundle := props.Of(
		"code", e.Code,
		"message", e.Message,
		"detail", e.FormatCompact(),
		"chain", props.List(chain...),
	)
	if e.Suggestion != "" {
		bundle = bundle.With("hint", props.String(e.Suggestion))
	}

	tree, err := s.config.Composer.Compose(errorView, bundle)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "error page failed", "error", err)
		http.Error(w, e.Error(), status)
		return
	}
	s.writeDocument(w, status, render.PageData{Title: title, Body: tree})
}

func (s *Server) writeDocument(w http.ResponseWriter, status int, data render.PageData) {
	var buf bytes.Buffer
	if _, err := s.config.Renderer.RenderPage(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func unknownPage(name string) *perrors.Error {
	return perrors.New("P010").Wrap(fmt.Errorf("%w: %q", ErrUnknownPage, name))
}
