// Package site serves built menus over HTTP, as JSON for client-side
// consumers and as server-rendered HTML pages.
package site

import (
	"context"
	"embed"
	"encoding/json"
	"html"
	"html/template"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/mchmarny/navmenu/pkg/menu"
	"github.com/mchmarny/navmenu/pkg/metric"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the template functions used by the built-in layout.
var Funcs = template.FuncMap{
	"href":  Href,
	"attrs": Attrs,
}

// DefaultTemplates parses the built-in page layout. It defines the "page"
// and the recursive "nav" templates.
func DefaultTemplates() *template.Template {
	return template.Must(template.New("site").Funcs(Funcs).ParseFS(templateFS, "templates/*.html"))
}

// Href returns a rendered route for use in an html/template attribute.
// Routes are stored with ampersands already escaped, which html/template
// would escape a second time.
func Href(route *string) string {
	if route == nil {
		return ""
	}
	return html.UnescapeString(*route)
}

// Attrs formats an attribute map as a trusted attribute list with a leading
// space, keys sorted. html/template rejects attribute names such as
// "data-toggle" when they come from an action, so the list is built here
// with every value escaped. Names outside [a-zA-Z0-9-] and event handler
// names ("on...") are dropped.
func Attrs(attrs map[string]string) template.HTMLAttr {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if !safeAttrName(k) {
			slog.Warn("dropping unsafe attribute", "name", k)
			continue
		}
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[k]))
		b.WriteString(`"`)
	}
	return template.HTMLAttr(b.String())
}

func safeAttrName(name string) bool {
	if name == "" || strings.HasPrefix(strings.ToLower(name), "on") {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

// Site builds one menu per request from a shared item source.
type Site struct {
	source    menu.ItemSource
	configure func(*menu.Menu) *menu.Menu
	builds    metric.IncrementalCounter
	renders   metric.IncrementalCounter
	templates *template.Template
}

// Option configures a Site.
type Option func(*Site)

// WithConfigure applies fn to every menu before it is built.
func WithConfigure(fn func(*menu.Menu) *menu.Menu) Option {
	return func(s *Site) { s.configure = fn }
}

// WithCounters records builds and renders.
func WithCounters(c *metric.Counters) Option {
	return func(s *Site) {
		s.builds = c.MenuBuilds
		s.renders = c.Renders
	}
}

// WithTemplates replaces the page templates. The set must define "page".
func WithTemplates(t *template.Template) Option {
	return func(s *Site) { s.templates = t }
}

// New returns a Site reading items from src.
func New(src menu.ItemSource, opts ...Option) *Site {
	s := &Site{source: src}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		s.templates = DefaultTemplates()
	}
	return s
}

// Build creates and builds a menu for route.
func (s *Site) Build(ctx context.Context, route string) (*menu.Menu, error) {
	m := menu.New(s.source)
	if s.configure != nil {
		m = s.configure(m)
	}
	m.SetActiveRoute(route)

	if err := m.SetMenu(ctx); err != nil {
		inc(s.builds, "error")
		return nil, err
	}
	inc(s.builds, "ok")
	return m, nil
}

func inc(c metric.IncrementalCounter, label string) {
	if c != nil {
		c.Increment(label)
	}
}

// MenuHandler responds with the rendered menu as JSON. The active route is
// taken from the "route" query parameter and defaults to "/".
func (s *Site) MenuHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		route := r.URL.Query().Get("route")
		if route == "" {
			route = "/"
		}

		m, err := s.Build(r.Context(), route)
		if err != nil {
			slog.Error("failed to build menu", "route", route, "error", err)
			writeError(w, http.StatusInternalServerError, "error, see logs for details")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(m.ToTemplate()); err != nil {
			slog.Error("failed to encode menu", "route", route, "error", err)
			return
		}

		inc(s.renders, "json")
		slog.Info("menu response sent", "route", route)
	})
}

// PageData is the data passed to the "page" template.
type PageData struct {
	Title string
	Route string
	Menu  []menu.Rendered
}

// PageHandler renders the "page" template for the request path with that
// path as the active route. Paths matching no menu item get a 404 status
// but still render the menu.
func (s *Site) PageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path

		m, err := s.Build(r.Context(), route)
		if err != nil {
			slog.Error("failed to build menu", "route", route, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		title := activeTitle(m)
		if title == "" {
			status = http.StatusNotFound
			title = "Not Found"
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		data := PageData{Title: title, Route: route, Menu: m.ToTemplate()}
		if err := s.templates.ExecuteTemplate(w, "page", data); err != nil {
			slog.Error("failed to execute page template", "route", route, "error", err)
			return
		}

		inc(s.renders, "html")
		slog.Info("page rendered", "route", route, "status", status)
	})
}

// activeTitle returns the title of the deepest active node.
func activeTitle(m *menu.Menu) string {
	var title string
	depth := -1
	m.Tree().Walk(func(n *menu.Node, d int) bool {
		if !n.IsActive() {
			return false
		}
		if d > depth {
			title, depth = n.Title(), d
		}
		return true
	})
	return title
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
