// Package adminserver serves sample admin forms whose textareas are upgraded
// to code editors by the enhancement middleware.
package adminserver

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-editorbind/pkg/enhancer"
	"github.com/goliatone/go-editorbind/pkg/middleware"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Pages maps the URL slug of each sample form to its file.
var Pages = map[string]string{
	"emailkind": "pages/emailkind.html",
	"fragment":  "pages/fragment.html",
	"entry":     "pages/entry.html",
	"render":    "pages/render.html",
	"send":      "pages/send.html",
}

// ThemeCookie names the cookie that selects the editor theme variant.
const ThemeCookie = "editorbind_variant"

// Config holds runtime options for the demo server.
type Config struct {
	Address  string
	Enhancer *enhancer.Enhancer
	Logger   *slog.Logger
}

// New constructs the HTTP server.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// NewHandler builds the router on its own so tests can drive it through
// httptest.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Enhancer == nil {
		return nil, errors.New("adminserver: enhancer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	router.Get("/", indexHandler)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/admin/{page}", func(r chi.Router) {
		r.Use(middleware.Enhance(cfg.Enhancer,
			middleware.WithLogger(logger),
			middleware.WithThemeFromRequest(variantFromCookie),
		))
		r.Get("/", pageHandler)
		r.Post("/", echoHandler(logger))
	})
	return router, nil
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	slugs := make([]string, 0, len(Pages))
	for slug := range Pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Admin</title></head><body><ul>")
	for _, slug := range slugs {
		fmt.Fprintf(&b, `<li><a href="/admin/%s/">%s</a></li>`, slug, slug)
	}
	b.WriteString("</ul></body></html>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func pageHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := Pages[chi.URLParam(r, "page")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	body, err := fs.ReadFile(pagesFS, page)
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// echoHandler answers a form submission with its values as JSON, showing
// that editor content reaches the server under the original field names.
func echoHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "page")
		if _, ok := Pages[slug]; !ok {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		values := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			values[key] = r.PostForm.Get(key)
		}
		logger.InfoContext(r.Context(), "form submitted",
			"page", slug,
			"fields", len(values),
			"request_id", chimw.GetReqID(r.Context()),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"page":   slug,
			"values": values,
		}); err != nil {
			logger.ErrorContext(r.Context(), "encode echo response", "error", err)
		}
	}
}

func variantFromCookie(r *http.Request) (string, string) {
	cookie, err := r.Cookie(ThemeCookie)
	if err != nil {
		return "", ""
	}
	return "", strings.TrimSpace(cookie.Value)
}
