// Package middleware applies the enhancer to HTML responses so admin handlers
// can keep rendering plain textareas.
package middleware

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/goliatone/go-editorbind/pkg/enhancer"
)

// SkipHeader, when set on the response by the wrapped handler, leaves the
// body untouched. The header is stripped before the response is sent.
const SkipHeader = "X-Editorbind-Skip"

// Option customises the middleware.
type Option func(*config)

type config struct {
	logger *slog.Logger
	theme  func(r *http.Request) (name, variant string)
}

// WithLogger sets the logger used to report enhancement failures.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithThemeFromRequest picks the theme name and variant per request, e.g.
// from a cookie or user preference.
func WithThemeFromRequest(fn func(r *http.Request) (name, variant string)) Option {
	return func(cfg *config) {
		cfg.theme = fn
	}
}

// Enhance buffers the downstream response and runs enh over successful
// text/html bodies. Failed enhancements fall back to the original body.
func Enhance(enh *enhancer.Enhancer, options ...Option) func(http.Handler) http.Handler {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buffered := &bufferedWriter{ResponseWriter: w}
			next.ServeHTTP(buffered, r)

			body := buffered.buf.Bytes()
			status := buffered.statusCode()
			header := w.Header()
			skip := header.Get(SkipHeader) != ""
			header.Del(SkipHeader)

			if header.Get("Content-Type") == "" && len(body) > 0 {
				header.Set("Content-Type", http.DetectContentType(body))
			}

			if !skip && enh != nil && shouldEnhance(header, status, r.Method, body) {
				req := enhancer.Request{Page: body}
				if cfg.theme != nil {
					req.ThemeName, req.ThemeVariant = cfg.theme(r)
				}
				result, err := enh.Enhance(r.Context(), req)
				switch {
				case err != nil && len(result.HTML) == 0:
					cfg.logger.WarnContext(r.Context(), "editor enhancement failed",
						"path", r.URL.Path, "error", err)
				case err != nil:
					cfg.logger.WarnContext(r.Context(), "editor enhancement incomplete",
						"path", r.URL.Path, "error", err)
					body = result.HTML
				default:
					body = result.HTML
				}
			}

			if header.Get("Content-Length") != "" || len(body) > 0 {
				header.Set("Content-Length", strconv.Itoa(len(body)))
			}
			w.WriteHeader(status)
			if r.Method != http.MethodHead {
				_, _ = w.Write(body)
			}
		})
	}
}

func shouldEnhance(header http.Header, status int, method string, body []byte) bool {
	if method == http.MethodHead || len(body) == 0 {
		return false
	}
	if status < 200 || status >= 300 {
		return false
	}
	if header.Get("Content-Encoding") != "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}

type bufferedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.buf.Write(p)
}

func (b *bufferedWriter) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}
