package site

import (
	"bytes"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/puchicavos/website/internal/logging"
	"github.com/puchicavos/website/internal/pagesync"
)

// Handler serves a site directory, synchronizing HTML and markdown pages
// on every request. Other files are served as-is.
type Handler struct {
	siteDir  string
	exclude  []string
	sync     *pagesync.Synchronizer
	renderer *pageRenderer
	files    http.Handler
	log      logrus.FieldLogger
}

// NewHandler creates a Handler for siteDir. Paths matching exclude are hidden.
func NewHandler(siteDir string, exclude []string, sync *pagesync.Synchronizer, logger logrus.FieldLogger) (*Handler, error) {
	renderer, err := newPageRenderer(DefaultStylesheet)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		siteDir:  siteDir,
		exclude:  exclude,
		sync:     sync,
		renderer: renderer,
		files:    http.FileServer(http.Dir(siteDir)),
		log:      logger,
	}, nil
}

// RegisterRoutes mounts the site as the catch-all route. API routes
// registered on the same router take precedence.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Handle("/*", h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// path.Clean on a rooted path drops any ".." that would escape siteDir.
	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if rel != "" && MatchesExclude(rel, h.exclude) {
		http.NotFound(w, r)
		return
	}

	page, ok := h.resolvePage(rel)
	if !ok {
		h.files.ServeHTTP(w, r)
		return
	}

	src, err := os.ReadFile(filepath.Join(h.siteDir, filepath.FromSlash(page)))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	outRel := page
	if pageKind(page) == kindMarkdown {
		var buf bytes.Buffer
		if err := h.renderer.render(page, src, &buf); err != nil {
			h.log.WithError(err).WithField("page", page).Error("markdown render failed")
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		src = buf.Bytes()
		outRel = mdPathToHTML(page)
	}

	var out bytes.Buffer
	report, err := h.sync.Render(outRel, bytes.NewReader(src), &out)
	if err != nil {
		h.log.WithError(err).WithField("page", page).Error("page synchronization failed")
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	h.log.WithFields(logrus.Fields{"page": outRel, "applied": report.Applied}).Debug("page synchronized")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodHead {
		return
	}
	w.Write(out.Bytes())
}

// resolvePage maps a request path to the page file that renders it.
// Directories resolve to index.html, and "x.html" falls back to "x.md".
func (h *Handler) resolvePage(rel string) (string, bool) {
	if rel == "" || h.isDir(rel) {
		return h.resolvePage(path.Join(rel, "index.html"))
	}

	switch pageKind(rel) {
	case kindHTML:
		if h.isFile(rel) {
			return rel, true
		}
		md := strings.TrimSuffix(rel, path.Ext(rel)) + ".md"
		if h.isFile(md) {
			return md, true
		}
	case kindMarkdown:
		if h.isFile(rel) {
			return rel, true
		}
	}
	return "", false
}

func (h *Handler) isDir(rel string) bool {
	info, err := os.Stat(filepath.Join(h.siteDir, filepath.FromSlash(rel)))
	return err == nil && info.IsDir()
}

func (h *Handler) isFile(rel string) bool {
	info, err := os.Stat(filepath.Join(h.siteDir, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
