package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStylesheet is linked from every page rendered from markdown.
const DefaultStylesheet = "css/style.css"

// pageData holds the data passed to the HTML template for each markdown page.
type pageData struct {
	Title      string
	Content    template.HTML
	BasePath   string
	Stylesheet string
}

// pageRenderer converts markdown sources into full HTML pages.
type pageRenderer struct {
	md         goldmark.Markdown
	tmpl       *template.Template
	stylesheet string
}

func newPageRenderer(stylesheet string) (*pageRenderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	// Raw HTML stays enabled so authors can place <img data-image-slot=...> in markdown.
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &pageRenderer{md: md, tmpl: tmpl, stylesheet: stylesheet}, nil
}

// render writes the HTML page for the markdown file at relPath.
func (p *pageRenderer) render(relPath string, src []byte, w io.Writer) error {
	var body bytes.Buffer
	if err := p.md.Convert(src, &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	data := pageData{
		Title:      extractTitle(string(src), relPath),
		Content:    template.HTML(rewriteMDLinks(body.String())),
		BasePath:   basePath(mdPathToHTML(relPath)),
		Stylesheet: p.stylesheet,
	}
	return p.tmpl.Execute(w, data)
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}

// rewriteMDLinks changes relative .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	content = strings.ReplaceAll(content, `.md"`, `.html"`)
	return strings.ReplaceAll(content, `.md#`, `.html#`)
}

// mdPathToHTML maps "menu/specials.md" to "menu/specials.html".
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}

// basePath returns the "../" prefix leading from relPath back to the site root.
func basePath(relPath string) string {
	return strings.Repeat("../", strings.Count(filepath.ToSlash(relPath), "/"))
}
