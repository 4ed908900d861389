package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/logging"
	"github.com/puchicavos/website/internal/pagesync"
	"github.com/puchicavos/website/internal/progress"
)

// ManifestFile is written to the output root after every render.
const ManifestFile = "images-manifest.json"

// Generator renders a site directory into an output directory, filling
// every image slot from the synchronizer's registry.
type Generator struct {
	SiteDir    string
	OutputDir  string
	Include    []string
	Exclude    []string
	Stylesheet string
	Sync       *pagesync.Synchronizer
	Reporter   progress.Reporter
	Logger     logrus.FieldLogger
}

// NewGenerator creates a Generator with default filters and no progress output.
func NewGenerator(siteDir, outputDir string, sync *pagesync.Synchronizer) *Generator {
	return &Generator{
		SiteDir:    siteDir,
		OutputDir:  outputDir,
		Include:    []string{"**"},
		Stylesheet: DefaultStylesheet,
		Sync:       sync,
		Reporter:   progress.Noop{},
	}
}

// PageReport is the synchronization result for one rendered page.
type PageReport struct {
	Path string `json:"path"`
	pagesync.Report
}

// Summary describes one Generate run.
type Summary struct {
	BuildID string       `json:"build_id"`
	Pages   int          `json:"pages"`
	Copied  int          `json:"copied"`
	Missing []string     `json:"missing,omitempty"`
	Reports []PageReport `json:"reports"`
}

// manifest is the JSON document written to ManifestFile.
type manifest struct {
	BuildID     string              `json:"build_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Mode        images.Mode         `json:"mode"`
	BaseURL     string              `json:"base_url"`
	Images      []images.Resolution `json:"images"`
	Pages       []PageReport        `json:"pages"`
}

// Generate renders every included file. HTML and markdown pages are
// synchronized; other files are copied unchanged.
func (g *Generator) Generate(ctx context.Context) (*Summary, error) {
	if g.Sync == nil {
		return nil, fmt.Errorf("generator has no synchronizer")
	}
	log := g.Logger
	if log == nil {
		log = logging.Discard()
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Noop{}
	}

	paths, err := g.collect()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no site files found in %s", g.SiteDir)
	}

	renderer, err := newPageRenderer(g.Stylesheet)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	summary := &Summary{BuildID: uuid.New().String()}
	missing := map[string]bool{}

	reporter.Start(len(paths))
	for i, relPath := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reporter.Update(i+1, relPath)

		switch pageKind(relPath) {
		case kindHTML, kindMarkdown:
			outRel, report, err := g.renderPage(renderer, relPath)
			if err != nil {
				return nil, fmt.Errorf("rendering %s: %w", relPath, err)
			}
			summary.Pages++
			summary.Reports = append(summary.Reports, PageReport{Path: outRel, Report: report})
			for _, slot := range report.Missing {
				if !missing[slot] {
					missing[slot] = true
					summary.Missing = append(summary.Missing, slot)
				}
			}
			log.WithFields(logrus.Fields{"page": outRel, "applied": report.Applied}).Debug("page synchronized")
		default:
			if err := g.copyFile(relPath); err != nil {
				return nil, fmt.Errorf("copying %s: %w", relPath, err)
			}
			summary.Copied++
		}
	}
	reporter.Finish()

	if err := g.writeManifest(summary); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return summary, nil
}

// collect returns the slash-separated relative paths of all included files.
func (g *Generator) collect() ([]string, error) {
	absOut, _ := filepath.Abs(g.OutputDir)

	var paths []string
	err := filepath.WalkDir(g.SiteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// The output dir may live inside the site dir.
			if abs, _ := filepath.Abs(path); abs == absOut {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(g.SiteDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !MatchesInclude(rel, g.Include) || MatchesExclude(rel, g.Exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking site dir: %w", err)
	}
	return paths, nil
}

type fileKind int

const (
	kindAsset fileKind = iota
	kindHTML
	kindMarkdown
)

func pageKind(relPath string) fileKind {
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".html", ".htm":
		return kindHTML
	case ".md":
		return kindMarkdown
	default:
		return kindAsset
	}
}

// renderPage synchronizes one page and writes it to the output directory.
// It returns the output-relative path of the written page.
func (g *Generator) renderPage(renderer *pageRenderer, relPath string) (string, pagesync.Report, error) {
	src, err := os.ReadFile(filepath.Join(g.SiteDir, filepath.FromSlash(relPath)))
	if err != nil {
		return "", pagesync.Report{}, err
	}

	outRel := relPath
	if pageKind(relPath) == kindMarkdown {
		var page bytes.Buffer
		if err := renderer.render(relPath, src, &page); err != nil {
			return "", pagesync.Report{}, err
		}
		src = page.Bytes()
		outRel = mdPathToHTML(relPath)
	}

	var out bytes.Buffer
	report, err := g.Sync.Render(outRel, bytes.NewReader(src), &out)
	if err != nil {
		return "", pagesync.Report{}, err
	}
	if err := writeOutput(filepath.Join(g.OutputDir, filepath.FromSlash(outRel)), out.Bytes()); err != nil {
		return "", pagesync.Report{}, err
	}
	return outRel, report, nil
}

func (g *Generator) copyFile(relPath string) error {
	src, err := os.Open(filepath.Join(g.SiteDir, filepath.FromSlash(relPath)))
	if err != nil {
		return err
	}
	defer src.Close()

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (g *Generator) writeManifest(summary *Summary) error {
	reg := g.Sync.Registry()
	m := manifest{
		BuildID:     summary.BuildID,
		GeneratedAt: time.Now().UTC(),
		Mode:        reg.Mode(),
		BaseURL:     reg.BaseURL(),
		Images:      reg.All(),
		Pages:       summary.Reports,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(filepath.Join(g.OutputDir, ManifestFile), data)
}

// writeOutput replaces path atomically via a temp file and rename.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
