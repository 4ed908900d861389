// Package pagesync writes registry image URLs and alt text into parsed HTML pages.
package pagesync

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/puchicavos/website/internal/images"
)

// Binding selects how menu image elements are matched to registry slots.
type Binding string

const (
	// BindExplicit matches elements by their data-image-slot attribute.
	BindExplicit Binding = "explicit"
	// BindPositional matches the N-th .item-image of the N-th .menu-category.
	BindPositional Binding = "positional"
	// BindBoth runs the explicit pass and then the positional pass.
	BindBoth Binding = "both"
)

// ParseBinding converts a config value into a Binding.
func ParseBinding(s string) (Binding, error) {
	switch Binding(strings.ToLower(strings.TrimSpace(s))) {
	case BindExplicit, "":
		return BindExplicit, nil
	case BindPositional:
		return BindPositional, nil
	case BindBoth:
		return BindBoth, nil
	default:
		return "", fmt.Errorf("invalid binding %q: must be explicit, positional or both", s)
	}
}

const (
	// SlotAttr names the registry slot an element displays, e.g. "menu.desserts.item2".
	SlotAttr = "data-image-slot"
	// HeroProperty is the CSS custom property read by the hero background rule.
	HeroProperty = "--hero-bg-image"
)

// positionalSelector is the legacy markup contract: category N holds MenuOrder[N-1].
const positionalSelector = ".menu-category:nth-child(%d) .item-image"

// Options configures a Synchronizer.
type Options struct {
	Binding Binding
	// Placeholder, if set, is used as src for elements whose slot is unknown.
	Placeholder string
	Logger      logrus.FieldLogger
}

// Synchronizer applies one Registry to HTML documents.
type Synchronizer struct {
	reg  *images.Registry
	opts Options
	log  logrus.FieldLogger
}

// New creates a Synchronizer. A nil logger discards warnings.
func New(reg *images.Registry, opts Options) *Synchronizer {
	if opts.Binding == "" {
		opts.Binding = BindExplicit
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Synchronizer{reg: reg, opts: opts, log: log}
}

// Registry returns the registry the synchronizer resolves against.
func (s *Synchronizer) Registry() *images.Registry { return s.reg }

// Report summarizes one synchronization pass.
type Report struct {
	HeroApplied bool     `json:"hero_applied"`
	Applied     int      `json:"applied"`
	Missing     []string `json:"missing,omitempty"`
}

func (r *Report) addMissing(slot string) {
	for _, m := range r.Missing {
		if m == slot {
			return
		}
	}
	r.Missing = append(r.Missing, slot)
}

// SynchronizeAll updates the hero property and every bound menu image in doc.
func (s *Synchronizer) SynchronizeAll(doc *goquery.Document) Report {
	return s.SynchronizePage("", doc)
}

// SynchronizePage is SynchronizeAll with the page name attached to warnings.
func (s *Synchronizer) SynchronizePage(page string, doc *goquery.Document) Report {
	log := s.log
	if page != "" {
		log = log.WithField("page", page)
	}

	var report Report
	report.HeroApplied = s.applyHero(doc)

	if s.opts.Binding == BindExplicit || s.opts.Binding == BindBoth {
		s.applyExplicit(doc, &report)
	}
	if s.opts.Binding == BindPositional || s.opts.Binding == BindBoth {
		s.applyPositional(doc, &report)
	}

	for _, slot := range report.Missing {
		log.WithField("slot", slot).Warn("image slot not found in registry")
	}
	return report
}

// Render parses an HTML page from r, synchronizes it and writes the result to w.
func (s *Synchronizer) Render(page string, r io.Reader, w io.Writer) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("parsing %s: %w", page, err)
	}
	report := s.SynchronizePage(page, doc)
	out, err := doc.Html()
	if err != nil {
		return Report{}, fmt.Errorf("rendering %s: %w", page, err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return Report{}, err
	}
	return report, nil
}

func (s *Synchronizer) applyHero(doc *goquery.Document) bool {
	res, ok := s.reg.Lookup(images.HeroSlot())
	if !ok || res.URL == "" {
		return false
	}
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return false
	}
	style, _ := root.Attr("style")
	root.SetAttr("style", setStyleProperty(style, HeroProperty, cssURL(res.URL)))
	return true
}

func (s *Synchronizer) applyExplicit(doc *goquery.Document, report *Report) {
	doc.Find("[" + SlotAttr + "]").Each(func(_ int, el *goquery.Selection) {
		raw, _ := el.Attr(SlotAttr)
		slot, err := images.ParseSlot(raw)
		if err != nil || slot.Category != images.CategoryMenu {
			s.apply(el, images.Resolution{Slot: raw}, false, report)
			return
		}
		res, ok := s.reg.Lookup(slot)
		s.apply(el, res, ok, report)
	})
}

func (s *Synchronizer) applyPositional(doc *goquery.Document, report *Report) {
	for n, sub := range images.MenuOrder {
		doc.Find(fmt.Sprintf(positionalSelector, n+1)).Each(func(i int, el *goquery.Selection) {
			if _, bound := el.Attr(SlotAttr); bound {
				return
			}
			slot := images.MenuSlot(sub, images.ItemKey(i+1))
			res, ok := s.reg.Lookup(slot)
			s.apply(el, res, ok, report)
		})
	}
}

func (s *Synchronizer) apply(el *goquery.Selection, res images.Resolution, found bool, report *Report) {
	if !found {
		report.addMissing(res.Slot)
		el.SetAttr("src", s.opts.Placeholder)
		el.SetAttr("alt", "")
		return
	}
	el.SetAttr("src", res.URL)
	el.SetAttr("alt", res.AltText)
	report.Applied++
}
