package images

import (
	"sort"
	"strconv"
	"strings"
)

// Registry resolves image slots to URLs and alt text. It is built once
// and never mutated, so it is safe to share between goroutines.
type Registry struct {
	catalog Catalog
	base    BaseURLs
	mode    Mode
}

// New creates a Registry over a private copy of the catalog.
func New(catalog Catalog, base BaseURLs, mode Mode) *Registry {
	if mode != ModeLocal {
		mode = ModeRemote
	}
	return &Registry{
		catalog: copyCatalog(catalog),
		base:    base,
		mode:    mode,
	}
}

// Default returns a Registry over the built-in catalog in remote mode.
func Default() *Registry {
	return New(DefaultCatalog(), DefaultBaseURLs(), ModeRemote)
}

// Mode returns the active resolution mode.
func (r *Registry) Mode() Mode { return r.mode }

// BaseURL returns the base URL for the active mode.
func (r *Registry) BaseURL() string {
	if r.mode == ModeLocal {
		return r.base.Local
	}
	return r.base.Remote
}

// WithMode returns a Registry that resolves the same catalog in mode m.
func (r *Registry) WithMode(m Mode) *Registry {
	if m != ModeLocal {
		m = ModeRemote
	}
	return &Registry{catalog: r.catalog, base: r.base, mode: m}
}

func (r *Registry) descriptor(slot Slot) (Descriptor, bool) {
	switch slot.Category {
	case CategoryHero:
		return r.catalog.Hero, true
	case CategoryMenu:
		if slot.Subcategory == "" || slot.Item == "" {
			return Descriptor{}, false
		}
		items, ok := r.catalog.Menu[slot.Subcategory]
		if !ok {
			return Descriptor{}, false
		}
		d, ok := items[slot.Item]
		return d, ok
	default:
		return Descriptor{}, false
	}
}

// Lookup resolves a slot. The boolean is false when the slot is not in the
// catalog. URL is empty when the slot has no file for the active mode.
func (r *Registry) Lookup(slot Slot) (Resolution, bool) {
	d, ok := r.descriptor(slot)
	if !ok {
		return Resolution{Slot: slot.String()}, false
	}
	res := Resolution{Slot: slot.String(), AltText: d.AltText, Found: true}
	fragment := d.RemoteFragment
	if r.mode == ModeLocal {
		fragment = d.LocalFragment
	}
	// A descriptor may carry only one of the two filenames.
	if fragment != "" {
		res.URL = r.BaseURL() + fragment
	}
	return res, true
}

// ResolveURL returns the full image URL for a slot, or "" if it is unknown.
func (r *Registry) ResolveURL(category, subcategory, item string) string {
	res, _ := r.Lookup(Slot{Category: category, Subcategory: subcategory, Item: item})
	return res.URL
}

// ResolveAltText returns the alt text for a slot, or "" if it is unknown.
func (r *Registry) ResolveAltText(category, subcategory, item string) string {
	res, _ := r.Lookup(Slot{Category: category, Subcategory: subcategory, Item: item})
	return res.AltText
}

// Slots lists every known slot: hero first, then menu items in page order.
func (r *Registry) Slots() []Slot {
	slots := []Slot{HeroSlot()}
	for _, sub := range r.subcategories() {
		items := make([]string, 0, len(r.catalog.Menu[sub]))
		for item := range r.catalog.Menu[sub] {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool { return lessItem(items[i], items[j]) })
		for _, item := range items {
			slots = append(slots, MenuSlot(sub, item))
		}
	}
	return slots
}

// All resolves every known slot.
func (r *Registry) All() []Resolution {
	slots := r.Slots()
	out := make([]Resolution, 0, len(slots))
	for _, s := range slots {
		res, _ := r.Lookup(s)
		out = append(out, res)
	}
	return out
}

// subcategories returns the built-in order followed by any extras alphabetically.
func (r *Registry) subcategories() []string {
	var out []string
	known := make(map[string]bool, len(MenuOrder))
	for _, sub := range MenuOrder {
		known[sub] = true
		if _, ok := r.catalog.Menu[sub]; ok {
			out = append(out, sub)
		}
	}
	var extra []string
	for sub := range r.catalog.Menu {
		if !known[sub] {
			extra = append(extra, sub)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// lessItem orders "item2" before "item10"; other keys sort lexically after them.
func lessItem(a, b string) bool {
	na, aok := itemNumber(a)
	nb, bok := itemNumber(b)
	switch {
	case aok && bok && na != nb:
		return na < nb
	case aok && bok:
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func itemNumber(key string) (int, bool) {
	if !strings.HasPrefix(key, "item") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, "item"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ItemKey returns the key of the n-th item of a category (1-based).
func ItemKey(n int) string {
	return "item" + strconv.Itoa(n)
}

func copyCatalog(c Catalog) Catalog {
	out := Catalog{Hero: c.Hero, Menu: make(map[string]map[string]Descriptor, len(c.Menu))}
	for sub, items := range c.Menu {
		m := make(map[string]Descriptor, len(items))
		for k, d := range items {
			m[k] = d
		}
		out.Menu[sub] = m
	}
	return out
}
