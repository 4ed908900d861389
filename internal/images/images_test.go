package images

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

func TestResolveURLAllMenuSlots(t *testing.T) {
	catalog := DefaultCatalog()
	base := DefaultBaseURLs()

	for _, mode := range []Mode{ModeRemote, ModeLocal} {
		reg := New(catalog, base, mode)
		for sub, items := range catalog.Menu {
			for item, d := range items {
				want := base.Remote + d.RemoteFragment
				if mode == ModeLocal {
					want = base.Local + d.LocalFragment
				}
				if got := reg.ResolveURL(CategoryMenu, sub, item); got != want {
					t.Errorf("[%s] ResolveURL(menu, %s, %s) = %q, want %q", mode, sub, item, got, want)
				}
				if got := reg.ResolveAltText(CategoryMenu, sub, item); got != d.AltText {
					t.Errorf("[%s] ResolveAltText(menu, %s, %s) = %q, want %q", mode, sub, item, got, d.AltText)
				}
			}
		}
	}
}

func TestResolveHero(t *testing.T) {
	reg := Default()
	if got, want := reg.ResolveURL(CategoryHero, "", ""), "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=1200"; got != want {
		t.Errorf("remote hero = %q, want %q", got, want)
	}
	local := reg.WithMode(ModeLocal)
	if got, want := local.ResolveURL(CategoryHero, "", ""), "/images/hero-restaurant.jpg"; got != want {
		t.Errorf("local hero = %q, want %q", got, want)
	}
	if got := local.ResolveAltText(CategoryHero, "", ""); got != "Puchicavos Restaurant Interior" {
		t.Errorf("hero alt = %q", got)
	}
}

func TestDessertScenario(t *testing.T) {
	reg := Default()
	if got, want := reg.ResolveURL("menu", "desserts", "item2"), "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=150"; got != want {
		t.Errorf("remote = %q, want %q", got, want)
	}
	if got, want := reg.WithMode(ModeLocal).ResolveURL("menu", "desserts", "item2"), "/images/dessert-2.jpg"; got != want {
		t.Errorf("local = %q, want %q", got, want)
	}
}

func TestUnknownSlotsResolveEmpty(t *testing.T) {
	reg := Default()
	tests := []struct {
		category, sub, item string
	}{
		{"menu", "nonexistent", "item1"},
		{"menu", "desserts", "item9"},
		{"menu", "", "item1"},
		{"menu", "desserts", ""},
		{"drinks", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := reg.ResolveURL(tt.category, tt.sub, tt.item); got != "" {
			t.Errorf("ResolveURL(%q, %q, %q) = %q, want empty", tt.category, tt.sub, tt.item, got)
		}
		if got := reg.ResolveAltText(tt.category, tt.sub, tt.item); got != "" {
			t.Errorf("ResolveAltText(%q, %q, %q) = %q, want empty", tt.category, tt.sub, tt.item, got)
		}
		if _, ok := reg.Lookup(Slot{Category: tt.category, Subcategory: tt.sub, Item: tt.item}); ok {
			t.Errorf("Lookup(%q, %q, %q) reported found", tt.category, tt.sub, tt.item)
		}
	}
}

func TestLookupDistinguishesFoundEmpty(t *testing.T) {
	catalog := Catalog{
		Hero: Descriptor{RemoteFragment: "hero.jpg"},
		Menu: map[string]map[string]Descriptor{
			Desserts: {"item1": {RemoteFragment: "d1.jpg", AltText: ""}},
		},
	}
	reg := New(catalog, DefaultBaseURLs(), ModeRemote)
	res, ok := reg.Lookup(MenuSlot(Desserts, "item1"))
	if !ok || !res.Found {
		t.Fatal("expected slot to be found")
	}
	if res.AltText != "" {
		t.Errorf("alt = %q, want empty", res.AltText)
	}
}

func TestRegistryIsolatedFromCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	reg := New(catalog, DefaultBaseURLs(), ModeRemote)
	catalog.Menu[Desserts]["item2"] = Descriptor{RemoteFragment: "changed.jpg"}
	delete(catalog.Menu, Appetizers)

	if got := reg.ResolveURL("menu", "desserts", "item2"); got != "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=150" {
		t.Errorf("registry observed caller mutation: %q", got)
	}
	if got := reg.ResolveURL("menu", "appetizers", "item1"); got == "" {
		t.Error("registry lost appetizers after caller deleted them")
	}
}

func TestWithModeLeavesOriginal(t *testing.T) {
	reg := Default()
	local := reg.WithMode(ModeLocal)
	if reg.Mode() != ModeRemote {
		t.Errorf("original mode = %q, want remote", reg.Mode())
	}
	if local.Mode() != ModeLocal {
		t.Errorf("derived mode = %q, want local", local.Mode())
	}
	if local.BaseURL() != "/images/" {
		t.Errorf("local base = %q", local.BaseURL())
	}
}

func TestSlotsOrder(t *testing.T) {
	catalog := DefaultCatalog()
	catalog.Menu["drinks"] = map[string]Descriptor{
		"item10": {RemoteFragment: "d10.jpg"},
		"item2":  {RemoteFragment: "d2.jpg"},
	}
	reg := New(catalog, DefaultBaseURLs(), ModeRemote)
	slots := reg.Slots()

	want := []string{
		"hero",
		"menu.appetizers.item1", "menu.appetizers.item2", "menu.appetizers.item3",
		"menu.mainCourses.item1", "menu.mainCourses.item2", "menu.mainCourses.item3",
		"menu.desserts.item1", "menu.desserts.item2", "menu.desserts.item3",
		"menu.drinks.item2", "menu.drinks.item10",
	}
	if len(slots) != len(want) {
		t.Fatalf("slots = %d, want %d", len(slots), len(want))
	}
	for i, s := range slots {
		if s.String() != want[i] {
			t.Errorf("slots[%d] = %q, want %q", i, s.String(), want[i])
		}
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    Slot
		wantErr bool
	}{
		{"hero", HeroSlot(), false},
		{"menu.desserts.item2", MenuSlot("desserts", "item2"), false},
		{" menu.appetizers.item1 ", MenuSlot("appetizers", "item1"), false},
		{"menu.desserts", Slot{}, true},
		{"menu..item1", Slot{}, true},
		{"hero.extra", Slot{}, true},
		{"", Slot{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSlot(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSlot(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSlot(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{"remote": ModeRemote, "LOCAL": ModeLocal, "": ModeRemote} {
		got, err := ParseMode(input)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseMode("cdn"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestCatalogSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	original := DefaultCatalog()
	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if loaded.Hero != original.Hero {
		t.Errorf("hero = %+v, want %+v", loaded.Hero, original.Hero)
	}
	if got := loaded.Menu[Desserts]["item2"]; got != original.Menu[Desserts]["item2"] {
		t.Errorf("desserts.item2 = %+v", got)
	}
}

func TestParseCatalogYAML(t *testing.T) {
	data := []byte(`
hero:
  filename: photo-hero?w=1200
  alt: Hero
  local_filename: hero.jpg
menu:
  drinks:
    item1:
      filename: photo-drink
      alt: Lemonade
      local_filename: drink-1.jpg
`)
	c, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	reg := New(c, BaseURLs{Remote: "https://cdn.example.com/", Local: "/static/"}, ModeLocal)
	if got := reg.ResolveURL("menu", "drinks", "item1"); got != "/static/drink-1.jpg" {
		t.Errorf("drinks.item1 = %q", got)
	}
}

func TestLoadCatalogTestdata(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("..", "..", "testdata", "catalog.yml"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	remote := New(c, DefaultBaseURLs(), ModeRemote)
	local := remote.WithMode(ModeLocal)

	if got := local.ResolveURL("hero", "", ""); got != "/images/hero-dining.jpg" {
		t.Errorf("local hero = %q", got)
	}
	// desserts.item1 is only hosted locally.
	res, ok := remote.Lookup(MenuSlot(Desserts, "item1"))
	if !ok || res.URL != "" || res.AltText != "Flan" {
		t.Errorf("remote desserts.item1 = %+v, %v", res, ok)
	}
	if got := local.ResolveURL("menu", Desserts, "item1"); got != "/images/flan.jpg" {
		t.Errorf("local desserts.item1 = %q", got)
	}

	var got []string
	for _, s := range remote.Slots() {
		got = append(got, s.String())
	}
	want := []string{"hero", "menu.appetizers.item1", "menu.desserts.item1", "menu.drinks.item1"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestParseCatalogInvalid(t *testing.T) {
	tests := map[string]string{
		"no hero":     "menu: {}\n",
		"empty item":  "hero: {filename: h.jpg}\nmenu:\n  desserts:\n    item1: {alt: x}\n",
		"broken yaml": "hero: [",
	}
	for name, data := range tests {
		if _, err := ParseCatalog([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	} else if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, Default(), FormatCSV); err != nil {
		t.Fatalf("Export: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(records) != 11 {
		t.Fatalf("records = %d, want 11 (header + 10 slots)", len(records))
	}
	if records[0][0] != "slot" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "hero" || records[1][4] != "hero-restaurant.jpg" {
		t.Errorf("hero row = %v", records[1])
	}
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, Default().WithMode(ModeLocal), FormatXLSX); err != nil {
		t.Fatalf("Export: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("rows = %d, want 11", len(rows))
	}
	if rows[9][0] != "menu.desserts.item2" || rows[9][1] != "/images/dessert-2.jpg" {
		t.Errorf("desserts.item2 row = %v", rows[9])
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("out.XLSX"); err != nil || f != FormatXLSX {
		t.Errorf("xlsx: %q, %v", f, err)
	}
	if f, err := FormatFromPath("out.csv"); err != nil || f != FormatCSV {
		t.Errorf("csv: %q, %v", f, err)
	}
	if _, err := FormatFromPath("out.json"); err == nil {
		t.Error("expected error for .json")
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, Default())

	req := httptest.NewRequest("GET", "/api/images/menu.desserts.item2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET slot: status %d", w.Code)
	}
	var res Resolution
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.URL != "https://images.unsplash.com/photo-1551024506-0bccd828d307?w=150" {
		t.Errorf("url = %q", res.URL)
	}

	req = httptest.NewRequest("GET", "/api/images/menu.nonexistent.item1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown slot: status %d, want 404", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/images/bogus", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad slot: status %d, want 400", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/images", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	var list listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list.Images) != 10 || list.Mode != ModeRemote {
		t.Errorf("list = %d images, mode %q", len(list.Images), list.Mode)
	}
}
