package images

import (
	"fmt"
	"strings"
)

// Mode selects which base URL and which descriptor fragment a lookup uses.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRemote, "":
		return ModeRemote, nil
	case ModeLocal:
		return ModeLocal, nil
	default:
		return "", fmt.Errorf("invalid image mode %q: must be remote or local", s)
	}
}

// Slot categories.
const (
	CategoryHero = "hero"
	CategoryMenu = "menu"
)

// Built-in menu subcategories, in page order.
const (
	Appetizers  = "appetizers"
	MainCourses = "mainCourses"
	Desserts    = "desserts"
)

// MenuOrder is the order in which menu categories appear on the page.
var MenuOrder = []string{Appetizers, MainCourses, Desserts}

// Descriptor holds the remote/local filename fragments and alt text for one image slot.
type Descriptor struct {
	RemoteFragment string `yaml:"filename" json:"filename"`
	AltText        string `yaml:"alt" json:"alt"`
	LocalFragment  string `yaml:"local_filename" json:"local_filename"`
}

// Catalog is the full set of descriptors, keyed by section.
type Catalog struct {
	Hero Descriptor                       `yaml:"hero" json:"hero"`
	Menu map[string]map[string]Descriptor `yaml:"menu" json:"menu"`
}

// BaseURLs are the prefixes joined with a descriptor fragment.
type BaseURLs struct {
	Remote string `yaml:"remote" json:"remote"`
	Local  string `yaml:"local" json:"local"`
}

// DefaultBaseURLs returns the Unsplash CDN and the self-hosted /images/ path.
func DefaultBaseURLs() BaseURLs {
	return BaseURLs{
		Remote: "https://images.unsplash.com/",
		Local:  "/images/",
	}
}

// Slot names one position in the page where an image belongs.
type Slot struct {
	Category    string
	Subcategory string
	Item        string
}

// HeroSlot returns the hero banner slot.
func HeroSlot() Slot { return Slot{Category: CategoryHero} }

// MenuSlot returns the slot for one menu item.
func MenuSlot(subcategory, item string) Slot {
	return Slot{Category: CategoryMenu, Subcategory: subcategory, Item: item}
}

// String renders "hero" or "menu.<subcategory>.<item>".
func (s Slot) String() string {
	if s.Category == CategoryMenu {
		return s.Category + "." + s.Subcategory + "." + s.Item
	}
	return s.Category
}

// ParseSlot is the inverse of Slot.String.
func ParseSlot(s string) (Slot, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	switch {
	case len(parts) == 1 && parts[0] == CategoryHero:
		return HeroSlot(), nil
	case len(parts) == 3 && parts[0] == CategoryMenu && parts[1] != "" && parts[2] != "":
		return MenuSlot(parts[1], parts[2]), nil
	default:
		return Slot{}, fmt.Errorf("invalid slot %q: want hero or menu.<subcategory>.<item>", s)
	}
}

// Resolution is the outcome of looking up one slot.
type Resolution struct {
	Slot    string `json:"slot"`
	URL     string `json:"url"`
	AltText string `json:"alt"`
	Found   bool   `json:"found"`
}
