package images

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in Puchicavos image catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Hero: Descriptor{
			RemoteFragment: "photo-1517248135467-4c7edcad34c4?w=1200",
			AltText:        "Puchicavos Restaurant Interior",
			LocalFragment:  "hero-restaurant.jpg",
		},
		Menu: map[string]map[string]Descriptor{
			Appetizers: {
				"item1": {RemoteFragment: "photo-1504674900247-0877df9cc836?w=150", AltText: "Sample Appetizer 1", LocalFragment: "appetizer-1.jpg"},
				"item2": {RemoteFragment: "photo-1540189549336-e6e99c3679fe?w=150", AltText: "Sample Appetizer 2", LocalFragment: "appetizer-2.jpg"},
				"item3": {RemoteFragment: "photo-1565299624946-b28f40a0ae38?w=150", AltText: "Sample Appetizer 3", LocalFragment: "appetizer-3.jpg"},
			},
			MainCourses: {
				"item1": {RemoteFragment: "photo-1567620905732-2d1ec7ab7445?w=150", AltText: "Sample Entree 1", LocalFragment: "entree-1.jpg"},
				"item2": {RemoteFragment: "photo-1546069901-ba9599a7e63c?w=150", AltText: "Sample Entree 2", LocalFragment: "entree-2.jpg"},
				"item3": {RemoteFragment: "photo-1565958011703-44f9829ba187?w=150", AltText: "Sample Entree 3", LocalFragment: "entree-3.jpg"},
			},
			Desserts: {
				"item1": {RemoteFragment: "photo-1488477181946-6428a0291777?w=150", AltText: "Sample Dessert 1", LocalFragment: "dessert-1.jpg"},
				"item2": {RemoteFragment: "photo-1551024506-0bccd828d307?w=150", AltText: "Sample Dessert 2", LocalFragment: "dessert-2.jpg"},
				"item3": {RemoteFragment: "photo-1624353365286-3f8d62daad51?w=150", AltText: "Sample Dessert 3", LocalFragment: "dessert-3.jpg"},
			},
		},
	}
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yamlv3.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks that every descriptor names at least one image fragment.
func (c Catalog) Validate() error {
	if c.Hero.RemoteFragment == "" && c.Hero.LocalFragment == "" {
		return fmt.Errorf("hero: filename or local_filename is required")
	}
	for sub, items := range c.Menu {
		if sub == "" {
			return fmt.Errorf("menu: empty subcategory key")
		}
		for item, d := range items {
			if item == "" {
				return fmt.Errorf("menu.%s: empty item key", sub)
			}
			if d.RemoteFragment == "" && d.LocalFragment == "" {
				return fmt.Errorf("menu.%s.%s: filename or local_filename is required", sub, item)
			}
		}
	}
	return nil
}

// Save writes the catalog as YAML.
func (c Catalog) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog to %s: %w", path, err)
	}
	return nil
}
