package locale

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Entry is a catalog item: a locale tag and its display name.
type Entry struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// Catalog is an ordered, immutable set of available locales.
type Catalog struct {
	names   map[string]string
	entries []Entry
}

// NewCatalog builds a catalog preserving the order of entries.
// Every tag must be a well-formed BCP 47 tag and appear only once.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		names:   make(map[string]string, len(entries)),
		entries: make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		if _, err := language.Parse(e.Tag); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTag, e.Tag, err)
		}
		if _, exists := c.names[e.Tag]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, e.Tag)
		}
		c.names[e.Tag] = e.Name
		c.entries = append(c.entries, e)
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on error.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog reads a YAML mapping of tag to display name, keeping the
// document order of its keys.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Content) == 0 {
		return NewCatalog()
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of tag to name", ErrInvalidCatalog)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: name of %q must be a string", ErrInvalidCatalog, key.Value)
		}
		entries = append(entries, Entry{Tag: key.Value, Name: value.Value})
	}

	return NewCatalog(entries...)
}

// Has reports whether tag is in the catalog.
func (c *Catalog) Has(tag string) bool {
	_, ok := c.names[tag]
	return ok
}

// Name returns the display name for tag, or "" when absent.
func (c *Catalog) Name(tag string) string {
	return c.names[tag]
}

// Tags returns the catalog tags in order.
func (c *Catalog) Tags() []string {
	tags := make([]string, len(c.entries))
	for i, e := range c.entries {
		tags[i] = e.Tag
	}
	return tags
}

// Entries returns a copy of the catalog entries in order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Len returns the number of locales in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// BestMatch resolves requested against the catalog. See the package
// documentation for the precedence rules.
func (c *Catalog) BestMatch(requested string) (string, bool) {
	return BestMatch(requested, c.Tags())
}
