// Package nav loads the documentation navigation order and resolves it
// against the aggregate front matter into a side-navigation tree.
package nav

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Order is the site-wide navigation order for one category.
type Order []Item

// Item is one entry of the navigation order. Exactly one shape is set:
// a page Slug, a Divider, a Category with nested Content, or a direct
// link (Title and Href).
type Item struct {
	Slug string

	Divider bool

	Category string
	Name     string
	Content  []Item

	Title string
	Href  string
}

// IsCategory reports whether the item nests other items.
func (it Item) IsCategory() bool { return it.Category != "" }

// IsLink reports whether the item points at an arbitrary URL.
func (it Item) IsLink() bool { return it.Href != "" }

// UnmarshalYAML accepts a plain string (slug or divider) or a mapping.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s := strings.TrimSpace(value.Value)
		if s == "" {
			return fmt.Errorf("nav: line %d: empty entry", value.Line)
		}
		if isDivider(s) {
			*it = Item{Divider: true}
			return nil
		}
		*it = Item{Slug: s}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Category string `yaml:"category"`
			Name     string `yaml:"name"`
			Content  []Item `yaml:"content"`
			Title    string `yaml:"title"`
			Href     string `yaml:"href"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		switch {
		case raw.Category != "" && raw.Href != "":
			return fmt.Errorf("nav: line %d: entry cannot be both a category and a link", value.Line)
		case raw.Category != "":
			*it = Item{
				Category: strings.TrimSpace(raw.Category),
				Name:     strings.TrimSpace(raw.Name),
				Content:  raw.Content,
			}
		case raw.Href != "":
			if strings.TrimSpace(raw.Title) == "" {
				return fmt.Errorf("nav: line %d: link %q needs a title", value.Line, raw.Href)
			}
			*it = Item{Title: strings.TrimSpace(raw.Title), Href: strings.TrimSpace(raw.Href)}
		default:
			return fmt.Errorf("nav: line %d: entry needs a category or an href", value.Line)
		}
		return nil
	default:
		return fmt.Errorf("nav: line %d: unsupported entry", value.Line)
	}
}

func isDivider(s string) bool {
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

// ParseOrder decodes a YAML navigation order.
func ParseOrder(data []byte) (Order, error) {
	var order Order
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// LoadOrder reads and decodes the navigation order file at path.
func LoadOrder(path string) (Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nav: read order: %w", err)
	}
	order, err := ParseOrder(data)
	if err != nil {
		return nil, fmt.Errorf("nav: parse %s: %w", path, err)
	}
	return order, nil
}
