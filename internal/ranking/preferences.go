// Package ranking scores a job corpus against a candidate profile using
// multi-category embedding similarity.
package ranking

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Preference pairs a category name with its free-text preference.
// The category set is open; unknown categories score against the
// composite job text (see setFor).
type Preference struct {
	Category string
	Text     string
}

// Preferences is an insertion-ordered list of preferences. Output columns
// follow this order.
type Preferences []Preference

// UnmarshalYAML decodes a YAML mapping into Preferences, preserving the
// mapping's key order.
func (p *Preferences) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("preferences must be a mapping of category to text")
	}
	prefs := make(Preferences, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		prefs = append(prefs, Preference{
			Category: node.Content[i].Value,
			Text:     node.Content[i+1].Value,
		})
	}
	*p = prefs
	return nil
}

// Categories returns the category names in insertion order.
func (p Preferences) Categories() []string {
	names := make([]string, len(p))
	for i, pref := range p {
		names[i] = pref.Category
	}
	return names
}
