package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Form is a complete form definition: the flat ordered item list, the
// ordered group list and the form-level settings. The item order is the
// single source of truth for rendering order; group membership is a
// filter over it.
type Form struct {
	Name     string       `yaml:"name"`
	Path     string       `yaml:"-"`
	Items    ItemList     `yaml:"items"`
	Groups   []Group      `yaml:"groups,omitempty"`
	Settings FormSettings `yaml:"settings"`
}

// ItemList is an ordered item sequence that round-trips the Field /
// ContentBlock union through YAML via a kind tag on each entry.
type ItemList []Item

type fieldDoc struct {
	Kind  string `yaml:"kind"`
	Field `yaml:",inline"`
}

type contentDoc struct {
	Kind         string `yaml:"kind"`
	ContentBlock `yaml:",inline"`
}

func (l ItemList) MarshalYAML() (interface{}, error) {
	out := make([]interface{}, 0, len(l))
	for _, it := range l {
		switch v := it.(type) {
		case *Field:
			out = append(out, fieldDoc{Kind: string(ItemKindField), Field: *v})
		case *ContentBlock:
			out = append(out, contentDoc{Kind: string(ItemKindContent), ContentBlock: *v})
		default:
			return nil, fmt.Errorf("cannot marshal item of type %T", it)
		}
	}
	return out, nil
}

func (l *ItemList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("items: expected a sequence, got %v", value.Kind)
	}

	items := make(ItemList, 0, len(value.Content))
	for _, node := range value.Content {
		var probe struct {
			Kind string `yaml:"kind"`
		}
		if err := node.Decode(&probe); err != nil {
			return fmt.Errorf("items: failed to read item kind: %w", err)
		}

		switch ItemKind(probe.Kind) {
		case ItemKindField:
			var f Field
			if err := node.Decode(&f); err != nil {
				return fmt.Errorf("items: failed to decode field: %w", err)
			}
			items = append(items, &f)
		case ItemKindContent:
			var b ContentBlock
			if err := node.Decode(&b); err != nil {
				return fmt.Errorf("items: failed to decode content block: %w", err)
			}
			items = append(items, &b)
		default:
			return fmt.Errorf("items: unknown item kind %q", probe.Kind)
		}
	}

	*l = items
	return nil
}

// ItemByID returns the item with the given id, or nil.
func (f *Form) ItemByID(id string) Item {
	for _, it := range f.Items {
		if it.ItemID() == id {
			return it
		}
	}
	return nil
}

// GroupByID returns the group with the given id, or nil.
func (f *Form) GroupByID(id string) *Group {
	for i := range f.Groups {
		if f.Groups[i].ID == id {
			return &f.Groups[i]
		}
	}
	return nil
}
