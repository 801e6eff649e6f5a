package navigation

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Node is one entry of the static navigation tree. Children keep their
// declaration order, which defines the reading sequence of the portal.
type Node struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Path       string  `json:"path"`
	Icon       string  `json:"icon,omitempty"`
	IsCategory bool    `json:"isCategory,omitempty"`
	Children   []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node renders content of its own: no children
// and not a grouping node.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0 && !n.IsCategory
}

// Tree is the process-wide navigation configuration, immutable after Load.
type Tree struct {
	roots  []*Node
	byKey  map[string]*Node
	byPath map[string]*Node
}

// Load decodes the navigation tree from YAML. Mapping order is preserved by
// walking the raw yaml.Node document instead of decoding into Go maps.
func Load(r io.Reader) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode navigation config: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("navigation config is empty")
	}

	roots, err := decodeChildren(doc.Content[0])
	if err != nil {
		return nil, err
	}

	t := &Tree{
		roots:  roots,
		byKey:  make(map[string]*Node),
		byPath: make(map[string]*Node),
	}
	for _, root := range roots {
		t.register(root)
	}
	return t, nil
}

// LoadFile loads the navigation tree from a YAML file on disk.
func LoadFile(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open navigation config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (t *Tree) register(n *Node) {
	if _, dup := t.byKey[n.Key]; !dup {
		t.byKey[n.Key] = n
	}
	if n.Path != "" {
		t.byPath[n.Path] = n
	}
	for _, c := range n.Children {
		t.register(c)
	}
}

// Roots returns the top-level nodes in declaration order.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Category returns the top-level node with the given key, or nil.
func (t *Tree) Category(key string) *Node {
	for _, root := range t.roots {
		if root.Key == key {
			return root
		}
	}
	return nil
}

// Label resolves a path to its navigation label, or "" when unknown.
func (t *Tree) Label(path string) string {
	if n, ok := t.byPath[path]; ok {
		return n.Label
	}
	return ""
}

func decodeChildren(mapping *yaml.Node) ([]*Node, error) {
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("navigation children must be a mapping, got %v at line %d", mapping.Kind, mapping.Line)
	}

	var nodes []*Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		node, err := decodeNode(key, mapping.Content[i+1])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(key string, value *yaml.Node) (*Node, error) {
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("navigation node %q must be a mapping (line %d)", key, value.Line)
	}

	n := &Node{Key: key}
	for i := 0; i+1 < len(value.Content); i += 2 {
		field := value.Content[i].Value
		fv := value.Content[i+1]

		switch field {
		case "label":
			n.Label = fv.Value
		case "path":
			n.Path = fv.Value
		case "icon":
			n.Icon = fv.Value
		case "isCategory":
			if err := fv.Decode(&n.IsCategory); err != nil {
				return nil, fmt.Errorf("navigation node %q: invalid isCategory: %w", key, err)
			}
		case "children":
			children, err := decodeChildren(fv)
			if err != nil {
				return nil, err
			}
			n.Children = children
		default:
			return nil, fmt.Errorf("navigation node %q: unknown field %q (line %d)", key, field, fv.Line)
		}
	}

	if n.Label == "" {
		return nil, fmt.Errorf("navigation node %q: label is required", key)
	}
	return n, nil
}
