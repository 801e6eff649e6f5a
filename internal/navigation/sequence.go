package navigation

import "strings"

// LeafPaths flattens a subtree into its ordered content sequence via
// depth-first pre-order traversal. A node without children is itself a leaf;
// grouping nodes contribute only their descendants.
func LeafPaths(n *Node) []string {
	if len(n.Children) == 0 {
		if n.IsCategory {
			return nil
		}
		return []string{n.Path}
	}

	var leaves []string
	for _, child := range n.Children {
		if child.IsCategory || len(child.Children) > 0 {
			leaves = append(leaves, LeafPaths(child)...)
		} else {
			leaves = append(leaves, child.Path)
		}
	}
	return leaves
}

// Position of a path inside its category's leaf sequence.
type Position struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Sequencer answers next/previous/position queries over the leaf sequence of
// the category owning a path. It feeds the infinite-scroll loader.
type Sequencer struct {
	tree *Tree
}

func NewSequencer(tree *Tree) *Sequencer {
	return &Sequencer{tree: tree}
}

// categoryLeaves derives the owning category from the first URL segment and
// returns that category's full leaf sequence.
func (s *Sequencer) categoryLeaves(path string) []string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return nil
	}
	root := s.tree.Category(segments[0])
	if root == nil {
		return nil
	}
	return LeafPaths(root)
}

// NextPath returns the leaf following path, or "" at the end of the
// sequence or when path is unknown.
func (s *Sequencer) NextPath(path string) string {
	leaves := s.categoryLeaves(path)
	idx := indexOf(leaves, path)
	if idx == -1 || idx >= len(leaves)-1 {
		return ""
	}
	return leaves[idx+1]
}

// PrevPath returns the leaf preceding path, or "" at the beginning or when
// path is unknown.
func (s *Sequencer) PrevPath(path string) string {
	leaves := s.categoryLeaves(path)
	idx := indexOf(leaves, path)
	if idx <= 0 {
		return ""
	}
	return leaves[idx-1]
}

// SequencePosition reports the zero-based index and total count, with
// ok=false for paths outside every category sequence.
func (s *Sequencer) SequencePosition(path string) (Position, bool) {
	leaves := s.categoryLeaves(path)
	idx := indexOf(leaves, path)
	if idx == -1 {
		return Position{}, false
	}
	return Position{Current: idx, Total: len(leaves)}, true
}

func indexOf(paths []string, p string) int {
	for i, v := range paths {
		if v == p {
			return i
		}
	}
	return -1
}
