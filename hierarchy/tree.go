// Package hierarchy models the partition tree produced by an upstream
// hierarchical clustering run and resolves path labels such as
// "root|cluster_2|cluster_5" into the vertex and edge index sets they
// denote.
package hierarchy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLabel reports a malformed or out-of-range hierarchical path.
var ErrInvalidLabel = errors.New("invalid hierarchy label")

// Node is either a Leaf or an Internal node. The two cases are separate
// types so a node can never own both index lists and children.
type Node interface {
	node()
}

// Leaf directly owns the vertex and edge indices of one partition cell.
type Leaf struct {
	VertexIndices []int64
	EdgeIndices   []int
}

// Internal owns an ordered list of child nodes.
type Internal struct {
	Children []Node
}

func (*Leaf) node()     {}
func (*Internal) node() {}

// Tree is a hierarchical partition tree. It is built once by the
// clustering collaborator and read-only afterwards.
type Tree struct {
	Root Node
}

// Resolve walks the tree along the label and returns the vertex and edge
// indices denoted by the terminal node: a leaf's lists verbatim, or the
// depth-first union over an internal node's leaf descendants.
func (t *Tree) Resolve(label string) ([]int64, []int, error) {
	node, err := t.traverse(label)
	if err != nil {
		return nil, nil, err
	}
	if leaf, ok := node.(*Leaf); ok {
		return leaf.VertexIndices, leaf.EdgeIndices, nil
	}
	vlist, elist := CollectIndices(node)
	return vlist, elist, nil
}

// traverse follows the child indices encoded in the label. The literal
// token "root" (case-insensitive) may appear first and is stripped; each
// remaining token's trailing "_<int>" is a zero-based child position.
func (t *Tree) traverse(label string) (Node, error) {
	if strings.EqualFold(label, "root") {
		return t.Root, nil
	}
	tokens := strings.Split(label, "|")
	if len(tokens) > 0 && strings.EqualFold(tokens[0], "root") {
		tokens = tokens[1:]
	}
	node := t.Root
	for _, token := range tokens {
		suffix := token[strings.LastIndex(token, "_")+1:]
		idx, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q has no integer child index", ErrInvalidLabel, token)
		}
		internal, ok := node.(*Internal)
		if !ok {
			return nil, fmt.Errorf("%w: token %q descends past a leaf", ErrInvalidLabel, token)
		}
		if idx < 0 || idx >= len(internal.Children) {
			return nil, fmt.Errorf("%w: child index %d out of range (%d children)",
				ErrInvalidLabel, idx, len(internal.Children))
		}
		node = internal.Children[idx]
	}
	return node, nil
}

// CollectIndices unions the vertex and edge indices of every leaf under
// n, depth-first with children in stored order. Leaves of a partition
// tree are disjoint so no deduplication is performed; if that invariant
// is ever violated upstream the result contains duplicates.
func CollectIndices(n Node) ([]int64, []int) {
	switch t := n.(type) {
	case *Leaf:
		return t.VertexIndices, t.EdgeIndices
	case *Internal:
		var vlist []int64
		var elist []int
		for _, child := range t.Children {
			cv, ce := CollectIndices(child)
			vlist = append(vlist, cv...)
			elist = append(elist, ce...)
		}
		return vlist, elist
	}
	return nil, nil
}
