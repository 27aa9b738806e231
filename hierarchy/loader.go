package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
)

// nodeJSON is the serialized node shape written by the clustering
// collaborator: internal nodes carry "children", leaves carry "vertices"
// and "edges".
type nodeJSON struct {
	Vertices []int64    `json:"vertices"`
	Edges    []int      `json:"edges"`
	Children []nodeJSON `json:"children"`
}

// LoadTree reads a partition tree from a JSON file.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}
	var root nodeJSON
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy file: %w", err)
	}
	node, err := decodeNode(root)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: node}, nil
}

func decodeNode(n nodeJSON) (Node, error) {
	if len(n.Children) > 0 {
		if len(n.Vertices) > 0 || len(n.Edges) > 0 {
			return nil, fmt.Errorf("hierarchy node owns both children and index lists")
		}
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			child, err := decodeNode(c)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return &Internal{Children: children}, nil
	}
	return &Leaf{VertexIndices: n.Vertices, EdgeIndices: n.Edges}, nil
}
