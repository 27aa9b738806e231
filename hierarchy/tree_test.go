package hierarchy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildTestTree builds a two-level partition:
//
//	root
//	├── cluster_0 (leaf: v [0 1 2], e [0 1])
//	└── cluster_1
//	    ├── cluster_0 (leaf: v [3], e [])
//	    └── cluster_1 (leaf: v [4], e [3])
func buildTestTree() *Tree {
	return &Tree{
		Root: &Internal{
			Children: []Node{
				&Leaf{VertexIndices: []int64{0, 1, 2}, EdgeIndices: []int{0, 1}},
				&Internal{
					Children: []Node{
						&Leaf{VertexIndices: []int64{3}},
						&Leaf{VertexIndices: []int64{4}, EdgeIndices: []int{3}},
					},
				},
			},
		},
	}
}

func TestResolveRoot(t *testing.T) {
	tree := buildTestTree()

	vlist, elist, err := tree.Resolve("root")
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2, 3, 4}, vlist)
	require.Equal(t, []int{0, 1, 3}, elist)

	// Case-insensitive and idempotent.
	again, eagain, err := tree.Resolve("ROOT")
	require.NoError(t, err)
	require.Equal(t, vlist, again)
	require.Equal(t, elist, eagain)
}

func TestResolveLeaf(t *testing.T) {
	tree := buildTestTree()

	vlist, elist, err := tree.Resolve("root|cluster_0")
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2}, vlist)
	require.Equal(t, []int{0, 1}, elist)

	// The root token is optional.
	vlist, elist, err = tree.Resolve("cluster_1|cluster_1")
	require.NoError(t, err)
	require.Equal(t, []int64{4}, vlist)
	require.Equal(t, []int{3}, elist)
}

func TestResolveInternalUnionsDescendants(t *testing.T) {
	tree := buildTestTree()

	vlist, elist, err := tree.Resolve("root|cluster_1")
	require.NoError(t, err)
	require.Equal(t, []int64{3, 4}, vlist)
	require.Equal(t, []int{3}, elist)
}

func TestResolveInvalidLabels(t *testing.T) {
	tree := buildTestTree()

	cases := []struct {
		name  string
		label string
	}{
		{"child index out of range", "root|cluster_5"},
		{"descends past a leaf", "root|cluster_0|cluster_0"},
		{"no integer suffix", "root|cluster"},
		{"empty label", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tree.Resolve(tc.label)
			require.ErrorIs(t, err, ErrInvalidLabel)
		})
	}
}

func TestCollectIndicesDepthFirst(t *testing.T) {
	tree := buildTestTree()

	vlist, elist := CollectIndices(tree.Root)
	require.Equal(t, []int64{0, 1, 2, 3, 4}, vlist)
	require.Equal(t, []int{0, 1, 3}, elist)
}

func TestLoadTree(t *testing.T) {
	data := `{
		"children": [
			{"vertices": [0, 1, 2], "edges": [0, 1]},
			{"children": [
				{"vertices": [3], "edges": []},
				{"vertices": [4], "edges": [3]}
			]}
		]
	}`
	path := filepath.Join(t.TempDir(), "hierarchy.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	tree, err := LoadTree(path)
	require.NoError(t, err)

	vlist, elist, err := tree.Resolve("root")
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2, 3, 4}, vlist)
	require.Equal(t, []int{0, 1, 3}, elist)
}

func TestLoadTreeRejectsMixedNode(t *testing.T) {
	data := `{"vertices": [0], "children": [{"vertices": [1]}]}`
	path := filepath.Join(t.TempDir(), "hierarchy.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadTree(path)
	require.Error(t, err)
}
