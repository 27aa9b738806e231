package analysis

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"graph-stats-backend/graph"
)

// pathGraph builds the 5-vertex path 0-1-2-3-4.
func pathGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(5)
	for u := int64(0); u < 4; u++ {
		_, err := g.AddEdge(u, u+1)
		require.NoError(t, err)
	}
	return g
}

// twoTriangles builds triangles 0-1-2 and 3-4-5 joined by edge 2-3, plus
// isolated vertex 6.
func twoTriangles(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(7)
	for _, e := range [][2]int64{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}, {2, 3}} {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	return g
}

func sortBuckets(partition map[int][]int64) {
	for _, vs := range partition {
		sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	}
}

func TestBucketPeelerPath(t *testing.T) {
	partition, err := NewBucketPeeler().Peel(pathGraph(t).FullView())
	require.NoError(t, err)
	sortBuckets(partition)
	require.Equal(t, map[int][]int64{1: {0, 1, 2, 3, 4}}, partition)
}

func TestBucketPeelerEmptyGraph(t *testing.T) {
	partition, err := NewBucketPeeler().Peel(graph.NewGraph(0).FullView())
	require.NoError(t, err)
	require.Empty(t, partition)
}

func TestFastPeelerEmptyGraph(t *testing.T) {
	partition, err := NewFastPeeler().Peel(graph.NewGraph(0).FullView())
	require.NoError(t, err)
	require.Empty(t, partition)
}

func TestBucketPeelerFilteredRecomputes(t *testing.T) {
	g := twoTriangles(t)

	// Cache the whole-graph decomposition first, then peel a filtered
	// view that reduces triangle 0-1-2 to a path: the exact strategy
	// must see core 1, not the cached core 2.
	require.NotEmpty(t, g.CoreDecomposition())

	v := g.Induce([]int64{0, 1, 2}, []int{0, 1})
	exact, err := NewBucketPeeler().Peel(v)
	require.NoError(t, err)
	sortBuckets(exact)
	require.Equal(t, map[int][]int64{1: {0, 1, 2}}, exact)

	fast, err := NewFastPeeler().Peel(v)
	require.NoError(t, err)
	require.NotEqual(t, exact, fast)
}

func TestStrategiesAgreeUnfiltered(t *testing.T) {
	for name, g := range map[string]*graph.Graph{
		"path":         pathGraph(t),
		"twoTriangles": twoTriangles(t),
	} {
		t.Run(name, func(t *testing.T) {
			v := g.FullView()
			exact, err := NewBucketPeeler().Peel(v)
			require.NoError(t, err)
			fast, err := NewFastPeeler().Peel(v)
			require.NoError(t, err)
			sortBuckets(exact)
			sortBuckets(fast)
			require.Equal(t, exact, fast)
		})
	}
}

func TestPeelPartitionsVertexSet(t *testing.T) {
	g := twoTriangles(t)
	v := g.Induce([]int64{0, 1, 2, 3, 6}, []int{0, 1, 2, 3})

	partition, err := NewBucketPeeler().Peel(v)
	require.NoError(t, err)

	var all []int64
	for _, vs := range partition {
		all = append(all, vs...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	require.Equal(t, v.Vertices(), all)
}
