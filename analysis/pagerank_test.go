package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"graph-stats-backend/graph"
)

func TestPageRankPath(t *testing.T) {
	scores, err := PageRank(pathGraph(t).FullView())
	require.NoError(t, err)
	require.Len(t, scores, 5)

	// The path is symmetric around vertex 2, which collects the most
	// rank.
	require.InDelta(t, scores[0], scores[4], 1e-9)
	require.InDelta(t, scores[1], scores[3], 1e-9)
	require.Greater(t, scores[2], scores[0])
}

func TestPageRankEmpty(t *testing.T) {
	_, err := PageRank(graph.NewGraph(0).FullView())
	require.Error(t, err)
}

func TestTopRanked(t *testing.T) {
	scores := map[int64]float64{0: 0.1, 1: 0.5, 2: 0.3, 3: 0.1}

	top := TopRanked(scores, 2)
	require.Len(t, top, 2)
	require.Equal(t, int64(1), top[0].Vertex)
	require.Equal(t, int64(2), top[1].Vertex)

	// k <= 0 returns everything, ties broken by vertex id.
	all := TopRanked(scores, 0)
	require.Len(t, all, 4)
	require.Equal(t, int64(0), all[2].Vertex)
	require.Equal(t, int64(3), all[3].Vertex)
}
