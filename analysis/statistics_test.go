package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"graph-stats-backend/graph"
)

func TestStatisticsNoGraph(t *testing.T) {
	_, err := NewAnalyzer(nil).Statistics(nil)
	require.ErrorIs(t, err, ErrNoGraph)
}

func TestStatisticsPathGraph(t *testing.T) {
	report, err := NewAnalyzer(nil).Statistics(pathGraph(t).FullView())
	require.NoError(t, err)

	require.Equal(t, 5, report.NumVertices)
	require.Equal(t, 4, report.NumEdges)
	require.Equal(t, 1, report.NumCC)
	require.Equal(t, 0, report.NumSingletons)
	require.Equal(t, "11.61", report.VLogV)
	require.Equal(t, []int{1, 2}, report.DegBins)
	require.Equal(t, []int{2, 3}, report.DegCounts)
	require.Equal(t, []int{5}, report.CCSizes)
	require.Equal(t, []int{1}, report.CCCounts)
	require.Equal(t, []int{1}, report.PeelBins)
	require.Equal(t, []int{5}, report.PeelCounts)
}

func TestStatisticsIsolatedVertices(t *testing.T) {
	report, err := NewAnalyzer(nil).Statistics(graph.NewGraph(3).FullView())
	require.NoError(t, err)

	require.Equal(t, 3, report.NumVertices)
	require.Equal(t, 0, report.NumEdges)
	require.Equal(t, 3, report.NumCC)
	require.Equal(t, 3, report.NumSingletons)
	require.Equal(t, "4.75", report.VLogV)
	require.Equal(t, []int{0}, report.DegBins)
	require.Equal(t, []int{3}, report.DegCounts)
	require.Equal(t, []int{0}, report.PeelBins)
	require.Equal(t, []int{3}, report.PeelCounts)
}

func TestStatisticsEmptyGraph(t *testing.T) {
	report, err := NewAnalyzer(nil).Statistics(graph.NewGraph(0).FullView())
	require.NoError(t, err)

	require.Equal(t, 0, report.NumVertices)
	require.Equal(t, 0, report.NumCC)
	require.Equal(t, "0.00", report.VLogV)
	require.Empty(t, report.DegBins)
	require.Empty(t, report.CCSizes)
	require.Empty(t, report.PeelBins)
}

func TestStatisticsComponentSizesWeightedSum(t *testing.T) {
	g := twoTriangles(t)
	report, err := NewAnalyzer(nil).Statistics(g.FullView())
	require.NoError(t, err)

	total := 0
	for i, size := range report.CCSizes {
		total += size * report.CCCounts[i]
	}
	require.Equal(t, report.NumVertices, total)
}

// recordingPeeler wraps a peeler and records whether it was invoked.
type recordingPeeler struct {
	inner  Peeler
	called bool
}

func (p *recordingPeeler) Peel(v *graph.View) (map[int][]int64, error) {
	p.called = true
	return p.inner.Peel(v)
}

func TestStrategySelection(t *testing.T) {
	g := pathGraph(t)

	exact := &recordingPeeler{inner: NewBucketPeeler()}
	analyzer := NewAnalyzer(exact)

	// Unfiltered views take the fast path.
	_, err := analyzer.Statistics(g.FullView())
	require.NoError(t, err)
	require.False(t, exact.called)

	// Any active filter switches to the exact strategy.
	_, err = analyzer.Statistics(g.Induce([]int64{0, 1}, []int{0}))
	require.NoError(t, err)
	require.True(t, exact.called)
}
