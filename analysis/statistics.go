package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"graph-stats-backend/graph"
	"graph-stats-backend/models"
)

// Analyzer assembles structural statistics over graph views. The exact
// peeler runs whenever a filter is active; the fast whole-graph peeler is
// only trusted on unfiltered views.
type Analyzer struct {
	exact Peeler
	fast  Peeler
}

// NewAnalyzer creates an analyzer around the given exact peeling backend.
// A nil backend selects the in-process bucket peeler.
func NewAnalyzer(exact Peeler) *Analyzer {
	if exact == nil {
		exact = NewBucketPeeler()
	}
	return &Analyzer{exact: exact, fast: NewFastPeeler()}
}

// Peel chooses the strategy by filter state: exact when any filter is
// active, fast otherwise.
func (a *Analyzer) Peel(v *graph.View) (map[int][]int64, error) {
	if v.Filtered() {
		return a.exact.Peel(v)
	}
	return a.fast.Peel(v)
}

// Statistics computes the combined report for a view: vertex and edge
// counts, component count, isolated vertices, V*log2(V), and the degree,
// component-size and k-core histograms. Failures in any underlying
// primitive propagate; nothing is retried or swallowed.
func (a *Analyzer) Statistics(v *graph.View) (*models.StatisticsReport, error) {
	if v == nil || v.Graph() == nil {
		return nil, ErrNoGraph
	}

	numVertices := v.NumVertices()
	numEdges := v.NumEdges()

	degBins, degCounts := sortedHistogram(v.DegreeHistogram())

	numSingletons := 0
	if len(degBins) > 0 && degBins[0] == 0 {
		numSingletons = degCounts[0]
	}

	ccHist := make(map[int]int)
	for _, size := range v.ComponentSizes() {
		ccHist[size]++
	}
	ccSizes, ccCounts := sortedHistogram(ccHist)
	numCC := 0
	for _, count := range ccCounts {
		numCC += count
	}

	partition, err := a.Peel(v)
	if err != nil {
		return nil, fmt.Errorf("peeling failed: %w", err)
	}
	peelHist := make(map[int]int, len(partition))
	for k, vertices := range partition {
		peelHist[k] = len(vertices)
	}
	peelBins, peelCounts := sortedHistogram(peelHist)

	// V*log2(V) is undefined at V=0; report 0 explicitly.
	vlogv := "0.00"
	if numVertices > 0 {
		vlogv = fmt.Sprintf("%.2f", float64(numVertices)*math.Log2(float64(numVertices)))
	}

	log.Debug().
		Int("num_vertices", numVertices).
		Int("num_edges", numEdges).
		Int("num_cc", numCC).
		Bool("filtered", v.Filtered()).
		Msg("Statistics computed")

	return &models.StatisticsReport{
		NumVertices:   numVertices,
		NumEdges:      numEdges,
		NumCC:         numCC,
		NumSingletons: numSingletons,
		VLogV:         vlogv,
		DegBins:       degBins,
		DegCounts:     degCounts,
		CCSizes:       ccSizes,
		CCCounts:      ccCounts,
		PeelBins:      peelBins,
		PeelCounts:    peelCounts,
	}, nil
}

// sortedHistogram flattens a histogram map into aligned bin and count
// slices sorted by bin value ascending. Bins with zero count are absent
// from the input and stay absent.
func sortedHistogram(hist map[int]int) ([]int, []int) {
	bins := make([]int, 0, len(hist))
	for bin := range hist {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	counts := make([]int, len(bins))
	for i, bin := range bins {
		counts[i] = hist[bin]
	}
	return bins, counts
}
