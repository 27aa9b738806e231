package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/network"

	"graph-stats-backend/graph"
	"graph-stats-backend/models"
)

const (
	defaultDamping   = 0.85
	defaultTolerance = 1e-6
)

// PageRank scores the visible vertices of a view with gonum's PageRank
// over a bidirectional conversion of the visible edges.
func PageRank(v *graph.View) (map[int64]float64, error) {
	if v.NumVertices() == 0 {
		return nil, fmt.Errorf("graph has no vertices")
	}
	scores := network.PageRank(v.GonumDirected(), defaultDamping, defaultTolerance)
	if len(scores) == 0 {
		return nil, fmt.Errorf("PageRank computation returned no scores")
	}
	return scores, nil
}

// TopRanked returns the k highest-scoring vertices, descending by score
// with vertex id as the tie-break. k <= 0 returns all vertices.
func TopRanked(scores map[int64]float64, k int) []models.PageRankEntry {
	entries := make([]models.PageRankEntry, 0, len(scores))
	for id, score := range scores {
		entries = append(entries, models.PageRankEntry{Vertex: id, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Vertex < entries[j].Vertex
	})
	if k > 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries
}
