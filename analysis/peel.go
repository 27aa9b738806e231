// Package analysis computes structural statistics over filtered graph
// views: degree and component histograms, and k-core (degeneracy)
// decomposition under interchangeable peeling strategies.
package analysis

import (
	"fmt"

	"graph-stats-backend/graph"
)

// Peeler computes a k-core decomposition of a view, mapping each core
// number to the vertex identifiers whose core number equals it. Every
// visible vertex appears in exactly one bucket.
type Peeler interface {
	Peel(v *graph.View) (map[int][]int64, error)
}

// BucketPeeler is the exact in-process strategy: it recomputes degeneracy
// peeling from scratch on exactly the visible edges, so it is correct for
// any filtered or unfiltered view.
type BucketPeeler struct{}

// NewBucketPeeler creates the in-process exact peeler.
func NewBucketPeeler() *BucketPeeler { return &BucketPeeler{} }

// Peel computes core numbers with bucket-queue peeling over the view's
// adjacency. An empty view yields an empty mapping.
func (p *BucketPeeler) Peel(v *graph.View) (map[int][]int64, error) {
	ids := v.Vertices()
	result := make(map[int][]int64)
	if len(ids) == 0 {
		return result, nil
	}

	// Compact visible vertex ids to 0..n-1 for the peeling kernel.
	indexOf := make(map[int64]int, len(ids))
	for i, id := range ids {
		indexOf[id] = i
	}
	adj := make([][]int64, len(ids))
	for _, e := range v.Edges() {
		if e.Source == e.Target {
			continue
		}
		si, ti := indexOf[e.Source], indexOf[e.Target]
		adj[si] = append(adj[si], int64(ti))
		adj[ti] = append(adj[ti], int64(si))
	}

	core := graph.BucketPeel(len(ids), func(i int64) []int64 { return adj[i] })
	for i, k := range core {
		result[k] = append(result[k], ids[i])
	}
	return result, nil
}

// FastPeeler reuses the whole-graph core decomposition cached on the
// underlying graph and regroups it over the view's vertex set. It spawns
// no process and serializes nothing, but the cached decomposition ignores
// any reduced edge set, so results are unreliable for filtered views:
// callers must only use it when no filter is active.
type FastPeeler struct{}

// NewFastPeeler creates the whole-graph-reuse peeler.
func NewFastPeeler() *FastPeeler { return &FastPeeler{} }

// Peel groups the cached whole-graph core numbers by the view's visible
// vertices. An empty view yields an empty mapping.
func (p *FastPeeler) Peel(v *graph.View) (map[int][]int64, error) {
	ids := v.Vertices()
	result := make(map[int][]int64)
	if len(ids) == 0 {
		return result, nil
	}
	core := v.Graph().CoreDecomposition()
	if len(core) != v.Graph().NumVertices() {
		return nil, fmt.Errorf("%w: %d core numbers for %d vertices",
			ErrMissingDecomposition, len(core), v.Graph().NumVertices())
	}
	for _, id := range ids {
		k := core[id]
		result[k] = append(result[k], id)
	}
	return result, nil
}
