package graph

import "sort"

// View is a read-only filtered window onto a Graph. Each request builds
// its own View, so concurrent readers never contend on shared filter
// state. A nil mask means unfiltered. An edge is visible only if the edge
// itself and both endpoints pass their masks.
type View struct {
	g     *Graph
	vmask []bool
	emask []bool
}

// FullView returns an unfiltered view of the whole graph.
func (g *Graph) FullView() *View {
	return &View{g: g}
}

// Induce returns a view exposing exactly the given vertex and edge
// indices. When both lists are empty the full graph is returned; this is
// a deliberate fast path, not an error. Out-of-range indices are ignored.
func (g *Graph) Induce(vertexIndices []int64, edgeIndices []int) *View {
	if len(vertexIndices) == 0 && len(edgeIndices) == 0 {
		return g.FullView()
	}
	vmask := make([]bool, g.numVertices)
	for _, vi := range vertexIndices {
		if vi >= 0 && vi < int64(g.numVertices) {
			vmask[vi] = true
		}
	}
	emask := make([]bool, len(g.edges))
	for _, ei := range edgeIndices {
		if ei >= 0 && ei < len(g.edges) {
			emask[ei] = true
		}
	}
	return &View{g: g, vmask: vmask, emask: emask}
}

// Graph returns the underlying graph.
func (v *View) Graph() *Graph { return v.g }

// Filtered reports whether any vertex or edge filter is active.
func (v *View) Filtered() bool { return v.vmask != nil || v.emask != nil }

// HasVertex reports whether the vertex is visible in this view.
func (v *View) HasVertex(id int64) bool {
	if id < 0 || id >= int64(v.g.numVertices) {
		return false
	}
	return v.vmask == nil || v.vmask[id]
}

// HasEdge reports whether the edge is visible in this view.
func (v *View) HasEdge(id int) bool {
	if id < 0 || id >= len(v.g.edges) {
		return false
	}
	if v.emask != nil && !v.emask[id] {
		return false
	}
	e := v.g.edges[id]
	return v.HasVertex(e.Source) && v.HasVertex(e.Target)
}

// Vertices returns the visible vertex identifiers in ascending order.
func (v *View) Vertices() []int64 {
	out := make([]int64, 0, v.g.numVertices)
	for id := int64(0); id < int64(v.g.numVertices); id++ {
		if v.HasVertex(id) {
			out = append(out, id)
		}
	}
	return out
}

// NumVertices returns the visible vertex count.
func (v *View) NumVertices() int {
	if v.vmask == nil {
		return v.g.numVertices
	}
	n := 0
	for _, ok := range v.vmask {
		if ok {
			n++
		}
	}
	return n
}

// Edges returns the visible edges in ascending identifier order.
func (v *View) Edges() []Edge {
	out := make([]Edge, 0, len(v.g.edges))
	for id := range v.g.edges {
		if v.HasEdge(id) {
			out = append(out, v.g.edges[id])
		}
	}
	return out
}

// NumEdges returns the visible edge count.
func (v *View) NumEdges() int {
	n := 0
	for id := range v.g.edges {
		if v.HasEdge(id) {
			n++
		}
	}
	return n
}

// Degree returns the number of visible edges incident to the vertex.
// Self-loops count once.
func (v *View) Degree(id int64) int {
	if !v.HasVertex(id) {
		return 0
	}
	n := 0
	for _, h := range v.g.adj[id] {
		if v.HasEdge(h.edge) {
			n++
		}
	}
	return n
}

// Neighbors returns the visible neighbors of the vertex in ascending
// order, without duplicates.
func (v *View) Neighbors(id int64) []int64 {
	if !v.HasVertex(id) {
		return nil
	}
	seen := make(map[int64]struct{})
	out := make([]int64, 0, len(v.g.adj[id]))
	for _, h := range v.g.adj[id] {
		if !v.HasEdge(h.edge) {
			continue
		}
		if _, dup := seen[h.to]; dup {
			continue
		}
		seen[h.to] = struct{}{}
		out = append(out, h.to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DegreeHistogram returns degree -> vertex count over the visible
// vertices.
func (v *View) DegreeHistogram() map[int]int {
	hist := make(map[int]int)
	for _, id := range v.Vertices() {
		hist[v.Degree(id)]++
	}
	return hist
}
