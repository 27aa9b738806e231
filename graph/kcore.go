package graph

// CoreDecomposition returns the core number of every vertex of the
// unfiltered graph, indexed by vertex id. It is computed once with
// bucket-queue peeling and cached; the result is only meaningful for the
// whole graph and must not be applied to a filtered view.
func (g *Graph) CoreDecomposition() []int {
	g.coreOnce.Do(func() {
		g.coreNums = BucketPeel(g.numVertices, func(id int64) []int64 {
			out := make([]int64, 0, len(g.adj[id]))
			for _, h := range g.adj[id] {
				if h.to != id {
					out = append(out, h.to)
				}
			}
			return out
		})
	})
	return g.coreNums
}

// BucketPeel runs the classical O(V+E) degeneracy peeling over an
// adjacency oracle for vertices 0..n-1: vertices are kept in buckets by
// current degree, the minimum-degree vertex is removed repeatedly, and
// its removal degree becomes its core number.
func BucketPeel(n int, neighbors func(int64) []int64) []int {
	if n == 0 {
		return nil
	}

	degree := make([]int, n)
	maxDegree := 0
	for v := 0; v < n; v++ {
		degree[v] = len(neighbors(int64(v)))
		if degree[v] > maxDegree {
			maxDegree = degree[v]
		}
	}

	// Bucket sort vertices by degree, tracking each vertex's position so
	// it can be swapped toward the front when its degree drops.
	binStart := make([]int, maxDegree+2)
	for v := 0; v < n; v++ {
		binStart[degree[v]+1]++
	}
	for d := 1; d < len(binStart); d++ {
		binStart[d] += binStart[d-1]
	}
	order := make([]int, n)
	pos := make([]int, n)
	fill := make([]int, maxDegree+1)
	copy(fill, binStart)
	for v := 0; v < n; v++ {
		pos[v] = fill[degree[v]]
		order[pos[v]] = v
		fill[degree[v]]++
	}

	core := make([]int, n)
	removed := make([]bool, n)
	for i := 0; i < n; i++ {
		v := order[i]
		core[v] = degree[v]
		removed[v] = true
		for _, wid := range neighbors(int64(v)) {
			w := int(wid)
			if removed[w] || degree[w] <= degree[v] {
				continue
			}
			// Swap w with the first vertex of its bucket, then shrink
			// its degree so it moves into the lower bucket.
			d := degree[w]
			front := order[binStart[d]]
			if front != w {
				order[pos[w]], order[binStart[d]] = front, w
				pos[front], pos[w] = pos[w], binStart[d]
			}
			binStart[d]++
			degree[w]--
		}
	}
	return core
}
