package graph

import (
	gograph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// undirectedView adapts a View to gonum's graph.Undirected so gonum's
// algorithms can run directly on a filtered window without copying.
type undirectedView struct {
	v *View
}

func (u undirectedView) Node(id int64) gograph.Node {
	if u.v.HasVertex(id) {
		return simple.Node(id)
	}
	return nil
}

func (u undirectedView) Nodes() gograph.Nodes {
	ids := u.v.Vertices()
	nodes := make([]gograph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = simple.Node(id)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (u undirectedView) From(id int64) gograph.Nodes {
	var nodes []gograph.Node
	for _, n := range u.v.Neighbors(id) {
		if n == id {
			continue
		}
		nodes = append(nodes, simple.Node(n))
	}
	return iterator.NewOrderedNodes(nodes)
}

func (u undirectedView) HasEdgeBetween(xid, yid int64) bool {
	if !u.v.HasVertex(xid) {
		return false
	}
	for _, h := range u.v.g.adj[xid] {
		if h.to == yid && u.v.HasEdge(h.edge) {
			return true
		}
	}
	return false
}

func (u undirectedView) Edge(uid, vid int64) gograph.Edge {
	return u.EdgeBetween(uid, vid)
}

func (u undirectedView) EdgeBetween(xid, yid int64) gograph.Edge {
	if u.HasEdgeBetween(xid, yid) {
		return simple.Edge{F: simple.Node(xid), T: simple.Node(yid)}
	}
	return nil
}

// ComponentSizes returns the size of every connected component of the
// view, in no particular order.
func (v *View) ComponentSizes() []int {
	if v.NumVertices() == 0 {
		return nil
	}
	components := topo.ConnectedComponents(undirectedView{v: v})
	sizes := make([]int, len(components))
	for i, comp := range components {
		sizes[i] = len(comp)
	}
	return sizes
}

// GonumDirected converts the view into a directed gonum graph with every
// visible edge added in both directions, the form expected by
// network.PageRank. Self-loops are dropped since simple graphs reject
// them.
func (v *View) GonumDirected() *simple.DirectedGraph {
	d := simple.NewDirectedGraph()
	for _, id := range v.Vertices() {
		d.AddNode(simple.Node(id))
	}
	for _, e := range v.Edges() {
		if e.Source == e.Target {
			continue
		}
		d.SetEdge(simple.Edge{F: simple.Node(e.Source), T: simple.Node(e.Target)})
		d.SetEdge(simple.Edge{F: simple.Node(e.Target), T: simple.Node(e.Source)})
	}
	return d
}
