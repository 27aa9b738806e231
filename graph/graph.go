// Package graph provides the underlying graph storage for the analysis
// engine: an undirected graph with stable integer vertex and edge
// identifiers, read through non-mutating filtered views.
package graph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Edge is an undirected edge with a stable identifier.
type Edge struct {
	ID     int   `json:"id"`
	Source int64 `json:"source"`
	Target int64 `json:"target"`
}

type halfEdge struct {
	to   int64
	edge int
}

// Graph is an undirected graph over vertices 0..NumVertices-1. Vertices
// and edges are append-only; all filtered reads go through a View.
type Graph struct {
	numVertices int
	edges       []Edge
	adj         [][]halfEdge

	coreOnce sync.Once
	coreNums []int
}

// NewGraph creates a graph with n vertices and no edges.
func NewGraph(n int) *Graph {
	return &Graph{
		numVertices: n,
		adj:         make([][]halfEdge, n),
	}
}

// AddVertex appends a new vertex and returns its identifier.
func (g *Graph) AddVertex() int64 {
	g.adj = append(g.adj, nil)
	g.numVertices++
	return int64(g.numVertices - 1)
}

// AddEdge appends an undirected edge and returns its identifier.
func (g *Graph) AddEdge(u, v int64) (int, error) {
	if u < 0 || u >= int64(g.numVertices) || v < 0 || v >= int64(g.numVertices) {
		return 0, fmt.Errorf("edge (%d,%d) out of range for %d vertices", u, v, g.numVertices)
	}
	id := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, Source: u, Target: v})
	g.adj[u] = append(g.adj[u], halfEdge{to: v, edge: id})
	if u != v {
		g.adj[v] = append(g.adj[v], halfEdge{to: u, edge: id})
	}
	return id, nil
}

// NumVertices returns the total vertex count, ignoring any view.
func (g *Graph) NumVertices() int { return g.numVertices }

// NumEdges returns the total edge count, ignoring any view.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Edges returns all edges, ignoring any view.
func (g *Graph) Edges() []Edge { return g.edges }

// LoadEdgeList reads a whitespace-separated edge list file, one
// "<source> <target>" pair per line. Blank lines and lines starting with
// '#' are skipped. The vertex count is the largest identifier seen plus
// one, so isolated trailing vertices must carry at least a comment
// placeholder or be added afterwards with AddVertex.
func LoadEdgeList(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edge list: %w", err)
	}
	defer file.Close()

	type pair struct{ u, v int64 }
	var pairs []pair
	maxID := int64(-1)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected two vertex ids, got %q", lineNum, line)
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid source id %q", lineNum, fields[0])
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid target id %q", lineNum, fields[1])
		}
		if u > maxID {
			maxID = u
		}
		if v > maxID {
			maxID = v
		}
		pairs = append(pairs, pair{u, v})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edge list: %w", err)
	}

	g := NewGraph(int(maxID + 1))
	for _, p := range pairs {
		if _, err := g.AddEdge(p.u, p.v); err != nil {
			return nil, err
		}
	}
	return g, nil
}
