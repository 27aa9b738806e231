package service

import (
	"fmt"
	"sort"
	"strconv"

	"graph-stats-backend/analysis"
	"graph-stats-backend/graph"
	"graph-stats-backend/models"
)

// VisualizationService shapes graph and partition structures into the
// node/edge records consumed by the Vis.js frontend. Everything here is a
// pure read-only transformation.
type VisualizationService struct {
	graphs *GraphService
}

// NewVisualizationService creates a new visualization service.
func NewVisualizationService(graphs *GraphService) *VisualizationService {
	return &VisualizationService{graphs: graphs}
}

// Network exports the selected subgraph of a dataset in the general
// format: node value is the vertex degree within the view.
func (s *VisualizationService) Network(datasetID, label string) (*models.VisNetwork, error) {
	ds, err := s.graphs.Get(datasetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrNoGraph, err)
	}
	view, err := resolveView(ds, label)
	if err != nil {
		return nil, err
	}
	return NetworkFromView(view), nil
}

// NetworkFromView builds the general export for any view.
func NetworkFromView(v *graph.View) *models.VisNetwork {
	vertices := v.Vertices()
	nodes := make([]models.VisNode, 0, len(vertices))
	for _, id := range vertices {
		label := strconv.FormatInt(id, 10)
		nodes = append(nodes, models.VisNode{
			ID:    id,
			Label: label,
			Title: label,
			Value: v.Degree(id),
			Group: 1,
		})
	}

	visible := v.Edges()
	edges := make([]models.VisEdge, 0, len(visible))
	for _, e := range visible {
		edges = append(edges, models.VisEdge{
			ID:   e.ID,
			From: e.Source,
			To:   e.Target,
		})
	}
	return &models.VisNetwork{Nodes: nodes, Edges: edges}
}

// Groups for the BCC-tree export: articulation points vs biconnected
// component metanodes.
const (
	apGroup          = 0
	bccMetanodeGroup = 1
)

// BCCTree exports a block-cut tree where each vertex is either an
// articulation point of the original graph or a biconnected-component
// metanode. The caller supplies the decomposition: counts carries
// per-vertex member counts, isArticulation the articulation flags and
// edgeCounts the per-edge shared-vertex counts.
func BCCTree(v *graph.View, counts map[int64]int, isArticulation map[int64]bool, edgeCounts map[int]int) *models.VisNetwork {
	vertices := v.Vertices()
	nodes := make([]models.VisNode, 0, len(vertices))
	for _, id := range vertices {
		count := counts[id]
		var label, title string
		var group int
		if isArticulation[id] {
			label = strconv.FormatInt(id, 10)
			title = fmt.Sprintf("AP: %s", label)
			group = apGroup
		} else {
			title = fmt.Sprintf("BCC: %d | Count: %d", id, count)
			label = title
			group = bccMetanodeGroup
		}
		nodes = append(nodes, models.VisNode{
			ID:    id,
			Label: label,
			Title: title,
			Value: count,
			Group: group,
		})
	}

	visible := v.Edges()
	edges := make([]models.VisEdge, 0, len(visible))
	for _, e := range visible {
		edges = append(edges, models.VisEdge{
			ID:    e.ID,
			From:  e.Source,
			To:    e.Target,
			Value: edgeCounts[e.ID],
		})
	}
	return &models.VisNetwork{Nodes: nodes, Edges: edges}
}

// ClusterMap exports a cluster-labeled view: node group is the cluster
// assignment, landmark vertices render as stars with a thicker border,
// and edges are categorized as spine, branch or none. The assignment,
// landmark set and spine/branch edge sets come from the caller's
// clustering run.
func ClusterMap(v *graph.View, clusterAssignment map[int64]int, landmarks map[int64]bool, spine, branches map[int]bool) *models.VisNetwork {
	vertices := v.Vertices()
	nodes := make([]models.VisNode, 0, len(vertices))
	for _, id := range vertices {
		label := strconv.FormatInt(id, 10)
		shape := "dot"
		borderWidth := 1
		if landmarks[id] {
			shape = "star"
			borderWidth = 2
		}
		nodes = append(nodes, models.VisNode{
			ID:          id,
			Label:       label,
			Title:       label,
			Value:       v.Degree(id),
			Group:       clusterAssignment[id],
			Shape:       shape,
			BorderWidth: borderWidth,
		})
	}

	visible := v.Edges()
	edges := make([]models.VisEdge, 0, len(visible))
	for _, e := range visible {
		category := "none"
		switch {
		case spine[e.ID]:
			category = "spine"
		case branches[e.ID]:
			category = "branch"
		}
		edges = append(edges, models.VisEdge{
			ID:       e.ID,
			From:     e.Source,
			To:       e.Target,
			Category: category,
		})
	}
	return &models.VisNetwork{Nodes: nodes, Edges: edges}
}

// MetaEdge is a bundle of original edges running between two partition
// cells.
type MetaEdge struct {
	From        int64
	To          int64
	EdgeIndices []int
}

// Metagraph exports partition cells as metanodes sized by their vertex
// counts, with cross-cell edge bundles as weighted meta-edges. The cell
// summaries and bundles are aggregated by the caller from its partition
// tree.
func Metagraph(metanodes map[int64]models.MetaNode, crossEdges []MetaEdge) *models.VisNetwork {
	ids := make([]int64, 0, len(metanodes))
	for id := range metanodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	nodes := make([]models.VisNode, 0, len(ids))
	for _, id := range ids {
		info := metanodes[id]
		title := fmt.Sprintf("<p>%s<br>|V|: %d<br>|E|: %d",
			info.FullyQualifiedLabel, info.NumVertices, info.NumEdges)
		nodes = append(nodes, models.VisNode{
			ID:    id,
			Label: info.ShortLabel,
			Title: title,
			Value: info.NumVertices,
		})
	}

	edges := make([]models.VisEdge, 0, len(crossEdges))
	for idx, ce := range crossEdges {
		value := len(ce.EdgeIndices)
		edges = append(edges, models.VisEdge{
			ID:    idx,
			From:  ce.From,
			To:    ce.To,
			Value: value,
			Title: fmt.Sprintf("meta-edge size: %d", value),
		})
	}
	return &models.VisNetwork{Nodes: nodes, Edges: edges}
}
