package service

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"graph-stats-backend/analysis"
	"graph-stats-backend/graph"
	"graph-stats-backend/hierarchy"
	"graph-stats-backend/models"
)

// AnalysisService answers statistics, peeling and adjacency requests over
// whole graphs or hierarchy-selected subgraphs.
type AnalysisService struct {
	graphs   *GraphService
	analyzer *analysis.Analyzer
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(graphs *GraphService, analyzer *analysis.Analyzer) *AnalysisService {
	return &AnalysisService{graphs: graphs, analyzer: analyzer}
}

// View resolves an optional hierarchy label against a dataset and returns
// the induced view. An empty label selects the full graph.
func (s *AnalysisService) View(datasetID, label string) (*graph.View, error) {
	ds, err := s.graphs.Get(datasetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrNoGraph, err)
	}
	return resolveView(ds, label)
}

func resolveView(ds *Dataset, label string) (*graph.View, error) {
	if label == "" {
		return ds.Graph.FullView(), nil
	}
	if ds.Tree == nil {
		return nil, fmt.Errorf("%w: dataset %s has no hierarchy", hierarchy.ErrInvalidLabel, ds.Info.ID)
	}
	vlist, elist, err := ds.Tree.Resolve(label)
	if err != nil {
		return nil, err
	}
	return ds.Graph.Induce(vlist, elist), nil
}

// Statistics computes the statistics report for a dataset, optionally
// restricted to the subgraph denoted by a hierarchy label.
func (s *AnalysisService) Statistics(datasetID, label string) (*models.StatisticsReport, error) {
	view, err := s.View(datasetID, label)
	if err != nil {
		return nil, err
	}

	report, err := s.analyzer.Statistics(view)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("dataset_id", datasetID).
		Str("label", label).
		Int("num_vertices", report.NumVertices).
		Int("num_edges", report.NumEdges).
		Msg("Statistics request served")
	return report, nil
}

// Peel returns the core-number partition of the selected subgraph.
func (s *AnalysisService) Peel(datasetID, label string) (map[int][]int64, error) {
	view, err := s.View(datasetID, label)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Peel(view)
}

// SaveAdjacency induces the selected subgraph and writes its adjacency
// list to path, one line per visible vertex followed by its neighbors.
func (s *AnalysisService) SaveAdjacency(datasetID, label, path string) (*models.AdjacencyResponse, error) {
	view, err := s.View(datasetID, label)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create adjacency file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, id := range view.Vertices() {
		if _, err := fmt.Fprintf(w, "%d", id); err != nil {
			return nil, fmt.Errorf("failed to write adjacency: %w", err)
		}
		for _, n := range view.Neighbors(id) {
			if _, err := fmt.Fprintf(w, " %d", n); err != nil {
				return nil, fmt.Errorf("failed to write adjacency: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return nil, fmt.Errorf("failed to write adjacency: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write adjacency: %w", err)
	}

	log.Info().
		Str("dataset_id", datasetID).
		Str("label", label).
		Str("path", path).
		Msg("Adjacency exported")
	return &models.AdjacencyResponse{Msg: fmt.Sprintf("Adjacency saved as %s", path)}, nil
}

// PageRank scores the selected subgraph and returns the limit
// highest-ranked vertices.
func (s *AnalysisService) PageRank(datasetID, label string, limit int) ([]models.PageRankEntry, error) {
	view, err := s.View(datasetID, label)
	if err != nil {
		return nil, err
	}
	scores, err := analysis.PageRank(view)
	if err != nil {
		return nil, err
	}
	return analysis.TopRanked(scores, limit), nil
}
