package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"graph-stats-backend/graph"
	"graph-stats-backend/hierarchy"
	"graph-stats-backend/models"
)

// Dataset pairs a loaded graph with the partition tree produced for it by
// the upstream clustering run.
type Dataset struct {
	Info  models.Dataset
	Graph *graph.Graph
	Tree  *hierarchy.Tree
}

// GraphService owns the loaded graph datasets.
type GraphService struct {
	uploadDir string
	datasets  map[string]*Dataset
	mutex     sync.RWMutex
}

// NewGraphService creates a new graph service storing uploads under
// uploadDir.
func NewGraphService(uploadDir string) *GraphService {
	return &GraphService{
		uploadDir: uploadDir,
		datasets:  make(map[string]*Dataset),
	}
}

// Upload stores an edge-list file plus an optional hierarchy file and
// loads them into a new dataset.
func (s *GraphService) Upload(name string, graphFile, hierarchyFile *multipart.FileHeader) (*models.Dataset, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	datasetID := uuid.New().String()

	log.Info().
		Str("dataset_id", datasetID).
		Str("name", name).
		Msg("Starting dataset upload")

	dir := filepath.Join(s.uploadDir, datasetID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	graphPath, size, err := saveUploadedFile(graphFile, dir, "graph.edgelist")
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to save graph file: %w", err)
	}

	g, err := graph.LoadEdgeList(graphPath)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}

	var tree *hierarchy.Tree
	hierarchyPath := ""
	if hierarchyFile != nil {
		var hsize int64
		hierarchyPath, hsize, err = saveUploadedFile(hierarchyFile, dir, "hierarchy.json")
		if err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("failed to save hierarchy file: %w", err)
		}
		size += hsize
		tree, err = hierarchy.LoadTree(hierarchyPath)
		if err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("failed to load hierarchy: %w", err)
		}
	}

	now := time.Now()
	ds := &Dataset{
		Info: models.Dataset{
			ID:   datasetID,
			Name: name,
			Files: models.DatasetFiles{
				GraphFile:     graphPath,
				HierarchyFile: hierarchyPath,
			},
			Metadata: models.DatasetMetadata{
				NodeCount: g.NumVertices(),
				EdgeCount: g.NumEdges(),
				FileSize:  size,
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		Graph: g,
		Tree:  tree,
	}
	s.datasets[datasetID] = ds

	log.Info().
		Str("dataset_id", datasetID).
		Int("num_vertices", g.NumVertices()).
		Int("num_edges", g.NumEdges()).
		Bool("has_hierarchy", tree != nil).
		Msg("Dataset loaded")

	info := ds.Info
	return &info, nil
}

// Register adds an already-constructed graph and tree as a dataset,
// bypassing file upload. Used by embedders and tests.
func (s *GraphService) Register(name string, g *graph.Graph, tree *hierarchy.Tree) *models.Dataset {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	ds := &Dataset{
		Info: models.Dataset{
			ID:   uuid.New().String(),
			Name: name,
			Metadata: models.DatasetMetadata{
				NodeCount: g.NumVertices(),
				EdgeCount: g.NumEdges(),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		Graph: g,
		Tree:  tree,
	}
	s.datasets[ds.Info.ID] = ds
	info := ds.Info
	return &info
}

// List returns metadata for all loaded datasets.
func (s *GraphService) List() []models.Dataset {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]models.Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds.Info)
	}
	return out
}

// Get returns a dataset by id.
func (s *GraphService) Get(id string) (*Dataset, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ds, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s not found", id)
	}
	return ds, nil
}

// Delete removes a dataset and its uploaded files.
func (s *GraphService) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ds, ok := s.datasets[id]
	if !ok {
		return fmt.Errorf("dataset %s not found", id)
	}
	delete(s.datasets, id)

	if ds.Info.Files.GraphFile != "" {
		if err := os.RemoveAll(filepath.Dir(ds.Info.Files.GraphFile)); err != nil {
			log.Warn().Err(err).Str("dataset_id", id).Msg("Failed to remove dataset files")
		}
	}

	log.Info().Str("dataset_id", id).Msg("Dataset deleted")
	return nil
}

func saveUploadedFile(header *multipart.FileHeader, dir, name string) (string, int64, error) {
	src, err := header.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	destPath := filepath.Join(dir, name)
	dst, err := os.Create(destPath)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return "", 0, err
	}
	return destPath, size, nil
}
