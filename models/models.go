package models

import (
	"time"
)

// Dataset represents an uploaded graph dataset together with the
// hierarchical partition produced by an upstream clustering run.
type Dataset struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Files     DatasetFiles    `json:"files"`
	Metadata  DatasetMetadata `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type DatasetFiles struct {
	GraphFile     string `json:"graphFile"`
	HierarchyFile string `json:"hierarchyFile,omitempty"`
}

type DatasetMetadata struct {
	NodeCount int   `json:"nodeCount"`
	EdgeCount int   `json:"edgeCount"`
	FileSize  int64 `json:"fileSize"`
}

// StatisticsReport is a snapshot of structural statistics for one
// (sub)graph. Bin/count slices are aligned by index and sorted by bin
// value ascending.
type StatisticsReport struct {
	NumVertices   int    `json:"num_vertices"`
	NumEdges      int    `json:"num_edges"`
	NumCC         int    `json:"num_cc"`
	NumSingletons int    `json:"num_singletons"`
	VLogV         string `json:"vlogv"`
	DegBins       []int  `json:"deg_bins"`
	DegCounts     []int  `json:"deg_counts"`
	CCSizes       []int  `json:"cc_sizes"`
	CCCounts      []int  `json:"cc_counts"`
	PeelBins      []int  `json:"peel_bins"`
	PeelCounts    []int  `json:"peel_counts"`
}

// VisNetwork is the Vis.js-shaped export consumed by the frontend.
type VisNetwork struct {
	Nodes []VisNode `json:"nodes"`
	Edges []VisEdge `json:"edges"`
}

type VisNode struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	Title       string `json:"title"`
	Value       int    `json:"value"`
	Group       int    `json:"group"`
	Shape       string `json:"shape,omitempty"`
	BorderWidth int    `json:"borderWidth,omitempty"`
}

type VisEdge struct {
	ID       int    `json:"id"`
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Value    int    `json:"value,omitempty"`
	Title    string `json:"title,omitempty"`
	Category string `json:"category,omitempty"`
}

// MetaNode describes one partition-tree node in a metagraph export.
type MetaNode struct {
	FullyQualifiedLabel string `json:"fullyQualifiedLabel"`
	ShortLabel          string `json:"shortLabel"`
	NumVertices         int    `json:"numVertices"`
	NumEdges            int    `json:"numEdges"`
}

// PageRankEntry is one ranked vertex in a PageRank response.
type PageRankEntry struct {
	Vertex int64   `json:"vertex"`
	Score  float64 `json:"score"`
}

// API Response types
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type UploadResponse struct {
	DatasetID string  `json:"datasetId"`
	Dataset   Dataset `json:"dataset"`
}

// AdjacencyRequest asks for the adjacency list of an induced subgraph to
// be written to a server-side path.
type AdjacencyRequest struct {
	Label string `json:"label,omitempty"`
	Path  string `json:"path"`
}

type AdjacencyResponse struct {
	Msg string `json:"msg"`
}
