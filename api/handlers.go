package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"graph-stats-backend/analysis"
	"graph-stats-backend/hierarchy"
	"graph-stats-backend/models"
	"graph-stats-backend/service"
	"graph-stats-backend/utils"
)

// Handlers contains HTTP request handlers
type Handlers struct {
	graphService    *service.GraphService
	analysisService *service.AnalysisService
	visService      *service.VisualizationService
}

// NewHandlers creates new API handlers
func NewHandlers(graphService *service.GraphService, analysisService *service.AnalysisService, visService *service.VisualizationService) *Handlers {
	return &Handlers{
		graphService:    graphService,
		analysisService: analysisService,
		visService:      visService,
	}
}

// UploadGraph handles dataset upload: an edge-list file plus an optional
// partition hierarchy file.
func (h *Handlers) UploadGraph(w http.ResponseWriter, r *http.Request) {
	log.Info().Msg("Graph upload request received")

	err := r.ParseMultipartForm(100 << 20) // 100MB max
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse multipart form")
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = "Unnamed Graph"
	}

	graphFile, graphHeader, err := r.FormFile("graphFile")
	if err != nil {
		log.Error().Err(err).Msg("Missing required graph file")
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required file: graphFile", err)
		return
	}
	graphFile.Close() // Close immediately, the service reopens from the header

	var hierarchyHeader *multipart.FileHeader
	if hierarchyFile, header, err := r.FormFile("hierarchyFile"); err == nil {
		hierarchyFile.Close()
		hierarchyHeader = header
	}

	dataset, err := h.graphService.Upload(name, graphHeader, hierarchyHeader)
	if err != nil {
		log.Error().Err(err).Msg("Graph upload failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Graph upload failed", err)
		return
	}

	log.Info().
		Str("dataset_id", dataset.ID).
		Str("name", dataset.Name).
		Msg("Graph uploaded successfully")

	response := models.UploadResponse{
		DatasetID: dataset.ID,
		Dataset:   *dataset,
	}
	utils.WriteSuccessResponse(w, "Graph uploaded successfully", response)
}

// ListGraphs lists all loaded datasets
func (h *Handlers) ListGraphs(w http.ResponseWriter, r *http.Request) {
	datasets := h.graphService.List()
	utils.WriteSuccessResponse(w, "Graphs retrieved successfully", datasets)
}

// GetGraph retrieves a specific dataset's metadata
func (h *Handlers) GetGraph(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]

	ds, err := h.graphService.Get(graphID)
	if err != nil {
		log.Error().
			Str("graph_id", graphID).
			Err(err).
			Msg("Graph not found")
		utils.WriteErrorResponse(w, http.StatusNotFound, "Graph not found", err)
		return
	}

	utils.WriteSuccessResponse(w, "Graph retrieved successfully", ds.Info)
}

// DeleteGraph deletes a dataset
func (h *Handlers) DeleteGraph(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]

	if err := h.graphService.Delete(graphID); err != nil {
		log.Error().
			Str("graph_id", graphID).
			Err(err).
			Msg("Graph deletion failed")
		utils.WriteErrorResponse(w, http.StatusNotFound, "Graph deletion failed", err)
		return
	}

	utils.WriteSuccessResponse(w, "Graph deleted successfully", nil)
}

// GetStatistics computes the statistics report for a graph or one of its
// hierarchy-selected subgraphs (?label=root|cluster_2).
func (h *Handlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]
	label := r.URL.Query().Get("label")

	report, err := h.analysisService.Statistics(graphID, label)
	if err != nil {
		writeAnalysisError(w, graphID, label, err, "Statistics computation failed")
		return
	}

	utils.WriteSuccessResponse(w, "Statistics computed successfully", report)
}

// GetPeeling returns the raw core-number partition for a graph or
// subgraph.
func (h *Handlers) GetPeeling(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]
	label := r.URL.Query().Get("label")

	partition, err := h.analysisService.Peel(graphID, label)
	if err != nil {
		writeAnalysisError(w, graphID, label, err, "Peeling failed")
		return
	}

	utils.WriteSuccessResponse(w, "Peeling computed successfully", partition)
}

// SaveAdjacency writes the adjacency list of an induced subgraph to a
// server-side path.
func (h *Handlers) SaveAdjacency(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]

	var req models.AdjacencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Path == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Output path is required", nil)
		return
	}

	resp, err := h.analysisService.SaveAdjacency(graphID, req.Label, req.Path)
	if err != nil {
		writeAnalysisError(w, graphID, req.Label, err, "Adjacency export failed")
		return
	}

	utils.WriteSuccessResponse(w, "Adjacency exported successfully", resp)
}

// GetVis exports a graph or subgraph in the Vis.js network format.
func (h *Handlers) GetVis(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]
	label := r.URL.Query().Get("label")

	network, err := h.visService.Network(graphID, label)
	if err != nil {
		writeAnalysisError(w, graphID, label, err, "Visualization export failed")
		return
	}

	utils.WriteSuccessResponse(w, "Visualization data retrieved successfully", network)
}

// GetPageRank returns the top-ranked vertices of a graph or subgraph.
func (h *Handlers) GetPageRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	graphID := vars["graphId"]
	label := r.URL.Query().Get("label")

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	entries, err := h.analysisService.PageRank(graphID, label, limit)
	if err != nil {
		writeAnalysisError(w, graphID, label, err, "PageRank computation failed")
		return
	}

	utils.WriteSuccessResponse(w, "PageRank computed successfully", entries)
}

// HealthCheck returns server health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}
	utils.WriteSuccessResponse(w, "Service is healthy", health)
}

// writeAnalysisError maps the analysis error taxonomy onto HTTP statuses:
// missing graphs are 404, bad labels 400, everything else 500.
func writeAnalysisError(w http.ResponseWriter, graphID, label string, err error, message string) {
	log.Error().
		Str("graph_id", graphID).
		Str("label", label).
		Err(err).
		Msg(message)

	switch {
	case errors.Is(err, analysis.ErrNoGraph):
		utils.WriteErrorResponse(w, http.StatusNotFound, "No graph loaded", err)
	case errors.Is(err, hierarchy.ErrInvalidLabel):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid hierarchy label", err)
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, message, err)
	}
}
