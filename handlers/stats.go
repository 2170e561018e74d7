// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chamber-stats/auth"
	"github.com/danielhkuo/chamber-stats/middleware"
	"github.com/danielhkuo/chamber-stats/models"
	"github.com/danielhkuo/chamber-stats/stats"
	"github.com/danielhkuo/chamber-stats/store"
)

// maxImportBytes bounds POST bodies carrying initiative arrays
const maxImportBytes = 32 << 20

type StatsHandler struct {
	source   store.Source
	analyzer *stats.Analyzer
	adminKey string
}

func NewStatsHandler(source store.Source, analyzer *stats.Analyzer) *StatsHandler {
	return &StatsHandler{source: source, analyzer: analyzer}
}

// WithAdminKey requires key in the X-Admin-Key header on imports
func (h *StatsHandler) WithAdminKey(key string) *StatsHandler {
	h.adminKey = key
	return h
}

// load fetches the dataset, writing a 500 on failure
func (h *StatsHandler) load(w http.ResponseWriter, r *http.Request) ([]models.Initiative, bool) {
	initiatives, err := h.source.Initiatives(r.Context())
	if err != nil {
		slog.Error("failed to load initiatives",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load initiatives")
		return nil, false
	}
	return initiatives, true
}

// GetDashboard handles GET /stats/dashboard
func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	initiatives, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Aggregate(initiatives))
}

// GetParticipation handles GET /stats/participation
func (h *StatsHandler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	initiatives, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Analyze(initiatives))
}

// GetConsensus handles GET /stats/consensus
func (h *StatsHandler) GetConsensus(w http.ResponseWriter, r *http.Request) {
	initiatives, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Rank(initiatives))
}

// GetAffinity handles GET /stats/affinity?target=X&reference=Y
func (h *StatsHandler) GetAffinity(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	reference := r.URL.Query().Get("reference")
	if target == "" || reference == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "target and reference are required")
		return
	}

	initiatives, ok := h.load(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AffinityResponse{
		Target:    target,
		Reference: reference,
		Affinity:  h.analyzer.Affinity(initiatives, target, reference),
	})
}

// GetInitiativeConsensus handles GET /initiatives/{id}/consensus
func (h *StatsHandler) GetInitiativeConsensus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	ini, err := h.find(r, id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Initiative not found")
		return
	}
	if err != nil {
		slog.Error("failed to load initiative",
			"request_id", middleware.RequestID(r.Context()),
			"id", id,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load initiatives")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Classify(ini))
}

// find uses a direct lookup when the source offers one and scans otherwise
func (h *StatsHandler) find(r *http.Request, id string) (models.Initiative, error) {
	if finder, ok := h.source.(store.Finder); ok {
		return finder.Initiative(r.Context(), id)
	}

	initiatives, err := h.source.Initiatives(r.Context())
	if err != nil {
		return models.Initiative{}, err
	}
	for _, ini := range initiatives {
		if ini.ID == id {
			return ini, nil
		}
	}
	return models.Initiative{}, store.ErrNotFound
}

// PostAnalyze handles POST /stats/analyze
// Computes every report over the posted initiatives without storing them
func (h *StatsHandler) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	initiatives, ok := readInitiatives(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Dashboard(initiatives))
}

// PostInitiatives handles POST /initiatives
// Only available when the source is a database
func (h *StatsHandler) PostInitiatives(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), h.adminKey); err != nil {
		slog.Warn("rejected import",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	importer, ok := h.source.(store.Importer)
	if !ok {
		middleware.ErrorResponse(w, http.StatusConflict, store.ErrReadOnly.Error())
		return
	}

	initiatives, ok := readInitiatives(w, r)
	if !ok {
		return
	}
	if len(initiatives) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one initiative is required")
		return
	}

	if err := importer.Save(r.Context(), initiatives); err != nil {
		slog.Error("failed to import initiatives",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to import initiatives")
		return
	}

	slog.Info("initiatives imported",
		"request_id", middleware.RequestID(r.Context()),
		"count", len(initiatives),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.ImportResponse{Imported: len(initiatives)})
}

// readInitiatives validates and decodes a posted initiative array, writing
// a 400 on failure
func readInitiatives(w http.ResponseWriter, r *http.Request) ([]models.Initiative, bool) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	defer body.Close()

	initiatives, err := store.ReadJSON(body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return initiatives, true
}
