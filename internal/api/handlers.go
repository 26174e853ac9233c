package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/baxromumarov/warlords/internal/httpx"
	"github.com/baxromumarov/warlords/internal/observability"
)

// handleWarlords serves the persisted document as written, byte for byte.
func (s *Server) handleWarlords(w http.ResponseWriter, r *http.Request) {
	data, err := s.reader.Read(s.outputPath)
	if errors.Is(err, fs.ErrNotExist) {
		respondError(w, http.StatusNotFound, "No war status has been saved yet")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read war status: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresher == nil {
		respondError(w, http.StatusNotImplemented, "Refresh is not enabled")
		return
	}

	doc, err := s.refresher.Run(r.Context())
	if err != nil {
		kind := observability.ClassifyRunError(err)
		slog.Error("refresh failed", "error", err, "type", kind)

		status := http.StatusUnprocessableEntity
		var fe *httpx.FetchError
		if errors.As(err, &fe) {
			status = http.StatusBadGateway
		}
		respondJSON(w, status, map[string]string{"error": err.Error(), "type": kind})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"generated":           doc.Generated,
		"generated_timestamp": doc.GeneratedTimestamp,
		"sides":               len(doc.Warlords),
	})
}
