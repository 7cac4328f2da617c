package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const defaultResultsLimit = 20

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// sessionsHandler - lists the live session snapshots from the mirror.
func (that *Server) sessionsHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "sessionsHandler")

	games, err := that.snapshots.List(req.Context())
	if err != nil {
		log.Error("failed to list session snapshots", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, games)
}

// resultsHandler - lists recent finished matches from the archive. An
// optional "limit" query parameter caps the result count.
func (that *Server) resultsHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "resultsHandler")

	limit := defaultResultsLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := that.archive.ListRecent(req.Context(), limit)
	if err != nil {
		log.Error("failed to list match results", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, results)
}

func (that *Server) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
