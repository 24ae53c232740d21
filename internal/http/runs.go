package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

// handleRuns lists stored snapshot runs (GET) or stores the served snapshot
// (POST). It answers 503 when no database is configured.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "storage_disabled"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		limit, _, bad, ok := parseLimitOffset(r, 20, 0)
		if !ok {
			writeBadParam(w, bad)
			return
		}
		runs, err := s.store.ListRuns(r.Context(), limit)
		if err != nil {
			s.log.Error("list runs", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
			return
		}
		writeJSON(w, http.StatusOK, map[string][]storage.Run{"runs": runs})

	case http.MethodPost:
		id := s.snap.Meta().ID.String()
		if _, ok, err := s.store.GetRun(r.Context(), id); err != nil {
			s.log.Error("get run", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
			return
		} else if ok {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "already_stored", "run_id": id})
			return
		}
		run, err := s.store.SaveSnapshot(r.Context(), s.snap)
		if err != nil {
			s.log.Error("store snapshot", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
			return
		}
		writeJSON(w, http.StatusCreated, run)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
