package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/cache"
	"github.com/yonghwan1106/e-ansimcare/internal/chatbot"
	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/matching"
	"github.com/yonghwan1106/e-ansimcare/internal/storage"
)

// Options wires a Server. Snapshot and Engine are required; Cache and Store
// may be nil to disable aggregate caching and run storage.
type Options struct {
	Snapshot *dataset.Snapshot
	Engine   *matching.Engine
	Chats    *chatbot.Registry
	Cache    *cache.Aggregates
	Store    *storage.SnapshotStore
	Now      func() time.Time
	Logger   *zap.Logger
}

type Server struct {
	snap   *dataset.Snapshot
	engine *matching.Engine
	chats  *chatbot.Registry
	cache  *cache.Aggregates
	store  *storage.SnapshotStore
	now    func() time.Time
	log    *zap.Logger
}

func NewServer(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Chats == nil {
		opts.Chats = chatbot.NewRegistry(0, opts.Now)
	}
	return &Server{
		snap:   opts.Snapshot,
		engine: opts.Engine,
		chats:  opts.Chats,
		cache:  opts.Cache,
		store:  opts.Store,
		now:    opts.Now,
		log:    opts.Logger,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/meta", s.handleMeta)

	mux.HandleFunc("/households", s.handleHouseholdsList)
	mux.HandleFunc("/households/", s.handleHouseholdByID)
	mux.HandleFunc("/programs", s.handleProgramsList)
	mux.HandleFunc("/programs/", s.handleProgramByID)
	mux.HandleFunc("/volunteers", s.handleVolunteersList)
	mux.HandleFunc("/volunteers/", s.handleVolunteerByID)
	mux.HandleFunc("/activities", s.handleActivitiesList)
	mux.HandleFunc("/alerts", s.handleAlertsList)

	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/stats/", s.handleStats)

	mux.HandleFunc("/chat/sessions", s.handleChatCreate)
	mux.HandleFunc("/chat/sessions/", s.handleChatSession)

	mux.HandleFunc("/export/households.xlsx", s.handleExportHouseholds)
	mux.HandleFunc("/export/snapshot.xlsx", s.handleExportSnapshot)

	mux.HandleFunc("/runs", s.handleRuns)
	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"snapshot_id": s.snap.Meta().ID.String(),
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// logRequests logs one line per request and turns handler panics into 500s.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				s.log.Error("handler panic", zap.Any("panic", p), zap.String("path", r.URL.Path))
				rec.status = http.StatusInternalServerError
				writeJSON(rec, http.StatusInternalServerError, map[string]string{"error": "internal"})
			}
			s.log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Int("bytes", rec.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(rec, r)
	})
}

// pathID strips prefix and splits the rest into the id and an optional
// sub-resource: "/households/HH-1/recommendations" -> "HH-1", "recommendations".
func pathID(path, prefix string) (id, sub string) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	id, sub, _ = strings.Cut(rest, "/")
	return id, sub
}

// parseLimitOffset reads paging parameters. A limit of 0 means the default,
// anything above 200 is capped. Non-numeric or negative values are rejected
// and bad names the offending parameter.
func parseLimitOffset(r *http.Request, defLimit, defOffset int) (limit, offset int, bad string, ok bool) {
	q := r.URL.Query()

	limit = defLimit
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return 0, 0, "limit", false
		}
		if parsed > 0 {
			limit = parsed
		}
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset = defOffset
	if v := q.Get("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return 0, 0, "offset", false
		}
		offset = parsed
	}

	return limit, offset, "", true
}

// enumParam reads an optional query parameter that must be one of allowed.
func enumParam[T ~string](r *http.Request, name string, allowed []T) (T, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", true
	}
	for _, a := range allowed {
		if string(a) == v {
			return a, true
		}
	}
	return "", false
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeRawJSON sends an already encoded body.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func writeBadParam(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name})
}

// ListResponse is the envelope for paginated lists.
type ListResponse[T any] struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
	Items  []T `json:"items"`
}

func newListResponse[T any](items []T, limit, offset int) ListResponse[T] {
	page, total := dataset.Page(items, limit, offset)
	return ListResponse[T]{Limit: limit, Offset: offset, Total: total, Items: page}
}
