package httpapi

import (
	"net/http"
	"strconv"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

type HouseholdListResponse struct {
	ListResponse[domain.Household]
	Stats domain.HouseholdListStats `json:"stats"`
}

// householdFilter reads the detection list query: search, risk_level,
// status, sido, sort (risk_score|detected_at), order (asc|desc).
func householdFilter(r *http.Request) (dataset.HouseholdFilter, string, bool) {
	q := r.URL.Query()
	f := dataset.HouseholdFilter{Search: q.Get("search"), Sido: q.Get("sido")}

	var ok bool
	if f.RiskLevel, ok = enumParam(r, "risk_level", domain.RiskLevels); !ok {
		return f, "risk_level", false
	}
	if f.Status, ok = enumParam(r, "status", domain.HouseholdStatuses); !ok {
		return f, "status", false
	}
	if f.Sort, ok = enumParam(r, "sort", []dataset.HouseholdSort{dataset.SortByRiskScore, dataset.SortByDetectedAt}); !ok {
		return f, "sort", false
	}
	switch q.Get("order") {
	case "", "desc":
	case "asc":
		f.Asc = true
	default:
		return f, "order", false
	}
	return f, "", true
}

func (s *Server) handleHouseholdsList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	f, bad, ok := householdFilter(r)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	limit, offset, bad, ok := parseLimitOffset(r, 10, 0)
	if !ok {
		writeBadParam(w, bad)
		return
	}

	all := s.snap.FindHouseholds(f)
	writeJSON(w, http.StatusOK, HouseholdListResponse{
		ListResponse: newListResponse(all, limit, offset),
		Stats:        dataset.ListStats(all),
	})
}

type RecommendationsResponse struct {
	HouseholdID     string                  `json:"household_id"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func (s *Server) handleHouseholdByID(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, sub := pathID(r.URL.Path, "/households/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}
	h, ok := s.snap.Household(id)
	if !ok {
		writeNotFound(w)
		return
	}

	switch sub {
	case "":
		writeJSON(w, http.StatusOK, h)
	case "recommendations":
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeBadParam(w, "limit")
				return
			}
			limit = n
		}
		writeJSON(w, http.StatusOK, RecommendationsResponse{
			HouseholdID:     h.ID,
			Recommendations: s.engine.Recommend(h, s.snap.Programs(), limit),
		})
	case "activities":
		writeJSON(w, http.StatusOK, s.snap.FindActivities(dataset.ActivityFilter{HouseholdID: h.ID}))
	default:
		writeNotFound(w)
	}
}
