package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

const (
	topHighRisk   = 5
	recentAlerts  = 5
	topVolunteers = 5
)

type DashboardResponse struct {
	Stats         domain.DashboardStats `json:"stats"`
	Trends        []domain.MonthlyTrend `json:"trends"`
	Regions       []domain.RegionStats  `json:"regions"`
	TopHighRisk   []domain.Household    `json:"top_high_risk"`
	RecentAlerts  []domain.Alert        `json:"recent_alerts"`
	TopVolunteers []domain.Volunteer    `json:"top_volunteers"`
}

// statsReducer maps a /stats/ name to its reducer. Month-dependent
// ones carry the month in their cache name.
func (s *Server) statsReducer(name string) (cacheName string, compute func() any, ok bool) {
	now := s.now()
	month := domain.MonthKey(now)
	switch name {
	case "dashboard":
		return "dashboard:" + month, func() any { return s.snap.DashboardStats(now) }, true
	case "trends":
		return "trends:" + month, func() any { return s.snap.MonthlyTrends(now) }, true
	case "regions":
		return "regions", func() any { return s.snap.RegionStats() }, true
	case "programs":
		return "programs", func() any { return s.snap.ProgramStats() }, true
	case "volunteers":
		return "volunteers", func() any { return s.snap.VolunteerStats() }, true
	}
	return "", nil, false
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	name, sub := pathID(r.URL.Path, "/stats/")
	cacheName, compute, ok := s.statsReducer(name)
	if !ok || sub != "" {
		writeNotFound(w)
		return
	}
	s.serveCached(w, r, cacheName, compute)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	now := s.now()
	s.serveCached(w, r, "overview:"+domain.MonthKey(now), func() any {
		return DashboardResponse{
			Stats:         s.snap.DashboardStats(now),
			Trends:        s.snap.MonthlyTrends(now),
			Regions:       s.snap.RegionStats(),
			TopHighRisk:   s.snap.TopHighRisk(topHighRisk),
			RecentAlerts:  s.snap.RecentUnreadAlerts(recentAlerts),
			TopVolunteers: s.snap.TopVolunteers(topVolunteers),
		}
	})
}

func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, name string, compute func() any) {
	body, err := s.cache.JSON(r.Context(), s.snap.Meta().ID.String(), name, compute)
	if err != nil {
		s.log.Error("encode aggregate", zap.String("name", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}
