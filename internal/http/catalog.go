package httpapi

import (
	"net/http"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

type MetaResponse struct {
	Snapshot          dataset.Meta                   `json:"snapshot"`
	Sidos             []string                       `json:"sidos"`
	Providers         []string                       `json:"providers"`
	VolunteerRegions  []string                       `json:"volunteer_regions"`
	RiskLevels        []domain.RiskLevel             `json:"risk_levels"`
	HouseholdStatuses []domain.HouseholdStatus       `json:"household_statuses"`
	Categories        map[string]domain.CategoryMeta `json:"categories"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	cats := make(map[string]domain.CategoryMeta, len(domain.ProgramCategories))
	for _, c := range domain.ProgramCategories {
		m, _ := c.Meta()
		cats[string(c)] = m
	}
	writeJSON(w, http.StatusOK, MetaResponse{
		Snapshot:          s.snap.Meta(),
		Sidos:             s.snap.Sidos(),
		Providers:         s.snap.Providers(),
		VolunteerRegions:  s.snap.VolunteerRegions(),
		RiskLevels:        domain.RiskLevels,
		HouseholdStatuses: domain.HouseholdStatuses,
		Categories:        cats,
	})
}

func (s *Server) handleProgramsList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	f := dataset.ProgramFilter{Search: q.Get("search"), Provider: q.Get("provider")}
	var ok bool
	if f.Category, ok = enumParam(r, "category", domain.ProgramCategories); !ok {
		writeBadParam(w, "category")
		return
	}
	if f.Status, ok = enumParam(r, "status", domain.ProgramStatuses); !ok {
		writeBadParam(w, "status")
		return
	}
	limit, offset, bad, ok := parseLimitOffset(r, 50, 0)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(s.snap.FindPrograms(f), limit, offset))
}

func (s *Server) handleProgramByID(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, sub := pathID(r.URL.Path, "/programs/")
	p, ok := s.snap.Program(id)
	if !ok || sub != "" {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleVolunteersList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	f := dataset.VolunteerFilter{Search: q.Get("search"), Region: q.Get("region")}
	var ok bool
	if f.Type, ok = enumParam(r, "type", domain.VolunteerTypes); !ok {
		writeBadParam(w, "type")
		return
	}
	if f.Status, ok = enumParam(r, "status", domain.VolunteerStatuses); !ok {
		writeBadParam(w, "status")
		return
	}
	limit, offset, bad, ok := parseLimitOffset(r, 20, 0)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(s.snap.FindVolunteers(f), limit, offset))
}

func (s *Server) handleVolunteerByID(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, sub := pathID(r.URL.Path, "/volunteers/")
	v, ok := s.snap.Volunteer(id)
	if !ok {
		writeNotFound(w)
		return
	}
	switch sub {
	case "":
		writeJSON(w, http.StatusOK, v)
	case "activities":
		writeJSON(w, http.StatusOK, s.snap.FindActivities(dataset.ActivityFilter{VolunteerID: v.ID}))
	default:
		writeNotFound(w)
	}
}

func (s *Server) handleActivitiesList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	f := dataset.ActivityFilter{VolunteerID: q.Get("volunteer_id"), HouseholdID: q.Get("household_id")}
	var ok bool
	if f.Status, ok = enumParam(r, "status", domain.VisitStatuses); !ok {
		writeBadParam(w, "status")
		return
	}
	if f.From, ok = dateParam(r, "from"); !ok {
		writeBadParam(w, "from")
		return
	}
	if f.To, ok = dateParam(r, "to"); !ok {
		writeBadParam(w, "to")
		return
	}
	limit, offset, bad, ok := parseLimitOffset(r, 20, 0)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(s.snap.FindActivities(f), limit, offset))
}

// dateParam reads an optional YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (time.Time, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, true
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return time.Time{}, false
	}
	return d.Time, true
}

func (s *Server) handleAlertsList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	f := dataset.AlertFilter{UnreadOnly: r.URL.Query().Get("unread") == "true"}
	var ok bool
	if f.Priority, ok = enumParam(r, "priority", domain.Priorities); !ok {
		writeBadParam(w, "priority")
		return
	}
	if f.Type, ok = enumParam(r, "type", domain.AlertTypes); !ok {
		writeBadParam(w, "type")
		return
	}
	limit, offset, bad, ok := parseLimitOffset(r, 20, 0)
	if !ok {
		writeBadParam(w, bad)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(s.snap.FindAlerts(f), limit, offset))
}
