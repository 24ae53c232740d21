package dataset

import (
	"math"
	"sort"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/reference"
)

// DashboardStats summarises the snapshot as of now.
func (s *Snapshot) DashboardStats(now time.Time) domain.DashboardStats {
	var st domain.DashboardStats
	st.TotalHouseholds = len(s.c.Households)
	for _, h := range s.c.Households {
		if h.DetectedAt.SameMonth(now) {
			st.NewThisMonth++
		}
		switch h.RiskLevel {
		case domain.RiskCritical, domain.RiskHigh:
			st.HighRisk++
		case domain.RiskMedium:
			st.MediumRisk++
		case domain.RiskLow:
			st.LowRisk++
		}
		if h.Status.HasSupport() {
			st.Supported++
		}
		if h.Status.InProgress() {
			st.InProgress++
		}
	}

	st.TotalVolunteers = len(s.c.Volunteers)
	for _, v := range s.c.Volunteers {
		if v.Status == domain.VolunteerActive {
			st.ActiveVolunteers++
		}
	}

	minutes := 0
	for _, a := range s.c.Activities {
		if a.Status != domain.VisitCompleted || !a.ScheduledDate.SameMonth(now) {
			continue
		}
		st.ThisMonthVisits++
		minutes += a.DurationMinutes
	}
	st.ThisMonthHours = int(math.Round(float64(minutes) / 60))
	return st
}

// MonthlyTrends covers the twelve calendar months ending with now's month, oldest first.
func (s *Snapshot) MonthlyTrends(now time.Time) []domain.MonthlyTrend {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]domain.MonthlyTrend, 12)
	pos := make(map[string]int, 12)
	for i := range out {
		key := domain.MonthKey(first.AddDate(0, i-11, 0))
		out[i].Month = key
		pos[key] = i
	}

	bump := func(t time.Time, f func(*domain.MonthlyTrend)) {
		if i, ok := pos[domain.MonthKey(t)]; ok {
			f(&out[i])
		}
	}
	for _, h := range s.c.Households {
		bump(h.DetectedAt.Time, func(m *domain.MonthlyTrend) { m.Detected++ })
		for _, r := range h.SupportHistory {
			if r.Status == domain.SupportCompleted && r.CompletedAt != nil {
				bump(r.CompletedAt.Time, func(m *domain.MonthlyTrend) { m.Supported++ })
			}
		}
	}
	for _, a := range s.c.Activities {
		if a.Status == domain.VisitCompleted {
			bump(a.ScheduledDate.Time, func(m *domain.MonthlyTrend) { m.Visits++ })
		}
	}
	return out
}

// RegionStats rolls households up per province, in the reference order.
func (s *Snapshot) RegionStats() []domain.RegionStats {
	out := make([]domain.RegionStats, len(reference.SidoCentres))
	pos := make(map[string]int, len(out))
	for i, c := range reference.SidoCentres {
		out[i] = domain.RegionStats{Sido: c.Sido, Coordinates: c.Coordinates}
		pos[c.Sido] = i
	}
	for _, h := range s.c.Households {
		i, ok := pos[h.Region.Sido]
		if !ok {
			continue
		}
		out[i].Total++
		if h.RiskLevel.Elevated() {
			out[i].HighRisk++
		}
		if h.Status.HasSupport() {
			out[i].Supported++
		}
	}
	return out
}

func (s *Snapshot) ProgramStats() domain.ProgramStats {
	st := domain.ProgramStats{
		Total:       len(s.c.Programs),
		Utilization: make([]domain.ProgramUtilization, 0, len(s.c.Programs)),
	}
	for _, p := range s.c.Programs {
		if p.Status == domain.ProgramActive {
			st.Active++
		}
		st.TotalBudget += p.Budget
		st.TotalBeneficiaries += p.CurrentBeneficiaries
		st.Utilization = append(st.Utilization, domain.ProgramUtilization{
			ProgramID:   p.ID,
			Name:        p.Name,
			Utilization: math.Round(p.Utilization()*1000) / 10,
		})
	}
	return st
}

func (s *Snapshot) VolunteerStats() domain.VolunteerStats {
	st := domain.VolunteerStats{TotalVolunteers: len(s.c.Volunteers)}
	for _, v := range s.c.Volunteers {
		if v.Status == domain.VolunteerActive {
			st.ActiveVolunteers++
		}
		st.TotalHours += v.TotalHours
		st.TotalVisits += v.TotalVisits
		switch v.Type {
		case domain.VolunteerSenior:
			st.SeniorCount++
		case domain.VolunteerEmployee:
			st.EmployeeCount++
		}
	}
	return st
}

// ListStats summarises an already-filtered household list.
func ListStats(hs []domain.Household) domain.HouseholdListStats {
	st := domain.HouseholdListStats{Total: len(hs)}
	for _, h := range hs {
		switch h.RiskLevel {
		case domain.RiskCritical:
			st.Critical++
		case domain.RiskHigh:
			st.High++
		}
		if h.Status == domain.StatusDetected {
			st.Unconfirmed++
		}
	}
	return st
}

// TopHighRisk returns up to n critical/high households by descending risk score.
func (s *Snapshot) TopHighRisk(n int) []domain.Household {
	out := []domain.Household{}
	for _, h := range s.c.Households {
		if h.RiskLevel.Elevated() {
			out = append(out, cloneHousehold(h))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *Snapshot) RecentUnreadAlerts(n int) []domain.Alert {
	out, _ := Page(s.FindAlerts(AlertFilter{UnreadOnly: true}), n, 0)
	return out
}

// TopVolunteers ranks volunteers by total hours.
func (s *Snapshot) TopVolunteers(n int) []domain.Volunteer {
	out := s.Volunteers()
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalHours > out[j].TotalHours })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
