package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

type HouseholdSort string

const (
	SortByRiskScore  HouseholdSort = "risk_score"
	SortByDetectedAt HouseholdSort = "detected_at"
)

// HouseholdFilter mirrors the detection list: empty fields match everything.
type HouseholdFilter struct {
	Search    string
	RiskLevel domain.RiskLevel
	Status    domain.HouseholdStatus
	Sido      string
	Sort      HouseholdSort
	Asc       bool
}

// FindHouseholds filters and sorts households. Default order is risk score, descending.
func (s *Snapshot) FindHouseholds(f HouseholdFilter) []domain.Household {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Household, 0, len(s.c.Households))
	for _, h := range s.c.Households {
		if q != "" &&
			!strings.Contains(strings.ToLower(h.ID), q) &&
			!strings.Contains(h.Region.Sigungu, q) &&
			!strings.Contains(h.Region.Dong, q) {
			continue
		}
		if f.RiskLevel != "" && h.RiskLevel != f.RiskLevel {
			continue
		}
		if f.Status != "" && h.Status != f.Status {
			continue
		}
		if f.Sido != "" && h.Region.Sido != f.Sido {
			continue
		}
		out = append(out, cloneHousehold(h))
	}

	key := func(h domain.Household) int64 { return int64(h.RiskScore) }
	if f.Sort == SortByDetectedAt {
		key = func(h domain.Household) int64 { return h.DetectedAt.Unix() }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Asc {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out
}

type ProgramFilter struct {
	Search   string
	Category domain.ProgramCategory
	Provider string
	Status   domain.ProgramStatus
}

// FindPrograms keeps catalog order.
func (s *Snapshot) FindPrograms(f ProgramFilter) []domain.WelfareProgram {
	q := strings.TrimSpace(f.Search)
	lq := strings.ToLower(q)
	out := []domain.WelfareProgram{}
	for _, p := range s.c.Programs {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), lq) &&
			!strings.Contains(p.Description, q) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Provider != "" && p.Provider != f.Provider {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, cloneProgram(p))
	}
	return out
}

type VolunteerFilter struct {
	Search string
	Type   domain.VolunteerType
	Status domain.VolunteerStatus
	Region string
}

func (s *Snapshot) FindVolunteers(f VolunteerFilter) []domain.Volunteer {
	q := strings.TrimSpace(f.Search)
	lq := strings.ToLower(q)
	out := []domain.Volunteer{}
	for _, v := range s.c.Volunteers {
		if q != "" &&
			!strings.Contains(v.Name, q) &&
			!strings.Contains(strings.ToLower(v.ID), lq) {
			continue
		}
		if f.Type != "" && v.Type != f.Type {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.Region != "" && v.Region != f.Region {
			continue
		}
		out = append(out, v)
	}
	return out
}

type ActivityFilter struct {
	VolunteerID string
	HouseholdID string
	Status      domain.VisitStatus
	// From and To bound the scheduled date, inclusive. Zero means unbounded.
	From time.Time
	To   time.Time
}

// FindActivities returns matching visits, most recently scheduled first.
func (s *Snapshot) FindActivities(f ActivityFilter) []domain.VisitActivity {
	out := []domain.VisitActivity{}
	for _, a := range s.c.Activities {
		if f.VolunteerID != "" && a.VolunteerID != f.VolunteerID {
			continue
		}
		if f.HouseholdID != "" && a.HouseholdID != f.HouseholdID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && a.ScheduledDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && a.ScheduledDate.After(f.To) {
			continue
		}
		out = append(out, cloneActivity(a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate.After(out[j].ScheduledDate.Time)
	})
	return out
}

type AlertFilter struct {
	UnreadOnly bool
	Priority   domain.Priority
	Type       domain.AlertType
}

// FindAlerts keeps the snapshot order, newest first.
func (s *Snapshot) FindAlerts(f AlertFilter) []domain.Alert {
	out := []domain.Alert{}
	for _, a := range s.c.Alerts {
		if f.UnreadOnly && a.IsRead {
			continue
		}
		if f.Priority != "" && a.Priority != f.Priority {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		out = append(out, cloneAlert(a))
	}
	return out
}

// Sidos lists the distinct provinces households live in, sorted.
func (s *Snapshot) Sidos() []string {
	return distinctSorted(len(s.c.Households), func(i int) string { return s.c.Households[i].Region.Sido })
}

func (s *Snapshot) Providers() []string {
	return distinctSorted(len(s.c.Programs), func(i int) string { return s.c.Programs[i].Provider })
}

func (s *Snapshot) VolunteerRegions() []string {
	return distinctSorted(len(s.c.Volunteers), func(i int) string { return s.c.Volunteers[i].Region })
}

func distinctSorted(n int, at func(int) string) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0)
	for i := 0; i < n; i++ {
		v := at(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Page slices items by limit/offset and reports the unpaged total.
// A non-positive limit returns everything from offset.
func Page[T any](items []T, limit, offset int) ([]T, int) {
	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return items[offset:end], total
}
