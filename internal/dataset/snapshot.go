// Package dataset holds the generated world as an immutable Snapshot and the
// read-side queries and aggregates computed over it.
package dataset

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

type Meta struct {
	ID          uuid.UUID `json:"id"`
	Seed        uint64    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Collections is the raw material a Snapshot is built from.
type Collections struct {
	Households []domain.Household      `json:"households"`
	Programs   []domain.WelfareProgram `json:"programs"`
	Volunteers []domain.Volunteer      `json:"volunteers"`
	Activities []domain.VisitActivity  `json:"activities"`
	Alerts     []domain.Alert          `json:"alerts"`
}

// Snapshot is read-only after construction. Accessors hand out copies.
type Snapshot struct {
	meta Meta
	c    Collections

	householdIdx map[string]int
	programIdx   map[string]int
	volunteerIdx map[string]int
}

// New takes ownership of c; callers must not modify it afterwards.
func New(meta Meta, c Collections) *Snapshot {
	s := &Snapshot{meta: meta, c: c}
	s.index()
	return s
}

func (s *Snapshot) index() {
	s.householdIdx = make(map[string]int, len(s.c.Households))
	for i, h := range s.c.Households {
		s.householdIdx[h.ID] = i
	}
	s.programIdx = make(map[string]int, len(s.c.Programs))
	for i, p := range s.c.Programs {
		s.programIdx[p.ID] = i
	}
	s.volunteerIdx = make(map[string]int, len(s.c.Volunteers))
	for i, v := range s.c.Volunteers {
		s.volunteerIdx[v.ID] = i
	}
}

func (s *Snapshot) Meta() Meta { return s.meta }

func (s *Snapshot) Households() []domain.Household {
	out := make([]domain.Household, len(s.c.Households))
	for i, h := range s.c.Households {
		out[i] = cloneHousehold(h)
	}
	return out
}

func (s *Snapshot) Programs() []domain.WelfareProgram {
	out := make([]domain.WelfareProgram, len(s.c.Programs))
	for i, p := range s.c.Programs {
		out[i] = cloneProgram(p)
	}
	return out
}

func (s *Snapshot) Volunteers() []domain.Volunteer {
	return slices.Clone(s.c.Volunteers)
}

func (s *Snapshot) Activities() []domain.VisitActivity {
	out := make([]domain.VisitActivity, len(s.c.Activities))
	for i, a := range s.c.Activities {
		out[i] = cloneActivity(a)
	}
	return out
}

func (s *Snapshot) Alerts() []domain.Alert {
	out := make([]domain.Alert, len(s.c.Alerts))
	for i, a := range s.c.Alerts {
		out[i] = cloneAlert(a)
	}
	return out
}

func (s *Snapshot) Household(id string) (domain.Household, bool) {
	i, ok := s.householdIdx[id]
	if !ok {
		return domain.Household{}, false
	}
	return cloneHousehold(s.c.Households[i]), true
}

func (s *Snapshot) Program(id string) (domain.WelfareProgram, bool) {
	i, ok := s.programIdx[id]
	if !ok {
		return domain.WelfareProgram{}, false
	}
	return cloneProgram(s.c.Programs[i]), true
}

func (s *Snapshot) Volunteer(id string) (domain.Volunteer, bool) {
	i, ok := s.volunteerIdx[id]
	if !ok {
		return domain.Volunteer{}, false
	}
	return s.c.Volunteers[i], true
}

type snapshotJSON struct {
	Meta Meta `json:"meta"`
	Collections
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{Meta: s.meta, Collections: s.c})
}

func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	s.meta = raw.Meta
	s.c = raw.Collections
	s.index()
	return nil
}

func cloneHousehold(h domain.Household) domain.Household {
	h.Characteristics = slices.Clone(h.Characteristics)
	h.MonthlyPowerUsage = slices.Clone(h.MonthlyPowerUsage)
	h.SupportHistory = slices.Clone(h.SupportHistory)
	for i := range h.SupportHistory {
		h.SupportHistory[i].CompletedAt = clonePtr(h.SupportHistory[i].CompletedAt)
	}
	h.ConnectedPrograms = slices.Clone(h.ConnectedPrograms)
	return h
}

func cloneProgram(p domain.WelfareProgram) domain.WelfareProgram {
	p.Eligibility = slices.Clone(p.Eligibility)
	p.RequiredDocuments = slices.Clone(p.RequiredDocuments)
	return p
}

func cloneActivity(a domain.VisitActivity) domain.VisitActivity {
	a.ActualDate = clonePtr(a.ActualDate)
	a.HealthStatus = clonePtr(a.HealthStatus)
	return a
}

func cloneAlert(a domain.Alert) domain.Alert {
	a.ReadAt = clonePtr(a.ReadAt)
	return a
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
